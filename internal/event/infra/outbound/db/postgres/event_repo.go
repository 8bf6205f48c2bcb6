package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	eventDomain "github.com/davicafu/eventix/internal/event/domain"
	"github.com/google/uuid"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// EventRepoPostgres implementa EventRepository sobre Postgres; es el
// adaptador alternativo al de MongoDB para despliegues relacionales.
type EventRepoPostgres struct {
	db *sql.DB
}

func NewEventRepoPostgres(db *sql.DB) *EventRepoPostgres {
	return &EventRepoPostgres{db: db}
}

// InitPostgres crea el esquema si no existe.
func InitPostgres(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			event_name TEXT NOT NULL,
			date_time TIMESTAMPTZ NOT NULL,
			cep TEXT NOT NULL,
			logradouro TEXT NOT NULL DEFAULT '',
			bairro TEXT NOT NULL DEFAULT '',
			cidade TEXT NOT NULL DEFAULT '',
			uf TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		)`)
	return err
}

// ------------------ CRUD ------------------

func (r *EventRepoPostgres) Create(ctx context.Context, e *eventDomain.Event) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO events (id, event_name, date_time, cep, logradouro, bairro, cidade, uf, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID.String(), e.EventName, e.DateTime, e.CEP, e.Logradouro, e.Bairro, e.Cidade, e.UF, e.CreatedAt,
	)
	return err
}

func (r *EventRepoPostgres) GetByID(ctx context.Context, id uuid.UUID) (*eventDomain.Event, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, event_name, date_time, cep, logradouro, bairro, cidade, uf, created_at
		 FROM events WHERE id = $1`, id.String())
	return scanEvent(row)
}

func (r *EventRepoPostgres) List(ctx context.Context, sortedByName bool) ([]*eventDomain.Event, error) {
	query := `SELECT id, event_name, date_time, cep, logradouro, bairro, cidade, uf, created_at FROM events`
	if sortedByName {
		query += ` ORDER BY event_name ASC`
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*eventDomain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *EventRepoPostgres) Update(ctx context.Context, e *eventDomain.Event) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE events SET event_name=$1, date_time=$2, cep=$3, logradouro=$4, bairro=$5, cidade=$6, uf=$7
		 WHERE id=$8`,
		e.EventName, e.DateTime, e.CEP, e.Logradouro, e.Bairro, e.Cidade, e.UF, e.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return eventDomain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepoPostgres) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id=$1`, id.String())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return eventDomain.ErrEventNotFound
	}
	return nil
}

// ------------------ Helpers ------------------

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*eventDomain.Event, error) {
	var e eventDomain.Event
	var id string
	err := row.Scan(&id, &e.EventName, &e.DateTime, &e.CEP, &e.Logradouro, &e.Bairro, &e.Cidade, &e.UF, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, eventDomain.ErrEventNotFound
		}
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid event id %q: %w", id, err)
	}
	e.ID = parsed
	return &e, nil
}
