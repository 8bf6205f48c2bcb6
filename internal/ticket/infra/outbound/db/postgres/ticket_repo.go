package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	ticketDomain "github.com/davicafu/eventix/internal/ticket/domain"
	"github.com/google/uuid"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// TicketRepoPostgres implementa TicketRepository sobre Postgres.
type TicketRepoPostgres struct {
	db *sql.DB
}

func NewTicketRepoPostgres(db *sql.DB) *TicketRepoPostgres {
	return &TicketRepoPostgres{db: db}
}

// InitPostgres crea el esquema si no existe, incluido el contador.
func InitPostgres(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS tickets (
			id TEXT PRIMARY KEY,
			customer_name TEXT NOT NULL,
			cpf TEXT NOT NULL,
			customer_mail TEXT NOT NULL,
			event_id TEXT NOT NULL,
			event_name TEXT NOT NULL,
			brl_amount DOUBLE PRECISION NOT NULL,
			usd_amount DOUBLE PRECISION NOT NULL,
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS tickets_event_id_idx ON tickets (event_id);
		CREATE TABLE IF NOT EXISTS counters (
			name TEXT PRIMARY KEY,
			sequence_value BIGINT NOT NULL
		)`)
	return err
}

// ------------------ CRUD ------------------

func (r *TicketRepoPostgres) Create(ctx context.Context, t *ticketDomain.Ticket) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tickets (id, customer_name, cpf, customer_mail, event_id, event_name, brl_amount, usd_amount, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		t.TicketID, t.CustomerName, t.CPF, t.CustomerMail, t.EventID.String(), t.EventName,
		t.BRLAmount, t.USDAmount, string(t.Status), t.CreatedAt,
	)
	return err
}

func (r *TicketRepoPostgres) GetByID(ctx context.Context, id string) (*ticketDomain.Ticket, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, customer_name, cpf, customer_mail, event_id, event_name, brl_amount, usd_amount, status, created_at
		 FROM tickets WHERE id = $1`, id)

	var t ticketDomain.Ticket
	var eventID, status string
	err := row.Scan(&t.TicketID, &t.CustomerName, &t.CPF, &t.CustomerMail, &eventID, &t.EventName,
		&t.BRLAmount, &t.USDAmount, &status, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ticketDomain.ErrTicketNotFound
		}
		return nil, err
	}

	parsed, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event id %q: %w", eventID, err)
	}
	t.EventID = parsed
	t.Status = ticketDomain.TicketStatus(status)
	return &t, nil
}

func (r *TicketRepoPostgres) Update(ctx context.Context, t *ticketDomain.Ticket) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tickets SET customer_name=$1, cpf=$2, customer_mail=$3, brl_amount=$4, usd_amount=$5, status=$6
		 WHERE id=$7`,
		t.CustomerName, t.CPF, t.CustomerMail, t.BRLAmount, t.USDAmount, string(t.Status), t.TicketID,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ticketDomain.ErrTicketNotFound
	}
	return nil
}

func (r *TicketRepoPostgres) ExistsByEventID(ctx context.Context, eventID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM tickets WHERE event_id = $1)`, eventID.String(),
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
