package postgres

import (
	"context"
	"database/sql"
	"errors"
)

// SequenceRepoPostgres implementa SequenceGenerator con un upsert atómico:
// el INSERT ... ON CONFLICT ... RETURNING serializa los incrementos en el
// propio Postgres, sin locking de aplicación.
type SequenceRepoPostgres struct {
	db *sql.DB
}

func NewSequenceRepoPostgres(db *sql.DB) *SequenceRepoPostgres {
	return &SequenceRepoPostgres{db: db}
}

// Next incrementa el contador y devuelve el nuevo valor; un contador
// inexistente nace en 1.
func (r *SequenceRepoPostgres) Next(ctx context.Context, name string) (int64, error) {
	var value int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO counters (name, sequence_value) VALUES ($1, 1)
		 ON CONFLICT (name) DO UPDATE SET sequence_value = counters.sequence_value + 1
		 RETURNING sequence_value`, name,
	).Scan(&value)
	if err != nil {
		// Resultado ausente del upsert: fallback documentado al primer valor.
		if errors.Is(err, sql.ErrNoRows) {
			return 1, nil
		}
		return 0, err
	}
	return value, nil
}
