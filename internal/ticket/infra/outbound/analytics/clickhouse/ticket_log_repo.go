package clickhouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	ticketDomain "github.com/davicafu/eventix/internal/ticket/domain"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// TicketLogRepo implementa TicketAnalytics sobre ClickHouse: un registro
// append-only de emisiones y cancelaciones para análisis de ventas.
// Best-effort por contrato: los fallos nunca afectan a la request.
type TicketLogRepo struct {
	db *sql.DB
}

// NewTicketLogRepo es el constructor.
func NewTicketLogRepo(addr string, dbName string) (*TicketLogRepo, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: dbName,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
	})

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping clickhouse: %w", err)
	}

	return &TicketLogRepo{db: conn}, nil
}

func (r *TicketLogRepo) LogIssued(ctx context.Context, t *ticketDomain.Ticket, at time.Time) error {
	return r.log(ctx, t, "ticket.issued", at)
}

func (r *TicketLogRepo) LogCancelled(ctx context.Context, t *ticketDomain.Ticket, at time.Time) error {
	return r.log(ctx, t, "ticket.cancelled", at)
}

func (r *TicketLogRepo) log(ctx context.Context, t *ticketDomain.Ticket, eventType string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ticket_log (ticket_id, event_id, event_name, brl_amount, usd_amount, status, event_type, event_time)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TicketID,
		t.EventID.String(),
		t.EventName,
		t.BRLAmount,
		t.USDAmount,
		string(t.Status),
		eventType,
		at,
	)
	if err != nil {
		return fmt.Errorf("failed to log ticket %s: %w", t.TicketID, err)
	}
	return nil
}

// DailySales transporta el agregado diario de ventas.
type DailySales struct {
	Day            time.Time
	IssuedCount    int
	CancelledCount int
	BRLTotal       float64
}

// GetDailySales agrega emisiones y cancelaciones por día.
func (r *TicketLogRepo) GetDailySales(ctx context.Context, start, end time.Time) ([]DailySales, error) {
	query := `
		SELECT
			toStartOfDay(event_time) AS day,
			countIf(event_type = 'ticket.issued') AS issued,
			countIf(event_type = 'ticket.cancelled') AS cancelled,
			sumIf(brl_amount, event_type = 'ticket.issued') AS brl_total
		FROM ticket_log
		WHERE event_time BETWEEN ? AND ?
		GROUP BY day
		ORDER BY day
	`
	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []DailySales
	for rows.Next() {
		var s DailySales
		if err := rows.Scan(&s.Day, &s.IssuedCount, &s.CancelledCount, &s.BRLTotal); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

// Verificación estática
var _ ticketDomain.TicketAnalytics = (*TicketLogRepo)(nil)
