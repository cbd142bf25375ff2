package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/nivusoft/nivugate/internal/model"
)

// EventRepo provides access to the events table.  Events are written by
// admins only; the reservation and check-in paths read them to evaluate
// the event window and status.  All timestamps are stored in UTC.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns an EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

const eventColumns = `id, public_code, name, description, start_at, end_at, status, created_at, updated_at`

func scanEvent(row *sql.Row) (*model.Event, error) {
	var ev model.Event
	var desc sql.NullString
	err := row.Scan(&ev.ID, &ev.PublicCode, &ev.Name, &desc,
		&ev.StartAt, &ev.EndAt, &ev.Status, &ev.CreatedAt, &ev.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		ev.Description = &d
	}
	return &ev, nil
}

// Create inserts a new event and populates the generated ID and
// timestamps on the provided model.
func (r *EventRepo) Create(ctx context.Context, ev *model.Event) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO events (public_code, name, description, start_at, end_at, status) VALUES (?,?,?,?,?,?)`,
		ev.PublicCode, ev.Name, ev.Description, ev.StartAt.UTC(), ev.EndAt.UTC(), ev.Status)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateCode
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ev.ID = uint64(id)
	created, err := r.GetByID(ctx, ev.ID)
	if err != nil {
		return err
	}
	*ev = *created
	return nil
}

// GetByID fetches an event by primary key.  Returns ErrEventNotFound
// when it does not exist.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	return scanEvent(row)
}

// GetByPublicCode fetches an event by its public URL code.  Returns
// ErrEventNotFound when it does not exist.
func (r *EventRepo) GetByPublicCode(ctx context.Context, code string) (*model.Event, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE public_code = ?`, code)
	return scanEvent(row)
}

// List returns all events ordered by start time descending (upcoming
// and recent first).  An empty slice is returned when none exist.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY start_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]model.Event, 0)
	for rows.Next() {
		var ev model.Event
		var desc sql.NullString
		if err := rows.Scan(&ev.ID, &ev.PublicCode, &ev.Name, &desc,
			&ev.StartAt, &ev.EndAt, &ev.Status, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			d := desc.String
			ev.Description = &d
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// UpdateStatus sets the status of an event (scheduled/ended/cancelled).
// Returns ErrEventNotFound when the event does not exist.
func (r *EventRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE events SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either missing or already in the requested status; disambiguate.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
