package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// InteractionEvent represents a discrete pointer event recorded for history.
type InteractionEvent struct {
	ID        string
	Kind      string
	X         float64
	Y         float64
	CreatedAt time.Time
}

// EventRepository provides access to the interaction event history.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Insert records a new interaction event. The ID and timestamp are
// assigned here if unset.
func (r *EventRepository) Insert(e *InteractionEvent) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO interaction_events (id, kind, x, y, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Kind, e.X, e.Y, e.CreatedAt,
	)
	return err
}

// Recent retrieves the most recent events, newest first.
func (r *EventRepository) Recent(limit int) ([]*InteractionEvent, error) {
	rows, err := r.db.Query(
		`SELECT id, kind, x, y, created_at
		 FROM interaction_events ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*InteractionEvent
	for rows.Next() {
		e := &InteractionEvent{}
		if err := rows.Scan(&e.ID, &e.Kind, &e.X, &e.Y, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Prune deletes events older than the given age and returns the number removed.
func (r *EventRepository) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	res, err := r.db.Exec(
		`DELETE FROM interaction_events WHERE created_at < ?`,
		cutoff,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
