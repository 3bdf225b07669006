package postgres

import (
	"context"
	"database/sql"

	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/repository"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) ListUpcoming(ctx context.Context, fromDate string) ([]domain.Event, error) {
	query := `SELECT e.id, e.venue_id, e.name, to_char(e.date, 'YYYY-MM-DD'), to_char(e.start_time, 'HH24:MI'),
	                 to_char(e.end_time, 'HH24:MI'), e.is_active, v.id, v.name, v.address, v.city, v.state
	          FROM events e JOIN venues v ON v.id = e.venue_id
	          WHERE e.is_active = TRUE AND e.date >= $1
	          ORDER BY e.date, e.start_time`
	rows, err := r.db.QueryContext(ctx, query, fromDate)
	if err != nil {
		return nil, domain.Backend(err)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		var e domain.Event
		v := &domain.Venue{}
		if err := rows.Scan(&e.ID, &e.VenueID, &e.Name, &e.Date, &e.StartTime, &e.EndTime, &e.IsActive,
			&v.ID, &v.Name, &v.Address, &v.City, &v.State); err != nil {
			return nil, domain.Backend(err)
		}
		e.Venue = v
		events = append(events, e)
	}
	return events, mapError(rows.Err(), nil)
}
