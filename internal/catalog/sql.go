package catalog

// This file implements Provider on top of MySQL.  The schema lives in
// migrations/001_catalog.sql: theaters, showtimes (one row per slot),
// booked_seats (one row per taken seat of a screening) and food_items.

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/cinema-ticket-dashboard/internal/model"
)

// theaterRow mirrors a row of the theaters table.
type theaterRow struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Distance string `db:"distance"`
}

// showtimeRow mirrors a row of the showtimes table.  Position keeps the
// provider's display order within a theater.
type showtimeRow struct {
	TheaterID int64  `db:"theater_id"`
	Language  string `db:"language"`
	Format    string `db:"format"`
	ShowTime  string `db:"show_time"`
}

// SQLRepo reads the catalog from MySQL.  It depends on a sqlx.DB which is
// opened by the database package.
type SQLRepo struct {
	db *sqlx.DB
}

// NewSQLRepo constructs a SQLRepo with the provided DB handle.
func NewSQLRepo(db *sqlx.DB) *SQLRepo {
	return &SQLRepo{db: db}
}

const (
	qTheaters  = `SELECT id, name, distance FROM theaters ORDER BY id`
	qShowtimes = `SELECT theater_id, language, format, show_time FROM showtimes ORDER BY theater_id, position`
	qBooked    = `SELECT seat_id FROM booked_seats WHERE theater_id = ? AND language = ? AND format = ? AND show_time = ? ORDER BY seat_id`
	qMenu      = `SELECT id, name, item_type, description, price, category FROM food_items ORDER BY id`
)

// Theaters implements Provider.  Showtime rows with an unknown language or
// format are skipped so that a bad row cannot break the wizard.
func (r *SQLRepo) Theaters(ctx context.Context) ([]model.Theater, error) {
	var theaters []theaterRow
	if err := r.db.SelectContext(ctx, &theaters, qTheaters); err != nil {
		return nil, fmt.Errorf("select theaters: %w", err)
	}
	var slots []showtimeRow
	if err := r.db.SelectContext(ctx, &slots, qShowtimes); err != nil {
		return nil, fmt.Errorf("select showtimes: %w", err)
	}
	byTheater := make(map[int64][]model.Showtime, len(theaters))
	for _, s := range slots {
		st := model.Showtime{Language: model.Language(s.Language), Format: model.Format(s.Format), Time: s.ShowTime}
		if !st.Language.Valid() || !st.Format.Valid() {
			continue
		}
		byTheater[s.TheaterID] = append(byTheater[s.TheaterID], st)
	}
	out := make([]model.Theater, 0, len(theaters))
	for _, t := range theaters {
		showtimes := byTheater[t.ID]
		if showtimes == nil {
			showtimes = []model.Showtime{}
		}
		out = append(out, model.Theater{ID: t.ID, Name: t.Name, Distance: t.Distance, Showtimes: showtimes})
	}
	return out, nil
}

// BookedSeats implements Provider.
func (r *SQLRepo) BookedSeats(ctx context.Context, theaterID int64, lang model.Language, format model.Format, showTime string) ([]string, error) {
	seats := []string{}
	if err := r.db.SelectContext(ctx, &seats, qBooked, theaterID, string(lang), string(format), showTime); err != nil {
		return nil, fmt.Errorf("select booked seats: %w", err)
	}
	return seats, nil
}

// Menu implements Provider.
func (r *SQLRepo) Menu(ctx context.Context) ([]model.FoodItem, error) {
	items := []model.FoodItem{}
	if err := r.db.SelectContext(ctx, &items, qMenu); err != nil {
		return nil, fmt.Errorf("select food items: %w", err)
	}
	return items, nil
}
