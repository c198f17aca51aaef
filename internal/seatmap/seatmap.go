package seatmap

import (
	"errors"
	"fmt"
)

// Status is the state of one seat.  A seat is always in exactly one of the
// three statuses.
type Status string

const (
	Available Status = "available"
	Selected  Status = "selected"
	Booked    Status = "booked"
)

// ErrSeatUnavailable is returned when a user action targets a booked seat.
// It is informational: the map is left untouched and the caller should only
// indicate the seat as taken.
var ErrSeatUnavailable = errors.New("seat unavailable")

// ErrUnknownSeat is returned for a seat id that is not part of the layout.
var ErrUnknownSeat = errors.New("unknown seat")

// Seat is the read model of a single seat.
type Seat struct {
	ID     string `json:"id"`
	Row    string `json:"row"`
	Number int    `json:"number"`
	Status Status `json:"status"`
}

// Stats counts seats per status.  Available+Selected+Booked == Total.
type Stats struct {
	Available int `json:"available"`
	Selected  int `json:"selected"`
	Booked    int `json:"booked"`
	Total     int `json:"total"`
}

// Selection is the hand-off payload for the booking collaborator: the
// selected seat ids in selection order and their total price.
type Selection struct {
	SeatIDs    []string `json:"seatIds"`
	TotalPrice int64    `json:"totalPrice"`
}

// Map holds the seat statuses of one theater session.  A Map is owned by a
// single booking session and is not safe for concurrent use.
type Map struct {
	layout   Layout
	status   map[string]Status
	selected []string // selection order; mirrors the seats whose status is Selected
}

// New creates a map for layout with every seat available except the ids in
// booked.  Booked ids outside the layout are ignored because providers may
// share one booked set across halls of different sizes.
func New(layout Layout, booked []string) (*Map, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	m := &Map{
		layout:   layout,
		status:   make(map[string]Status, layout.Total()),
		selected: []string{},
	}
	for _, id := range layout.SeatIDs() {
		m.status[id] = Available
	}
	for _, id := range booked {
		id = NormalizeSeatID(id)
		if _, ok := m.status[id]; ok {
			m.status[id] = Booked
		}
	}
	return m, nil
}

// Layout returns the layout the map was built for.
func (m *Map) Layout() Layout { return m.layout }

// Status returns the status of a seat.
func (m *Map) Status(seatID string) (Status, error) {
	st, ok := m.status[NormalizeSeatID(seatID)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownSeat, seatID)
	}
	return st, nil
}

// Toggle flips a seat between available and selected.
func (m *Map) Toggle(seatID string) error { return m.Apply(Toggle{SeatID: seatID}) }

// Clear returns every selected seat to available.
func (m *Map) Clear() error { return m.Apply(Clear{}) }

// SelectedIDs returns a copy of the selected seat ids in selection order.
func (m *Map) SelectedIDs() []string {
	out := make([]string, len(m.selected))
	copy(out, m.selected)
	return out
}

// Total returns the price of the current selection at unitPrice per seat.
func (m *Map) Total(unitPrice int64) int64 {
	return int64(len(m.selected)) * unitPrice
}

// Selection returns the payload handed to the booking collaborator.
func (m *Map) Selection(unitPrice int64) Selection {
	return Selection{SeatIDs: m.SelectedIDs(), TotalPrice: m.Total(unitPrice)}
}

// Stats counts the seats per status from the current statuses.
func (m *Map) Stats() Stats {
	var s Stats
	for _, st := range m.status {
		switch st {
		case Available:
			s.Available++
		case Selected:
			s.Selected++
		case Booked:
			s.Booked++
		}
	}
	s.Total = s.Available + s.Selected + s.Booked
	return s
}

// Seats returns every seat of the layout in row order with its status.
func (m *Map) Seats() []Seat {
	out := make([]Seat, 0, len(m.status))
	for _, r := range m.layout.Rows {
		for _, n := range r.Seats {
			id := SeatID(r.Label, n)
			out = append(out, Seat{ID: id, Row: r.Label, Number: n, Status: m.status[id]})
		}
	}
	return out
}

// setSelected and setAvailable are the only places that move a seat in or
// out of the Selected status, keeping m.selected in sync.
func (m *Map) setSelected(id string) {
	m.status[id] = Selected
	m.selected = append(m.selected, id)
}

func (m *Map) setAvailable(id string) {
	m.status[id] = Available
	for i, s := range m.selected {
		if s == id {
			m.selected = append(m.selected[:i], m.selected[i+1:]...)
			break
		}
	}
}
