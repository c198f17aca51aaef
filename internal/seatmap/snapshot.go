package seatmap

import "fmt"

// Snapshot is the serialisable form of a Map.  Only non-available seats
// are listed; Selected keeps the selection order.
type Snapshot struct {
	Layout   Layout   `json:"layout"`
	Booked   []string `json:"booked"`
	Selected []string `json:"selected"`
}

// Snapshot captures the current state of the map.
func (m *Map) Snapshot() Snapshot {
	booked := make([]string, 0)
	for _, id := range m.layout.SeatIDs() {
		if m.status[id] == Booked {
			booked = append(booked, id)
		}
	}
	return Snapshot{Layout: m.layout, Booked: booked, Selected: m.SelectedIDs()}
}

// FromSnapshot rebuilds a Map.  A selected seat that is also booked, or
// that does not exist in the layout, makes the snapshot invalid.
func FromSnapshot(s Snapshot) (*Map, error) {
	m, err := New(s.Layout, s.Booked)
	if err != nil {
		return nil, err
	}
	for _, id := range s.Selected {
		if err := m.Apply(Toggle{SeatID: id}); err != nil {
			return nil, fmt.Errorf("restore seat map: %w", err)
		}
		if st := m.status[NormalizeSeatID(id)]; st != Selected {
			return nil, fmt.Errorf("restore seat map: seat %s listed twice", id)
		}
	}
	return m, nil
}
