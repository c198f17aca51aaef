package seatmap

import "fmt"

// Command is a named mutation of a Map.  Commands either succeed and leave
// the map consistent, or fail without changing it.
type Command interface {
	Name() string
	apply(m *Map) error
}

// Apply runs cmd against the map.
func (m *Map) Apply(cmd Command) error {
	return cmd.apply(m)
}

// Toggle flips one seat: available becomes selected, selected becomes
// available.  Booked seats are refused with ErrSeatUnavailable.
type Toggle struct {
	SeatID string
}

// Name implements Command.
func (Toggle) Name() string { return "toggle" }

func (c Toggle) apply(m *Map) error {
	id := NormalizeSeatID(c.SeatID)
	st, ok := m.status[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSeat, c.SeatID)
	}
	switch st {
	case Booked:
		return fmt.Errorf("%w: %s", ErrSeatUnavailable, id)
	case Selected:
		m.setAvailable(id)
	default:
		m.setSelected(id)
	}
	return nil
}

// Clear returns every selected seat to available.  Clearing an empty
// selection is a no-op.
type Clear struct{}

// Name implements Command.
func (Clear) Name() string { return "clear" }

func (Clear) apply(m *Map) error {
	for _, id := range m.selected {
		m.status[id] = Available
	}
	m.selected = m.selected[:0]
	return nil
}
