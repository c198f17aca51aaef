package seatmap

// Spacing between neighbouring seats in the 3D hall, in scene units.
const (
	SeatSpacingX = 1.2
	RowSpacingZ  = 1.5
)

// Placement positions one seat in the 3D hall.  The hall is centred on the
// origin with the screen towards negative Z; Y is the floor level.
type Placement struct {
	SeatID string  `json:"seatId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
}

// Placements lays the seats of a layout out on a grid centred on the
// origin.  Seat n of a row with c seats sits at x = (n - (c+1)/2) * 1.2 and
// row r of R rows at z = (r - (R-1)/2) * 1.5, so a 10-seat row spans
// -5.4 … 5.4.  The result is deterministic and in row order.
func Placements(l Layout) []Placement {
	out := make([]Placement, 0, l.Total())
	rows := len(l.Rows)
	for r, row := range l.Rows {
		cols := len(row.Seats)
		z := (float64(r) - float64(rows-1)/2) * RowSpacingZ
		for _, n := range row.Seats {
			out = append(out, Placement{
				SeatID: SeatID(row.Label, n),
				X:      (float64(n) - float64(cols+1)/2) * SeatSpacingX,
				Y:      0,
				Z:      z,
			})
		}
	}
	return out
}
