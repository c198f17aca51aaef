// Package seatmap models the seat selection state of one theater session.
//
// A Map tracks, per seat identifier, exactly one of three statuses
// (available, selected, booked) and keeps the ordered list of selected seats
// in lockstep with those statuses.  All mutations go through named commands
// applied by Map.Apply so that the pre- and post-conditions of each
// operation live in one place.
package seatmap

import (
	"fmt"
	"strconv"
	"strings"
)

// Row is one row of a seat layout: a letter label and the seat numbers it
// contains, in display order.
type Row struct {
	Label string `json:"label"`
	Seats []int  `json:"seats"`
}

// Layout is the ordered sequence of rows of a hall.  ID names the layout so
// that a downstream booking service can tell which hall the seat ids refer to.
type Layout struct {
	ID   string `json:"id"`
	Rows []Row  `json:"rows"`
}

// Total returns the number of seats across all rows.
func (l Layout) Total() int {
	n := 0
	for _, r := range l.Rows {
		n += len(r.Seats)
	}
	return n
}

// SeatIDs returns every seat id of the layout, row by row.
func (l Layout) SeatIDs() []string {
	out := make([]string, 0, l.Total())
	for _, r := range l.Rows {
		for _, n := range r.Seats {
			out = append(out, SeatID(r.Label, n))
		}
	}
	return out
}

// Validate checks that row labels are letters and that no seat id occurs
// twice.  A layout without seats is rejected.
func (l Layout) Validate() error {
	if l.Total() == 0 {
		return fmt.Errorf("layout %q has no seats", l.ID)
	}
	seen := make(map[string]struct{}, l.Total())
	for _, r := range l.Rows {
		if r.Label == "" || normalizeRowLabel(r.Label) != r.Label {
			return fmt.Errorf("layout %q: invalid row label %q", l.ID, r.Label)
		}
		for _, n := range r.Seats {
			if n <= 0 {
				return fmt.Errorf("layout %q: invalid seat number %d in row %s", l.ID, n, r.Label)
			}
			id := SeatID(r.Label, n)
			if _, dup := seen[id]; dup {
				return fmt.Errorf("layout %q: duplicate seat %s", l.ID, id)
			}
			seen[id] = struct{}{}
		}
	}
	return nil
}

// GridLayout builds a rectangular layout of rows × cols seats.  Rows are
// labelled A, B, … Z, AA, AB, … and seats are numbered from 1.
func GridLayout(id string, rows, cols int) Layout {
	l := Layout{ID: id, Rows: make([]Row, 0, rows)}
	for i := 0; i < rows; i++ {
		seats := make([]int, cols)
		for j := range seats {
			seats[j] = j + 1
		}
		l.Rows = append(l.Rows, Row{Label: indexToRowLabel(i), Seats: seats})
	}
	return l
}

// SeatID formats a seat identifier such as "B7".
func SeatID(row string, number int) string {
	return row + strconv.Itoa(number)
}

// ParseSeatID splits a seat identifier into its row label and seat number.
// Lower-case row letters are accepted and upper-cased.
func ParseSeatID(id string) (string, int, error) {
	s := strings.TrimSpace(id)
	i := 0
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	if i == 0 || i == len(s) {
		return "", 0, fmt.Errorf("malformed seat id %q", id)
	}
	n, err := strconv.Atoi(s[i:])
	if err != nil || n <= 0 {
		return "", 0, fmt.Errorf("malformed seat id %q", id)
	}
	return strings.ToUpper(s[:i]), n, nil
}

// NormalizeSeatID returns the canonical form of id ("b07" becomes "B7").
// Malformed ids are returned trimmed but otherwise untouched so that the
// lookup fails with ErrUnknownSeat.
func NormalizeSeatID(id string) string {
	row, n, err := ParseSeatID(id)
	if err != nil {
		return strings.TrimSpace(id)
	}
	return SeatID(row, n)
}

// indexToRowLabel converts a zero-based index to an alphabetical row label
// like A, B, AA.
func indexToRowLabel(i int) string {
	if i < 0 {
		return ""
	}
	res := []rune{}
	for {
		res = append(res, rune('A'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}

// normalizeRowLabel strips everything but ASCII letters and upper-cases
// the result.
func normalizeRowLabel(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 32)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
