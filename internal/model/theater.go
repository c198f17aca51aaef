package model

import "strings"

// Language is the audio language of a screening.  Only the two languages
// offered by the dashboard are valid.
type Language string

const (
	Hindi   Language = "Hindi"
	English Language = "English"
)

// Languages lists the valid languages in display order.
var Languages = []Language{Hindi, English}

// Valid reports whether l is one of the offered languages.
func (l Language) Valid() bool {
	return l == Hindi || l == English
}

// ParseLanguage maps s case-insensitively onto an offered language.  An
// unknown value is returned unchanged and fails Valid.
func ParseLanguage(s string) Language {
	for _, l := range Languages {
		if strings.EqualFold(s, string(l)) {
			return l
		}
	}
	return Language(s)
}

// Format is the projection format of a screening.
type Format string

const (
	Format2D Format = "2D"
	Format3D Format = "3D"
)

// Formats lists the valid formats in display order.
var Formats = []Format{Format2D, Format3D}

// Valid reports whether f is one of the offered formats.
func (f Format) Valid() bool {
	return f == Format2D || f == Format3D
}

// ParseFormat maps s case-insensitively onto an offered format.  An unknown
// value is returned unchanged and fails Valid.
func ParseFormat(s string) Format {
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f
		}
	}
	return Format(s)
}

// Theater represents a cinema venue together with the showtimes it offers
// for the current day.  The showtimes are flat; use Times to filter by
// language and format.
//
// Fields:
//  ID        – provider identifier of the theater.
//  Name      – display name (e.g. "INOX Seawoods").
//  Distance  – human readable distance shown on the nearby list.
//  Showtimes – every screening slot of the day.
type Theater struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Distance  string     `json:"distance,omitempty"`
	Showtimes []Showtime `json:"showtimes"`
}

// Showtime is a single screening slot.  Time keeps the display format used
// by the dashboard ("6:00 PM") because it doubles as the selection key.
type Showtime struct {
	Language Language `json:"language"`
	Format   Format   `json:"format"`
	Time     string   `json:"time"`
}

// Times returns the showtimes of the theater for one language and format
// in the order the provider listed them.  The result is never nil.
func (t Theater) Times(lang Language, format Format) []string {
	out := make([]string, 0, 4)
	for _, s := range t.Showtimes {
		if s.Language == lang && s.Format == format {
			out = append(out, s.Time)
		}
	}
	return out
}
