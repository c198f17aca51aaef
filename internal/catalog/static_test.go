package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-ticket-dashboard/internal/model"
)

func TestStaticTheaters(t *testing.T) {
	p := NewStatic()
	theaters, err := p.Theaters(context.Background())
	require.NoError(t, err)
	require.Len(t, theaters, 3)

	inox := theaters[0]
	assert.Equal(t, "INOX Seawoods", inox.Name)
	assert.Equal(t, []string{"12:30 PM", "6:00 PM"}, inox.Times(model.Hindi, model.Format2D))
	assert.Equal(t, []string{"1:15 PM", "7:45 PM"}, inox.Times(model.English, model.Format3D))
	assert.Empty(t, inox.Times(model.Language("Tamil"), model.Format2D))

	// callers may not mutate the provider's data
	theaters[0].Name = "changed"
	again, _ := p.Theaters(context.Background())
	assert.Equal(t, "INOX Seawoods", again[0].Name)
}

func TestStaticBookedAndMenu(t *testing.T) {
	p := NewStatic()
	booked, err := p.BookedSeats(context.Background(), 1, model.Hindi, model.Format3D, "3:00 PM")
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2", "B3", "C5", "D7", "E2", "F8", "G4", "H6"}, booked)

	menu, err := p.Menu(context.Background())
	require.NoError(t, err)
	assert.Len(t, menu, 6)
	assert.Equal(t, int64(250), menu[0].Price)
}

func TestLayoutFor(t *testing.T) {
	std := LayoutFor(model.Format2D)
	assert.Equal(t, LayoutStandard, std.ID)
	assert.Equal(t, 40, std.Total())

	imm := LayoutFor(model.Format3D)
	assert.Equal(t, LayoutImmersive, imm.ID)
	assert.Equal(t, 80, imm.Total())
	assert.Equal(t, "H", imm.Rows[7].Label)
}

func TestPricing(t *testing.T) {
	assert.Equal(t, int64(200), DefaultPricing.UnitPrice(model.Format2D))
	assert.Equal(t, int64(250), DefaultPricing.UnitPrice(model.Format3D))
	custom := Pricing{Standard: 150, Immersive: 300}
	assert.Equal(t, int64(300), custom.UnitPrice(model.Format3D))
}
