package renderer_test

import (
	"bytes"
	"testing"
	"time"

	"hotel/internal/domains/invoice/model"
	"hotel/internal/domains/invoice/renderer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func document() model.Document {
	issued := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

	return model.Document{
		Number:     model.Number("3f2b1c4d-aaaa-bbbb-cccc-000000000001", issued),
		IssuedAt:   issued,
		HotelName:  "Seaside Hotel",
		GuestName:  "Ana Müller",
		GuestPhone: "+62 811 000 111",
		CheckIn:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		RoomNumber: "101",
		RoomType:   "Deluxe",
		Nights:     2,
		Rate:       2000,
		Total:      4000,
	}
}

func TestRender(t *testing.T) {
	first, err := renderer.Render(document())
	require.NoError(t, err)

	second, err := renderer.Render(document())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(first, []byte("%PDF-")))
	assert.Equal(t, first, second)
}

func TestNumber(t *testing.T) {
	issued := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "INV-20240603-3F2B1C4D", model.Number("3f2b1c4d-aaaa-bbbb-cccc-000000000001", issued))
	assert.Equal(t, "INV-20240603-AB", model.Number("ab", issued))
}

func TestAmount(t *testing.T) {
	tests := map[float64]string{
		0:          "0.00",
		4000:       "4,000.00",
		999.5:      "999.50",
		1234567.89: "1,234,567.89",
		-2500:      "-2,500.00",
	}

	for value, want := range tests {
		assert.Equal(t, want, renderer.Amount(value))
	}
}
