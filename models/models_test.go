package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSlotPrice(t *testing.T) {
	turf := Turf{
		Slots: []Slot{
			{Time: "6AM-7AM", Price: decimal.NewFromInt(500)},
			{Time: "7AM-8AM", Price: decimal.NewFromInt(600)},
		},
	}

	price, ok := turf.SlotPrice("7AM-8AM")
	assert.True(t, ok)
	assert.True(t, price.Equal(decimal.NewFromInt(600)))

	_, ok = turf.SlotPrice("8AM-9AM")
	assert.False(t, ok)
}

func TestHasMember(t *testing.T) {
	booking := Booking{
		Members: []Member{
			{UserID: "u1", Name: "One"},
			{UserID: "u2", Name: "Two"},
		},
	}

	assert.True(t, booking.HasMember("u2"))
	assert.False(t, booking.HasMember("u3"))
}
