package models

import (
	"github.com/shopspring/decimal"
)

// Slot is one entry of a turf's fixed slot catalog. The catalog is defined
// once per turf, not per date.
type Slot struct {
	Time  string          `json:"time"`
	Price decimal.Decimal `json:"price"`
}

type Turf struct {
	ID               string   `db:"id" json:"id"`
	Category         string   `db:"category" json:"category"`
	TurfName         string   `db:"turfname" json:"turfname"`
	Location         string   `db:"location" json:"location"`
	Description      string   `db:"description" json:"description"`
	Images           string   `db:"images" json:"images"`
	PlayWithStranger bool     `db:"playwithstranger" json:"playwithstranger"`
	Court            int      `db:"court" json:"court"`
	Amenities        []string `json:"amenties"`
	Rating           float64  `db:"rating" json:"rating"`
	Slots            []Slot   `json:"slots"`
	Discounts        float64  `db:"discounts" json:"discounts,omitempty"`
	OwnerMobileNo    string   `db:"owner_mobile_no" json:"ownerMobileNo"`
}

// SlotPrice returns the price for a slot label, or ok=false when the label
// is not part of the catalog.
func (t *Turf) SlotPrice(label string) (decimal.Decimal, bool) {
	for _, s := range t.Slots {
		if s.Time == label {
			return s.Price, true
		}
	}
	return decimal.Zero, false
}

// TurfAvailability is a turf together with the subset of its catalog slots
// that still have court capacity on a given date.
type TurfAvailability struct {
	Turf
	AvailableSlots []Slot `json:"availableSlots"`
}
