package store

import (
	"errors"
	"testing"

	"turf-booking/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Number fields cast whatever value they are handed, and a raw
// decimal.Decimal casts to 0. These collections mirror the migrations so the
// field setters run against the same typed fields as production records.

func bookingTestCollection() *core.Collection {
	c := core.NewBaseCollection("bookings")
	c.Fields.Add(
		&core.TextField{Name: "user_id"},
		&core.TextField{Name: "turf_id"},
		&core.TextField{Name: "turf_name"},
		&core.TextField{Name: "turf_image"},
		&core.TextField{Name: "location"},
		&core.TextField{Name: "court"},
		&core.TextField{Name: "date"},
		&core.TextField{Name: "slot"},
		&core.BoolField{Name: "play_with_stranger"},
		&core.JSONField{Name: "members"},
		&core.NumberField{Name: "price"},
		&core.NumberField{Name: "total_members", OnlyInt: true},
		&core.NumberField{Name: "remaining_members", OnlyInt: true},
	)
	return c
}

func paymentTestCollection() *core.Collection {
	c := core.NewBaseCollection("payments")
	c.Fields.Add(
		&core.TextField{Name: "user_id"},
		&core.NumberField{Name: "amount"},
		&core.TextField{Name: "payment_id"},
		&core.TextField{Name: "order_id"},
		&core.TextField{Name: "owner_mobile_no"},
		&core.TextField{Name: "turf_id"},
	)
	return c
}

func turfPaymentTestCollection() *core.Collection {
	c := core.NewBaseCollection("turf_payments")
	c.Fields.Add(
		&core.TextField{Name: "turf_id"},
		&core.TextField{Name: "owner_mobile_no"},
		&core.TextField{Name: "payment_id"},
		&core.NumberField{Name: "amount"},
	)
	return c
}

func TestSetBookingFieldsKeepsPrice(t *testing.T) {
	record := core.NewRecord(bookingTestCollection())

	setBookingFields(record, &models.Booking{
		UserID: "user1",
		TurfID: "turf1",
		Court:  "A",
		Date:   "2026-09-10",
		Slot:   "6 AM - 7 AM",
		Price:  decimal.NewFromInt(500),
	})

	require.Equal(t, 500.0, record.GetFloat("price"))

	got, err := bookingFromRecord(record)
	require.NoError(t, err)
	require.True(t, got.Price.Equal(decimal.NewFromInt(500)), "round-tripped price %s", got.Price)
}

func TestSetBookingFieldsKeepsFractionalPrice(t *testing.T) {
	record := core.NewRecord(bookingTestCollection())

	setBookingFields(record, &models.Booking{
		UserID: "user1",
		TurfID: "turf1",
		Court:  "A",
		Date:   "2026-09-10",
		Slot:   "6 AM - 7 AM",
		Price:  decimal.RequireFromString("650.50"),
	})

	require.Equal(t, 650.5, record.GetFloat("price"))
}

func TestSetPaymentFieldsKeepsAmount(t *testing.T) {
	record := core.NewRecord(paymentTestCollection())

	setPaymentFields(record, &models.Payment{
		UserID:        "user1",
		Amount:        decimal.NewFromInt(1200),
		PaymentID:     "pay_1",
		OrderID:       "order_1",
		OwnerMobileNo: "+919999999999",
		TurfID:        "turf1",
	})

	require.Equal(t, 1200.0, record.GetFloat("amount"))
	require.Equal(t, "pay_1", record.GetString("payment_id"))
}

func TestSetTurfPaymentFieldsKeepsAmount(t *testing.T) {
	record := core.NewRecord(turfPaymentTestCollection())

	setTurfPaymentFields(record, &models.TurfPayment{
		TurfID:        "turf1",
		OwnerMobileNo: "+919999999999",
		PaymentID:     "pay_1",
		Amount:        decimal.NewFromInt(750),
	})

	require.Equal(t, 750.0, record.GetFloat("amount"))

	got := turfPaymentFromRecord(record)
	require.True(t, got.Amount.Equal(decimal.NewFromInt(750)), "round-tripped amount %s", got.Amount)
}

func TestIsUniqueViolation(t *testing.T) {
	notUnique := validation.Errors{
		"slot": validation.NewError("validation_not_unique", "Value must be unique"),
	}
	require.True(t, isUniqueViolation(notUnique))

	rawSQLite := errors.New("UNIQUE constraint failed: bookings.turf_id, bookings.court, bookings.date, bookings.slot")
	require.True(t, isUniqueViolation(rawSQLite))

	require.False(t, isUniqueViolation(nil))
	require.False(t, isUniqueViolation(errors.New("database is locked")))
	require.False(t, isUniqueViolation(validation.Errors{
		"date": validation.NewError("validation_required", "cannot be blank"),
	}))
}
