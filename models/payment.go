package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a verified gateway payment made by a player.
type Payment struct {
	ID            string          `db:"id" json:"id"`
	UserID        string          `db:"user_id" json:"userId"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	PaymentID     string          `db:"payment_id" json:"paymentId"`
	OrderID       string          `db:"order_id" json:"orderId"`
	OwnerMobileNo string          `db:"owner_mobile_no" json:"ownerMobileNo"`
	TurfID        string          `db:"turf_id" json:"turfId"`
	Created       time.Time       `db:"created" json:"created"`
}

// TurfPayment is the owner-side settlement record. It is correlated to a
// booking by turf/amount/slot only, not by a foreign key.
type TurfPayment struct {
	ID            string          `db:"id" json:"id"`
	TurfID        string          `db:"turf_id" json:"turfId"`
	OwnerMobileNo string          `db:"owner_mobile_no" json:"ownerMobileNo"`
	PaymentID     string          `db:"payment_id" json:"paymentId"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Created       time.Time       `db:"created" json:"createdAt"`
}

// EarningsBucket is one labelled interval of an owner's earnings report.
type EarningsBucket struct {
	Interval    string          `json:"interval"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}
