package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"turf-booking/internal/services/gateway/razorpay"
	"turf-booking/internal/status"
	"turf-booking/internal/store"
	"turf-booking/models"
	"turf-booking/monitoring"
	"turf-booking/utils"

	pubnub "github.com/pubnub/go/v7"
	"github.com/shopspring/decimal"
)

// PaymentService drives the gateway order flow and the owner earnings
// reports. Earnings intervals are anchored to the configured business zone,
// not the server's local time.
type PaymentService struct {
	payments store.PaymentStore
	turfs    store.TurfStore
	gateway  *razorpay.Gateway
	pubnub   *pubnub.PubNub
	holds    *HoldService
	zone     *time.Location

	now func() time.Time
}

func NewPaymentService(payments store.PaymentStore, turfs store.TurfStore, gw *razorpay.Gateway, pn *pubnub.PubNub, holds *HoldService, zoneName string) *PaymentService {
	zone, err := time.LoadLocation(zoneName)
	if err != nil {
		log.Printf("unknown earnings zone %q, falling back to UTC", zoneName)
		zone = time.UTC
	}

	service := &PaymentService{
		payments: payments,
		turfs:    turfs,
		gateway:  gw,
		pubnub:   pn,
		holds:    holds,
		zone:     zone,
		now:      time.Now,
	}

	if pn != nil {
		go service.SubscribeToPaymentNotifications()
	}

	return service
}

type CreateOrderRequest struct {
	UserID string          `json:"userId"`
	TurfID string          `json:"turfId"`
	Amount decimal.Decimal `json:"amount"`
}

// CreateOrder opens a gateway order for a turf payment. The turf id, owner
// number and user id travel as order notes so the webhook side can
// correlate the settlement without a foreign key.
func (s *PaymentService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*razorpay.Order, error) {
	if req.UserID == "" || req.TurfID == "" || !req.Amount.IsPositive() {
		return nil, status.ErrValidation
	}

	turf, err := s.turfs.FindByID(ctx, req.TurfID)
	if err != nil {
		return nil, err
	}

	receipt, _ := utils.GenerateCode(8)

	started := time.Now()
	order, err := s.gateway.CreateOrder(ctx, &razorpay.OrderRequest{
		Amount:   req.Amount,
		Currency: "INR",
		Receipt:  receipt,
		Notes: map[string]string{
			"turfId":        turf.ID,
			"ownerMobileNo": turf.OwnerMobileNo,
			"userId":        req.UserID,
		},
	})
	monitoring.TrackGatewayCall("razorpay", "create_order", time.Since(started))
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	return order, nil
}

type VerifyPaymentRequest struct {
	OrderID       string          `json:"razorpay_order_id"`
	PaymentID     string          `json:"razorpay_payment_id"`
	Signature     string          `json:"razorpay_signature"`
	UserID        string          `json:"userId"`
	TurfID        string          `json:"turfId"`
	OwnerMobileNo string          `json:"ownerMobileNo"`
	Amount        decimal.Decimal `json:"amount"`
}

// VerifyPayment checks the checkout signature and persists the payment.
// A bad signature is status.ErrInvalidSignature; nothing is stored then.
func (s *PaymentService) VerifyPayment(ctx context.Context, req VerifyPaymentRequest) (*models.Payment, error) {
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		return nil, status.ErrValidation
	}

	if !s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		return nil, status.ErrInvalidSignature
	}

	payment, err := s.payments.SavePayment(ctx, &models.Payment{
		UserID:        req.UserID,
		Amount:        req.Amount,
		PaymentID:     req.PaymentID,
		OrderID:       req.OrderID,
		OwnerMobileNo: req.OwnerMobileNo,
		TurfID:        req.TurfID,
	})
	if err != nil {
		return nil, err
	}

	s.publishToUser(req.UserID, map[string]any{
		"type":       "payment_success",
		"payment_id": payment.PaymentID,
		"turf_id":    payment.TurfID,
	})

	return payment, nil
}

// RecordTurfPayment stores the owner-side settlement record.
func (s *PaymentService) RecordTurfPayment(ctx context.Context, p *models.TurfPayment) (*models.TurfPayment, error) {
	if p.TurfID == "" || p.OwnerMobileNo == "" || p.PaymentID == "" {
		return nil, status.ErrValidation
	}
	return s.payments.SaveTurfPayment(ctx, p)
}

// PaymentSuccess looks up the settlement for a gateway payment id.
func (s *PaymentService) PaymentSuccess(ctx context.Context, paymentID string) (*models.TurfPayment, error) {
	if paymentID == "" {
		return nil, status.ErrValidation
	}
	return s.payments.FindTurfPaymentByPaymentID(ctx, paymentID)
}

// Earnings aggregates an owner's settlements into labelled interval
// buckets: the last 7 days, 4 weeks, 6 calendar months or 4 calendar
// years, oldest first.
func (s *PaymentService) Earnings(ctx context.Context, ownerMobileNo, interval string) ([]models.EarningsBucket, error) {
	if ownerMobileNo == "" {
		return nil, status.ErrValidation
	}

	ranges, err := s.intervalRanges(interval)
	if err != nil {
		return nil, err
	}

	buckets := make([]models.EarningsBucket, 0, len(ranges))
	for _, r := range ranges {
		total, err := s.payments.SumEarnings(ctx, ownerMobileNo, r.start, r.end)
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, models.EarningsBucket{Interval: r.label, TotalAmount: total})
	}
	return buckets, nil
}

// WeekTotal sums an owner's settlements over the last 4 weeks.
func (s *PaymentService) WeekTotal(ctx context.Context, ownerMobileNo string) (decimal.Decimal, error) {
	if ownerMobileNo == "" {
		return decimal.Zero, status.ErrValidation
	}

	now := s.now().In(s.zone)
	start := startOfDay(now).AddDate(0, 0, -27)
	return s.payments.SumEarnings(ctx, ownerMobileNo, start, now)
}

// PaymentsSince lists an owner's settlements from the start of the named
// interval to now, newest first.
func (s *PaymentService) PaymentsSince(ctx context.Context, ownerMobileNo, interval string) ([]*models.TurfPayment, error) {
	if ownerMobileNo == "" {
		return nil, status.ErrValidation
	}

	ranges, err := s.intervalRanges(interval)
	if err != nil {
		return nil, err
	}

	return s.payments.ListSince(ctx, ownerMobileNo, ranges[0].start, s.now().In(s.zone))
}

type earningsRange struct {
	label string
	start time.Time
	end   time.Time
}

func (s *PaymentService) intervalRanges(interval string) ([]earningsRange, error) {
	now := s.now().In(s.zone)
	today := startOfDay(now)

	switch interval {
	case "day":
		ranges := make([]earningsRange, 0, 7)
		for i := 6; i >= 0; i-- {
			day := today.AddDate(0, 0, -i)
			ranges = append(ranges, earningsRange{
				label: day.Format(models.DateLayout),
				start: day,
				end:   day.AddDate(0, 0, 1).Add(-time.Nanosecond),
			})
		}
		return ranges, nil

	case "week":
		ranges := make([]earningsRange, 0, 4)
		for i := 3; i >= 0; i-- {
			start := today.AddDate(0, 0, -7*(i+1)+1)
			end := today.AddDate(0, 0, -7*i+1).Add(-time.Nanosecond)
			ranges = append(ranges, earningsRange{
				label: fmt.Sprintf("%s - %s", start.Format("Jan 02"), end.Format("Jan 02")),
				start: start,
				end:   end,
			})
		}
		return ranges, nil

	case "month":
		ranges := make([]earningsRange, 0, 6)
		for i := 5; i >= 0; i-- {
			start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.zone).AddDate(0, -i, 0)
			ranges = append(ranges, earningsRange{
				label: start.Format("Jan 2006"),
				start: start,
				end:   start.AddDate(0, 1, 0).Add(-time.Nanosecond),
			})
		}
		return ranges, nil

	case "year":
		ranges := make([]earningsRange, 0, 4)
		for i := 3; i >= 0; i-- {
			start := time.Date(now.Year()-i, time.January, 1, 0, 0, 0, 0, s.zone)
			ranges = append(ranges, earningsRange{
				label: strconv.Itoa(start.Year()),
				start: start,
				end:   start.AddDate(1, 0, 0).Add(-time.Nanosecond),
			})
		}
		return ranges, nil
	}

	return nil, fmt.Errorf("%w: unknown interval %q", status.ErrValidation, interval)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SubscribeToPaymentNotifications listens for gateway webhook relays and
// releases the payer's advisory slot hold once the payment settles.
func (s *PaymentService) SubscribeToPaymentNotifications() {
	listener := pubnub.NewListener()

	s.pubnub.AddListener(listener)
	s.pubnub.Subscribe().
		Channels([]string{"payment-notifications"}).
		Execute()

	for message := range listener.Message {
		go s.handlePaymentNotification(message)
	}
}

func (s *PaymentService) handlePaymentNotification(message *pubnub.PNMessage) {
	var notification struct {
		PaymentID string `json:"payment_id"`
		Status    string `json:"status"`
		UserID    string `json:"user_id"`
		TurfID    string `json:"turf_id"`
		Date      string `json:"date"`
		Slot      string `json:"slot"`
		Court     string `json:"court"`
	}

	data, ok := message.Message.(map[string]any)
	if !ok {
		return
	}

	jsonData, _ := json.Marshal(data)
	if err := json.Unmarshal(jsonData, &notification); err != nil {
		log.Printf("Error parsing payment notification: %v", err)
		return
	}

	if notification.Status != "success" {
		return
	}

	ctx := context.Background()

	if s.holds != nil && notification.TurfID != "" {
		if err := s.holds.ReleaseHold(ctx, notification.TurfID, notification.Date, notification.Slot, notification.Court, notification.UserID); err != nil {
			log.Printf("Error releasing hold after payment %s: %v", notification.PaymentID, err)
		}
	}

	s.publishToUser(notification.UserID, map[string]any{
		"type":       "payment_success",
		"payment_id": notification.PaymentID,
		"turf_id":    notification.TurfID,
	})
}

func (s *PaymentService) publishToUser(userID string, message map[string]any) {
	if s.pubnub == nil || userID == "" {
		return
	}
	s.pubnub.Publish().
		Channel(fmt.Sprintf("user-%s", userID)).
		Message(message).
		Execute()
}
