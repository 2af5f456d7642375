package services

import (
	"context"
	"testing"
	"time"

	"turf-booking/internal/services/gateway/razorpay"
	"turf-booking/internal/status"
	"turf-booking/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sumWindow struct {
	start time.Time
	end   time.Time
}

type fakePaymentStore struct {
	payments     []*models.Payment
	turfPayments []*models.TurfPayment
	sumCalls     []sumWindow
	listCalls    []sumWindow
	sumFn        func(start, end time.Time) decimal.Decimal
}

func (f *fakePaymentStore) SavePayment(ctx context.Context, p *models.Payment) (*models.Payment, error) {
	p.ID = "pay001"
	f.payments = append(f.payments, p)
	return p, nil
}

func (f *fakePaymentStore) SaveTurfPayment(ctx context.Context, p *models.TurfPayment) (*models.TurfPayment, error) {
	p.ID = "tp001"
	f.turfPayments = append(f.turfPayments, p)
	return p, nil
}

func (f *fakePaymentStore) FindTurfPaymentByPaymentID(ctx context.Context, paymentID string) (*models.TurfPayment, error) {
	for _, p := range f.turfPayments {
		if p.PaymentID == paymentID {
			return p, nil
		}
	}
	return nil, status.ErrPaymentNotFound
}

func (f *fakePaymentStore) SumEarnings(ctx context.Context, owner string, start, end time.Time) (decimal.Decimal, error) {
	f.sumCalls = append(f.sumCalls, sumWindow{start: start, end: end})
	if f.sumFn != nil {
		return f.sumFn(start, end), nil
	}
	return decimal.Zero, nil
}

func (f *fakePaymentStore) ListSince(ctx context.Context, owner string, start, end time.Time) ([]*models.TurfPayment, error) {
	f.listCalls = append(f.listCalls, sumWindow{start: start, end: end})
	return f.turfPayments, nil
}

func newTestPaymentService(store *fakePaymentStore, secret string) *PaymentService {
	gw := razorpay.New(&razorpay.Config{KeyID: "rzp_test", KeySecret: secret})
	svc := NewPaymentService(store, &fakeTurfStore{turfs: map[string]*models.Turf{}}, gw, nil, nil, "UTC")
	svc.now = func() time.Time {
		return time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestEarningsDayBuckets(t *testing.T) {
	store := &fakePaymentStore{}
	svc := newTestPaymentService(store, "secret")

	buckets, err := svc.Earnings(context.Background(), "+911234567890", "day")

	require.NoError(t, err)
	require.Len(t, buckets, 7)
	assert.Equal(t, "2026-09-04", buckets[0].Interval)
	assert.Equal(t, "2026-09-10", buckets[6].Interval)

	// Each bucket covers exactly one day.
	require.Len(t, store.sumCalls, 7)
	for _, call := range store.sumCalls {
		assert.Equal(t, 0, call.start.Hour())
		assert.Equal(t, call.start.AddDate(0, 0, 1).Add(-time.Nanosecond), call.end)
	}
}

func TestEarningsWeekBucketsCoverLast28Days(t *testing.T) {
	store := &fakePaymentStore{}
	svc := newTestPaymentService(store, "secret")

	buckets, err := svc.Earnings(context.Background(), "+911234567890", "week")

	require.NoError(t, err)
	require.Len(t, buckets, 4)
	require.Len(t, store.sumCalls, 4)

	first := store.sumCalls[0]
	last := store.sumCalls[3]
	assert.Equal(t, time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC), first.start)
	assert.Equal(t, time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), last.end)

	// Windows are contiguous.
	for i := 1; i < 4; i++ {
		assert.Equal(t, store.sumCalls[i-1].end.Add(time.Nanosecond), store.sumCalls[i].start)
	}
}

func TestEarningsMonthBuckets(t *testing.T) {
	store := &fakePaymentStore{}
	svc := newTestPaymentService(store, "secret")

	buckets, err := svc.Earnings(context.Background(), "+911234567890", "month")

	require.NoError(t, err)
	require.Len(t, buckets, 6)
	assert.Equal(t, "Apr 2026", buckets[0].Interval)
	assert.Equal(t, "Sep 2026", buckets[5].Interval)
}

func TestEarningsYearBuckets(t *testing.T) {
	store := &fakePaymentStore{}
	svc := newTestPaymentService(store, "secret")

	buckets, err := svc.Earnings(context.Background(), "+911234567890", "year")

	require.NoError(t, err)
	require.Len(t, buckets, 4)
	assert.Equal(t, "2023", buckets[0].Interval)
	assert.Equal(t, "2026", buckets[3].Interval)
}

func TestEarningsUnknownInterval(t *testing.T) {
	svc := newTestPaymentService(&fakePaymentStore{}, "secret")

	_, err := svc.Earnings(context.Background(), "+911234567890", "fortnight")

	assert.ErrorIs(t, err, status.ErrValidation)
}

func TestEarningsSumsDecimalAmounts(t *testing.T) {
	store := &fakePaymentStore{
		sumFn: func(start, end time.Time) decimal.Decimal {
			return decimal.NewFromFloat(99.95)
		},
	}
	svc := newTestPaymentService(store, "secret")

	buckets, err := svc.Earnings(context.Background(), "+911234567890", "day")

	require.NoError(t, err)
	for _, b := range buckets {
		assert.True(t, b.TotalAmount.Equal(decimal.NewFromFloat(99.95)))
	}
}

func TestWeekTotalWindow(t *testing.T) {
	store := &fakePaymentStore{
		sumFn: func(start, end time.Time) decimal.Decimal {
			return decimal.NewFromInt(4200)
		},
	}
	svc := newTestPaymentService(store, "secret")

	total, err := svc.WeekTotal(context.Background(), "+911234567890")

	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(4200)))

	require.Len(t, store.sumCalls, 1)
	assert.Equal(t, time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC), store.sumCalls[0].start)
}

func TestVerifyPaymentAcceptsValidSignature(t *testing.T) {
	store := &fakePaymentStore{}
	svc := newTestPaymentService(store, "topsecret")

	signature := razorpay.Hmac256([]byte("order_1|pay_1"), []byte("topsecret"))

	payment, err := svc.VerifyPayment(context.Background(), VerifyPaymentRequest{
		OrderID:       "order_1",
		PaymentID:     "pay_1",
		Signature:     signature,
		UserID:        "u1",
		TurfID:        "turf1",
		OwnerMobileNo: "+911234567890",
		Amount:        decimal.NewFromInt(500),
	})

	require.NoError(t, err)
	assert.Equal(t, "pay_1", payment.PaymentID)
	assert.Len(t, store.payments, 1)
}

func TestVerifyPaymentRejectsBadSignature(t *testing.T) {
	store := &fakePaymentStore{}
	svc := newTestPaymentService(store, "topsecret")

	_, err := svc.VerifyPayment(context.Background(), VerifyPaymentRequest{
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: "forged",
		UserID:    "u1",
	})

	assert.ErrorIs(t, err, status.ErrInvalidSignature)
	assert.Empty(t, store.payments)
}

func TestPaymentSuccessLookup(t *testing.T) {
	store := &fakePaymentStore{
		turfPayments: []*models.TurfPayment{
			{ID: "tp001", PaymentID: "pay_1", Amount: decimal.NewFromInt(500)},
		},
	}
	svc := newTestPaymentService(store, "secret")

	found, err := svc.PaymentSuccess(context.Background(), "pay_1")
	require.NoError(t, err)
	assert.Equal(t, "tp001", found.ID)

	_, err = svc.PaymentSuccess(context.Background(), "pay_2")
	assert.ErrorIs(t, err, status.ErrPaymentNotFound)
}
