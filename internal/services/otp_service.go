package services

import (
	"context"
	"fmt"
	"time"

	"turf-booking/internal/services/gateway/otpless"
	"turf-booking/internal/status"
	"turf-booking/internal/store"
	"turf-booking/models"
	"turf-booking/monitoring"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// OTPService runs phone verification against the OTPLESS provider. The
// provider order id is bcrypt hashed at rest on the player record; the
// plain id only lives in Redis for the validity window so resend and
// verify can quote it.
type OTPService struct {
	players   store.PlayerStore
	provider  *otpless.Gateway
	redis     *redis.Client
	jwtSecret []byte
	expiry    time.Duration
}

func NewOTPService(players store.PlayerStore, provider *otpless.Gateway, redisClient *redis.Client, jwtSecret string, expiry time.Duration) *OTPService {
	return &OTPService{
		players:   players,
		provider:  provider,
		redis:     redisClient,
		jwtSecret: []byte(jwtSecret),
		expiry:    expiry,
	}
}

func otpOrderKey(mobileNo string) string {
	return fmt.Sprintf("otp:order:%s", mobileNo)
}

// Send delivers an OTP to a registered player and returns the provider
// order id. Unknown numbers are rejected before the provider is called.
func (s *OTPService) Send(ctx context.Context, mobileNo string) (string, error) {
	if mobileNo == "" {
		return "", status.ErrValidation
	}

	player, err := s.players.FindByMobile(ctx, mobileNo)
	if err != nil {
		monitoring.TrackOTPRequest("send", "unknown_player")
		return "", err
	}

	started := time.Now()
	orderID, err := s.provider.Send(ctx, mobileNo)
	monitoring.TrackGatewayCall("otpless", "send", time.Since(started))
	if err != nil {
		monitoring.TrackOTPRequest("send", "provider_error")
		return "", err
	}

	if err := s.storeOrder(ctx, player.ID, mobileNo, orderID); err != nil {
		return "", err
	}

	monitoring.TrackOTPRequest("send", "success")
	return orderID, nil
}

// Resend reissues the pending OTP for a player.
func (s *OTPService) Resend(ctx context.Context, mobileNo string) (string, error) {
	if mobileNo == "" {
		return "", status.ErrValidation
	}

	player, err := s.players.FindByMobile(ctx, mobileNo)
	if err != nil {
		monitoring.TrackOTPRequest("resend", "unknown_player")
		return "", err
	}

	orderID, err := s.redis.Get(ctx, otpOrderKey(mobileNo)).Result()
	if err == redis.Nil {
		monitoring.TrackOTPRequest("resend", "no_pending_order")
		return "", status.ErrWrongOTP
	}
	if err != nil {
		return "", err
	}

	started := time.Now()
	newOrderID, err := s.provider.Resend(ctx, orderID)
	monitoring.TrackGatewayCall("otpless", "resend", time.Since(started))
	if err != nil {
		monitoring.TrackOTPRequest("resend", "provider_error")
		return "", err
	}

	if err := s.storeOrder(ctx, player.ID, mobileNo, newOrderID); err != nil {
		return "", err
	}

	monitoring.TrackOTPRequest("resend", "success")
	return newOrderID, nil
}

// VerifyResult carries the outcome of a successful verification.
type VerifyResult struct {
	Token  string         `json:"token"`
	Player *models.Player `json:"player"`
}

// Verify checks the OTP with the provider, marks the player verified and
// issues a signed session token. A wrong code is status.ErrWrongOTP.
func (s *OTPService) Verify(ctx context.Context, mobileNo, orderID, otp string) (*VerifyResult, error) {
	if mobileNo == "" || orderID == "" || otp == "" {
		return nil, status.ErrValidation
	}

	player, err := s.players.FindByMobile(ctx, mobileNo)
	if err != nil {
		monitoring.TrackOTPRequest("verify", "unknown_player")
		return nil, err
	}

	started := time.Now()
	ok, err := s.provider.Verify(ctx, mobileNo, orderID, otp)
	monitoring.TrackGatewayCall("otpless", "verify", time.Since(started))
	if err != nil {
		monitoring.TrackOTPRequest("verify", "provider_error")
		return nil, err
	}
	if !ok {
		monitoring.TrackOTPRequest("verify", "rejected")
		return nil, status.ErrWrongOTP
	}

	if err := s.players.MarkVerified(ctx, player.ID); err != nil {
		return nil, err
	}
	s.redis.Del(ctx, otpOrderKey(mobileNo))

	token, err := s.signToken(player.ID)
	if err != nil {
		return nil, err
	}

	player.IsVerified = true

	monitoring.TrackOTPRequest("verify", "success")
	return &VerifyResult{Token: token, Player: player}, nil
}

func (s *OTPService) storeOrder(ctx context.Context, playerID, mobileNo, orderID string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(orderID), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.players.SetOTPOrder(ctx, playerID, string(hash)); err != nil {
		return err
	}
	return s.redis.Set(ctx, otpOrderKey(mobileNo), orderID, s.expiry).Err()
}

func (s *OTPService) signToken(playerID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": playerID,
		"iat":    time.Now().Unix(),
	})
	return token.SignedString(s.jwtSecret)
}
