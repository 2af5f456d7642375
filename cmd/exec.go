package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"turf-booking/config"
	"turf-booking/internal/handlers"
	"turf-booking/internal/services"
	"turf-booking/internal/services/gateway/otpless"
	"turf-booking/internal/services/gateway/razorpay"
	"turf-booking/internal/store"
	"turf-booking/monitoring"
	"turf-booking/security"
	"turf-booking/utils"

	_ "turf-booking/migrations"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	pubnub "github.com/pubnub/go/v7"
	"github.com/redis/go-redis/v9"
)

func Start() error {
	app := pocketbase.New()

	cfg := config.LoadConfig()

	redisClient := utils.NewRedisClient(cfg.RedisURL)
	defer redisClient.Close()

	pnConfig := pubnub.NewConfigWithUserId(pubnub.UserId("turf-booking-server"))
	pnConfig.PublishKey = cfg.PubNubPublishKey
	pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
	pnConfig.SecretKey = cfg.PubNubSecretKey

	pn := pubnub.NewPubNub(pnConfig)

	_, cancel := context.WithCancel(context.Background())
	defer cancel()

	razorpayGateway := razorpay.New(&razorpay.Config{
		BaseURL:   cfg.RazorpayBaseURL,
		KeyID:     cfg.RazorpayKeyID,
		KeySecret: cfg.RazorpayKeySecret,
	})
	otplessGateway := otpless.New(&otpless.Config{
		BaseURL:      cfg.OTPLessBaseURL,
		ClientID:     cfg.OTPLessClientID,
		ClientSecret: cfg.OTPLessClientSecret,
		Channel:      cfg.OTPChannel,
		OTPLength:    cfg.OTPLength,
		Expiry:       cfg.OTPExpiryMinutes * 60,
	})

	// Stores
	turfStore := store.NewPBTurfStore(app)
	bookingStore := store.NewPBBookingStore(app)
	playerStore := store.NewPBPlayerStore(app)
	groupStore := store.NewPBGroupStore(app)
	paymentStore := store.NewPBPaymentStore(app)

	// Services
	holdService := services.NewHoldService(redisClient, cfg.SlotHoldTimeout)
	bookingService := services.NewBookingService(turfStore, bookingStore, pn)
	turfService := services.NewTurfService(turfStore, cfg.S3Bucket)
	playerService := services.NewPlayerService(playerStore, turfStore)
	communityService := services.NewCommunityService(groupStore)
	paymentService := services.NewPaymentService(paymentStore, turfStore, razorpayGateway, pn, holdService, cfg.EarningsZone)
	otpService := services.NewOTPService(playerStore, otplessGateway, redisClient, cfg.JWTSecret, time.Duration(cfg.OTPExpiryMinutes)*time.Minute)

	// Handlers
	bookingHandler := handlers.NewBookingHandler(bookingService, holdService)
	turfHandler := handlers.NewTurfHandler(turfService, bookingService)
	userHandler := handlers.NewUserHandler(playerService)
	communityHandler := handlers.NewCommunityHandler(communityService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	otpHandler := handlers.NewOTPHandler(otpService)

	rateLimiter := security.NewRateLimiter(redisClient)

	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	if cfg.EnableMetrics {
		monitoring.NewMonitor(redisClient)
		go serveMetrics(cfg.MetricsPort)
	}

	go handleShutdown(cancel)

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		// Booking endpoints
		e.Router.POST("/booking", bookingHandler.CreateBooking)
		e.Router.POST("/booking/join", bookingHandler.JoinBooking)
		e.Router.GET("/booking", bookingHandler.ListBookings)
		e.Router.GET("/booking/user/{userId}", bookingHandler.UserBookings)
		e.Router.GET("/booking/playWithStrangers", bookingHandler.SharedBookings)
		e.Router.GET("/booking/pastBookings/{userId}", bookingHandler.PastBookings)
		e.Router.GET("/booking/upcomingBookings/{userId}", bookingHandler.UpcomingBookings)
		e.Router.POST("/booking/hold", bookingHandler.HoldSlot)
		e.Router.POST("/booking/hold/release", bookingHandler.ReleaseHold)

		// Turf endpoints
		e.Router.POST("/turf", turfHandler.CreateTurf)
		e.Router.GET("/turf", turfHandler.ListTurfs)
		e.Router.GET("/turf/availableslot", turfHandler.AvailableSlots)
		e.Router.GET("/turf/owner/{mobileNo}", turfHandler.OwnerTurfs)
		e.Router.GET("/turf/{id}", turfHandler.GetTurf)
		e.Router.PUT("/turf/id/{id}", turfHandler.UpdateTurf)
		e.Router.PATCH("/turf/id/{id}", turfHandler.UpdateTurf)
		e.Router.GET("/turf/id/{id}/slots", turfHandler.GetSlots)
		e.Router.PATCH("/turf/id/{id}/slots", turfHandler.UpdateSlots)
		e.Router.DELETE("/turf/id/{id}", turfHandler.DeleteTurf)

		// User endpoints
		e.Router.POST("/users", userHandler.CreateUser)
		e.Router.GET("/users", userHandler.ListUsers)
		e.Router.POST("/users/favourites", userHandler.ToggleFavourite)
		e.Router.GET("/users/favs/{mobileno}", userHandler.FavouriteTurfs)
		e.Router.GET("/users/{mobileNo}", userHandler.GetUser)
		e.Router.PUT("/users/profile/{id}", userHandler.UpdateProfile)
		e.Router.PUT("/users/{id}", security.RequireToken(cfg.JWTSecret, userHandler.UpdateUser))
		e.Router.DELETE("/users/{id}", userHandler.DeleteUser)

		// OTP endpoints, rate limited per caller
		e.Router.POST("/sendotp", rateLimiter.Limit("sendotp", cfg.OTPRequestsPerMinute, otpHandler.SendOTP))
		e.Router.POST("/resendotp", rateLimiter.Limit("resendotp", cfg.OTPRequestsPerMinute, otpHandler.ResendOTP))
		e.Router.POST("/verify", rateLimiter.Limit("verify", cfg.OTPRequestsPerMinute, otpHandler.VerifyOTP))

		// Payment endpoints
		e.Router.POST("/payments/createOrder", paymentHandler.CreateOrder)
		e.Router.POST("/payments/verifyPayment", paymentHandler.VerifyPayment)
		e.Router.POST("/payments/turf", paymentHandler.RecordTurfPayment)
		e.Router.POST("/payments/earnings", paymentHandler.Earnings)
		e.Router.POST("/payments/week", paymentHandler.WeekTotal)
		e.Router.GET("/payments/interval", paymentHandler.PaymentsSince)
		e.Router.GET("/payments/payment-success/{paymentId}", paymentHandler.PaymentSuccess)

		// Community endpoints
		e.Router.POST("/community-group", communityHandler.CreateGroup)
		e.Router.GET("/community-group", communityHandler.ListGroups)
		e.Router.GET("/community-group/{id}", communityHandler.GetGroup)
		e.Router.PUT("/community-group/{id}", communityHandler.UpdateGroup)
		e.Router.DELETE("/community-group/{id}", communityHandler.DeleteGroup)

		e.Router.GET("/", func(e *core.RequestEvent) error {
			return e.String(200, "All is well")
		})

		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		setupTurfHooks(app, redisClient)

		return e.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
	return nil
}

func serveMetrics(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	if err := http.ListenAndServe(":"+port, mux); err != nil {
		slog.Error("metrics server stopped", "error", err)
	}
}

// setupTurfHooks keeps Redis clean when turfs change: deleting a turf drops
// any advisory holds still pointing at it.
func setupTurfHooks(app *pocketbase.PocketBase, redisClient *redis.Client) {
	app.OnRecordDeleteRequest("turfs").BindFunc(func(e *core.RecordRequestEvent) error {
		ctx := e.Request.Context()

		pattern := fmt.Sprintf("hold:%s:*", e.Record.Id)
		keys, err := redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			slog.Error("Failed to scan holds for deleted turf", "turfID", e.Record.Id, "error", err)
			return e.Next()
		}
		if len(keys) > 0 {
			if err := redisClient.Del(ctx, keys...).Err(); err != nil {
				slog.Error("Failed to drop holds for deleted turf", "turfID", e.Record.Id, "error", err)
			} else {
				slog.Info("Dropped holds for deleted turf", "turfID", e.Record.Id, "count", len(keys))
			}
		}
		return e.Next()
	})
}

// handleShutdown handles graceful shutdown
func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
	cancel()
}
