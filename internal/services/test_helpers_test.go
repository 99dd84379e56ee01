package services_test

import (
	"time"
	_ "time/tzdata"

	"github.com/homeservices/site/config"
	"github.com/homeservices/site/internal/services"
	"github.com/homeservices/site/internal/session"
	"github.com/homeservices/site/pkg/logger"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

func testConfig() *config.Config {
	loc, err := time.LoadLocation("Asia/Karachi")
	if err != nil {
		panic(err)
	}
	return &config.Config{
		Server: config.ServerConfig{AppEnv: "development"},
		WhatsApp: config.WhatsAppConfig{
			BaseURL:       "https://wa.me",
			Destination:   "923043537785",
			DisplayNumber: "0304-3537785",
		},
		Booking: config.BookingConfig{
			Timezone:        "Asia/Karachi",
			Location:        loc,
			CopiedIndicator: 2 * time.Second,
		},
	}
}

// fakeClock is a settable wall clock
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestService() (*services.BookingService, *session.Store, *fakeClock) {
	store := session.NewStore(time.Hour)
	svc := services.NewBookingService(store, testConfig())
	// 2025-06-01 12:00 in Karachi
	clock := &fakeClock{now: time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)}
	svc.SetClock(clock.Now)
	return svc, store, clock
}
