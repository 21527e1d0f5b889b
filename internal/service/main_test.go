package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/healthwatch/internal/config"
	"github.com/spec-kit/healthwatch/internal/events"
	"github.com/spec-kit/healthwatch/internal/navigation"
	"github.com/spec-kit/healthwatch/internal/repository"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testConfig(latency time.Duration) config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:         "test-secret",
			BcryptCost:        bcrypt.MinCost,
			LoginLatencyMs:    int(latency / time.Millisecond),
			DemoUserEmail:     "citizen@example.org",
			DemoUserPassword:  "citizen-pass",
			DemoAdminEmail:    "authority@example.org",
			DemoAdminPassword: "authority-pass",
		},
		Navigation: config.NavigationConfig{Mode: "guarded", SessionTTLMinutes: 60},
	}
}

type fixture struct {
	cfg        config.Config
	dispatcher events.Dispatcher
	registry   *navigation.Registry
	auth       *AuthService
	reports    *ReportService
	published  *[]events.Event
}

func newFixture(t *testing.T, latency time.Duration) fixture {
	t.Helper()
	cfg := testConfig(latency)
	dispatcher := events.NewInMemoryDispatcher(nil)
	published := &[]events.Event{}
	for _, et := range []events.EventType{
		events.EventSessionStarted, events.EventViewChanged, events.EventAccessDenied,
		events.EventLoginSucceeded, events.EventLoginFailed, events.EventLoginCancelled,
		events.EventLoggedOut, events.EventAccountCreated, events.EventReportSubmitted,
		events.EventReportReviewed,
	} {
		dispatcher.Subscribe(et, func(_ context.Context, e events.Event) error {
			*published = append(*published, e)
			return nil
		})
	}

	registry := navigation.NewRegistry(navigation.ModeGuarded, repository.NewMemorySessionRepository(time.Hour), nil,
		SessionEventPublisher(dispatcher))
	authSvc := NewAuthService(cfg, AuthDependencies{
		AccountRepo: repository.NewMemoryAccountRepository(),
		Registry:    registry,
		Dispatcher:  dispatcher,
	})
	require.NoError(t, authSvc.SeedDemoAccounts(context.Background(), cfg.Auth))

	return fixture{
		cfg:        cfg,
		dispatcher: dispatcher,
		registry:   registry,
		auth:       authSvc,
		reports: NewReportService(ReportDependencies{
			ReportRepo: repository.NewStaticReportRepository(nil),
			Dispatcher: dispatcher,
		}),
		published: published,
	}
}

func (f fixture) types() []events.EventType {
	out := make([]events.EventType, 0, len(*f.published))
	for _, e := range *f.published {
		out = append(out, e.Type)
	}
	return out
}
