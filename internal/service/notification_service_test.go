package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/healthwatch/internal/config"
	"github.com/spec-kit/healthwatch/internal/domain"
	"github.com/spec-kit/healthwatch/internal/events"
)

func newObservedNotifications(cfg config.NotificationConfig) (events.Dispatcher, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher(nil)
	NewNotificationService(dispatcher, zap.New(core), cfg).RegisterHandlers()
	return dispatcher, logs
}

func TestNotificationStubsHonorAlertPreferences(t *testing.T) {
	cfg := config.NotificationConfig{EmailFrom: "noreply@example.org", WebhookURL: "https://hooks.example.org"}

	tests := []struct {
		name   string
		alerts *domain.AlertPreferences
		want   []string
	}{
		{
			name:   "all channels",
			alerts: &domain.AlertPreferences{SMSEnabled: true, EmailEnabled: true},
			want:   []string{"sendEmailNotificationStub", "sendSMSNotificationStub", "sendWebhookNotificationStub"},
		},
		{
			name:   "email off",
			alerts: &domain.AlertPreferences{SMSEnabled: true},
			want:   []string{"sendSMSNotificationStub", "sendWebhookNotificationStub"},
		},
		{
			name:   "both off",
			alerts: &domain.AlertPreferences{},
			want:   []string{"sendWebhookNotificationStub"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dispatcher, logs := newObservedNotifications(cfg)
			require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
				Type:      events.EventReportSubmitted,
				SessionID: "s1",
				Alerts:    tt.alerts,
			}))

			var stubs []string
			for _, entry := range logs.FilterLevelExact(zapcore.DebugLevel).All() {
				stubs = append(stubs, entry.Message)
			}
			assert.Equal(t, tt.want, stubs)
			assert.Equal(t, 1, logs.FilterMessage(string(events.EventReportSubmitted)).Len())
		})
	}
}

func TestNotificationWarnsOnAccessDenied(t *testing.T) {
	dispatcher, logs := newObservedNotifications(config.NotificationConfig{})
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		Type:      events.EventAccessDenied,
		SessionID: "s1",
		Payload:   events.AccessDeniedPayload{Requested: domain.ViewAnalytics, RedirectTo: domain.ViewLogin, Reason: "unauthenticated"},
	}))

	entries := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, entries, 1)
	assert.Equal(t, string(events.EventAccessDenied), entries[0].Message)
	assert.Equal(t, "s1", entries[0].ContextMap()["session_id"])
}
