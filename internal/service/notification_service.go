package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/healthwatch/internal/config"
	"github.com/spec-kit/healthwatch/internal/events"
)

// NotificationService audits session events and runs the outbound alert stubs.
// Nothing is delivered; stubs only log.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	for _, t := range []events.EventType{
		events.EventSessionStarted,
		events.EventViewChanged,
		events.EventLoginSucceeded,
		events.EventLoginCancelled,
		events.EventLoggedOut,
	} {
		n.dispatcher.Subscribe(t, n.handleAudit)
	}
	n.dispatcher.Subscribe(events.EventAccessDenied, n.handleWarning)
	n.dispatcher.Subscribe(events.EventLoginFailed, n.handleWarning)
	n.dispatcher.Subscribe(events.EventAccountCreated, n.handleAccountCreated)
	n.dispatcher.Subscribe(events.EventReportSubmitted, n.handleReportSubmitted)
	n.dispatcher.Subscribe(events.EventReportReviewed, n.handleReportReviewed)
}

func (n *NotificationService) handleAudit(_ context.Context, event events.Event) error {
	n.logger.Info(string(event.Type), eventFields(event)...)
	return nil
}

func (n *NotificationService) handleWarning(_ context.Context, event events.Event) error {
	n.logger.Warn(string(event.Type), eventFields(event)...)
	return nil
}

func (n *NotificationService) handleAccountCreated(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type), eventFields(event)...)
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleReportSubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type), eventFields(event)...)
	n.sendEmailNotificationStub(ctx, event)
	n.sendSMSNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleReportReviewed(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type), eventFields(event)...)
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	if event.Alerts != nil && !event.Alerts.EmailEnabled {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("session_id", event.SessionID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendSMSNotificationStub(_ context.Context, event events.Event) {
	if event.Alerts != nil && !event.Alerts.SMSEnabled {
		return
	}
	n.logger.Debug("sendSMSNotificationStub",
		zap.String("session_id", event.SessionID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("session_id", event.SessionID),
		zap.String("event_type", string(event.Type)))
}

func eventFields(event events.Event) []zap.Field {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("session_id", event.SessionID),
		zap.Any("payload", event.Payload),
	}
	if event.Actor.Role != nil {
		fields = append(fields, zap.String("role", string(*event.Actor.Role)))
	}
	if event.Actor.AccountID != "" {
		fields = append(fields, zap.String("account_id", event.Actor.AccountID))
	}
	return fields
}
