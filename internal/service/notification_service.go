package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/lifematch-service/internal/config"
	"github.com/spec-kit/lifematch-service/internal/events"
)

// NotificationService logs the e-mail and webhook messages a real
// deployment would send for registry events.
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
	n.dispatcher.Subscribe(events.EventDonorRegistered, n.handleDonorRegistered)
	n.dispatcher.Subscribe(events.EventRecipientRegistered, n.handleRecipientRegistered)
	n.dispatcher.Subscribe(events.EventDonorStatusChanged, n.handleDonorStatusChanged)
	n.dispatcher.Subscribe(events.EventDonorContacted, n.handleDonorContacted)
	n.dispatcher.Subscribe(events.EventMatchStatusChanged, n.handleMatchStatusChanged)
}

func (n *NotificationService) handleDonorRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("DonorRegistered", zap.String("donor_id", event.SubjectID), zap.Any("payload", event.Payload))
	if payload, ok := event.Payload.(events.DonorRegisteredPayload); ok {
		n.sendEmailStub(ctx, event, payload.Email)
	}
	return nil
}

func (n *NotificationService) handleRecipientRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("RecipientRegistered", zap.String("recipient_id", event.SubjectID), zap.Any("payload", event.Payload))
	payload, ok := event.Payload.(events.RecipientRegisteredPayload)
	if !ok {
		return nil
	}
	n.sendEmailStub(ctx, event, payload.Email)
	n.sendWebhookStub(ctx, event)
	return nil
}

func (n *NotificationService) handleDonorStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("DonorStatusChanged", zap.String("donor_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendWebhookStub(ctx, event)
	return nil
}

func (n *NotificationService) handleDonorContacted(ctx context.Context, event events.Event) error {
	n.logger.Info("DonorContacted", zap.String("match_id", event.SubjectID), zap.Any("payload", event.Payload))
	if payload, ok := event.Payload.(events.DonorContactedPayload); ok {
		n.sendEmailStub(ctx, event, payload.DonorEmail)
	}
	n.sendWebhookStub(ctx, event)
	return nil
}

func (n *NotificationService) handleMatchStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("MatchStatusChanged", zap.String("match_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendWebhookStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailStub(_ context.Context, event events.Event, to string) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" || strings.TrimSpace(to) == "" {
		return
	}
	n.logger.Debug("sendEmailStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("to", to),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}
