package commands

import (
	"context"
	"sync/atomic"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentSends = 8

// DispatchReport summarizes one dispatch run.
type DispatchReport struct {
	Messages int
	Sent     int
	Failed   int
}

// DispatchNotificationsCommandHandler turns pending outbox messages into notifications
// and hands them to the notifier.
//
// A placed order yields a customer confirmation, an admin alert and one message per
// brand group whose brand has an email. A status change yields a customer message.
// Every message is attempted exactly once: it is marked dispatched whether or not the
// send succeeded, and failures are only logged.
type DispatchNotificationsCommandHandler struct {
	uowFactory OutboxUoWFactory
	renderer   ports.NotificationRenderer
	notifier   ports.Notifier
	adminEmail string
	metrics    ports.FulfilmentMetrics
	logger     *zap.Logger
}

func NewDispatchNotificationsCommandHandler(
	uowFactory OutboxUoWFactory,
	renderer ports.NotificationRenderer,
	notifier ports.Notifier,
	adminEmail string,
	metrics ports.FulfilmentMetrics,
	logger *zap.Logger,
) DispatchNotificationsCommandHandler {
	return DispatchNotificationsCommandHandler{
		uowFactory: uowFactory,
		renderer:   renderer,
		notifier:   notifier,
		adminEmail: adminEmail,
		metrics:    metrics,
		logger:     logger.With(zap.String("handler", "dispatch_notifications")),
	}
}

// Handle dispatches one batch. The outbox rows stay locked until the batch is marked,
// so concurrent dispatchers never pick the same message.
func (h DispatchNotificationsCommandHandler) Handle(
	ctx context.Context,
	cmd DispatchNotificationsCommand,
) (DispatchReport, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchReport{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DispatchReport{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	messages, err := outbox.GetPending(ctx, cmd.BatchSize())
	if err != nil {
		return DispatchReport{}, err
	}
	if len(messages) == 0 {
		return DispatchReport{}, nil
	}

	brandEmails, err := h.brandEmails(ctx, uow.BrandRepository(), messages)
	if err != nil {
		return DispatchReport{}, err
	}

	var notifications []ports.Notification
	ids := make([]string, 0, len(messages))
	for _, msg := range messages {
		notifications = append(notifications, h.fanOut(msg.Event, brandEmails)...)
		ids = append(ids, msg.ID)
	}

	var sent, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSends)
	for _, n := range notifications {
		g.Go(func() error {
			if h.send(gctx, n) {
				sent.Add(1)
			} else {
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err = outbox.MarkDispatched(ctx, ids...); err != nil {
		return DispatchReport{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return DispatchReport{}, err
	}

	report := DispatchReport{Messages: len(messages), Sent: int(sent.Load()), Failed: int(failed.Load())}
	h.logger.Info("notifications dispatched",
		zap.Int("messages", report.Messages),
		zap.Int("sent", report.Sent),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

func (h DispatchNotificationsCommandHandler) send(ctx context.Context, n ports.Notification) bool {
	log := h.logger.With(
		zap.String("kind", string(n.Kind)),
		zap.String("order_id", n.Snapshot.OrderID),
	)

	msg, err := h.renderer.Render(n)
	if err != nil {
		log.Error("failed to render notification", zap.Error(err))
		h.metrics.NotificationSent(string(n.Kind), false)
		return false
	}

	ok := h.notifier.Send(ctx, msg)
	if !ok {
		log.Warn("notification was not delivered", zap.Strings("to", msg.To))
	}
	h.metrics.NotificationSent(string(n.Kind), ok)
	return ok
}

// fanOut expands an event into per-recipient notifications.
func (h DispatchNotificationsCommandHandler) fanOut(event order.Event, brandEmails map[string]string) []ports.Notification {
	snapshot := event.Snapshot

	switch event.Type {
	case order.PlacedEventType:
		out := []ports.Notification{{
			Kind:     ports.CustomerOrderPlaced,
			To:       snapshot.CustomerEmail,
			Snapshot: snapshot,
		}}
		if h.adminEmail != "" {
			out = append(out, ports.Notification{
				Kind:     ports.AdminOrderPlaced,
				To:       h.adminEmail,
				Snapshot: snapshot,
			})
		}
		for _, group := range snapshot.Groups {
			email, ok := brandEmails[group.BrandID]
			if !ok || email == "" {
				continue
			}
			out = append(out, ports.Notification{
				Kind:      ports.BrandOrderPlaced,
				To:        email,
				Snapshot:  snapshot,
				BrandID:   group.BrandID,
				BrandName: group.BrandName,
			})
		}
		return out

	case order.LineStatusChangedEventType:
		return []ports.Notification{{
			Kind:         ports.CustomerStatusChanged,
			To:           snapshot.CustomerEmail,
			Snapshot:     snapshot,
			BrandID:      event.BrandID,
			BrandName:    event.BrandName,
			TargetStatus: event.TargetStatus,
		}}

	default:
		h.logger.Warn("unknown outbox event type", zap.String("type", string(event.Type)), zap.String("event_id", event.ID))
		return nil
	}
}

// brandEmails loads the email of every brand that has a group in a placed order.
func (h DispatchNotificationsCommandHandler) brandEmails(
	ctx context.Context,
	brands ports.BrandRepository,
	messages []ports.OutboxMessage,
) (map[string]string, error) {
	seen := make(map[string]struct{})
	var ids []kernel.UUID
	for _, msg := range messages {
		if msg.Event.Type != order.PlacedEventType {
			continue
		}
		for _, group := range msg.Event.Snapshot.Groups {
			if group.BrandID == "" {
				continue
			}
			if _, ok := seen[group.BrandID]; ok {
				continue
			}
			seen[group.BrandID] = struct{}{}

			id, err := kernel.UUIDFromString(group.BrandID)
			if err != nil {
				h.logger.Warn("invalid brand id in outbox event", zap.String("brand_id", group.BrandID))
				continue
			}
			ids = append(ids, id)
		}
	}

	emails := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return emails, nil
	}

	found, err := brands.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, b := range found {
		emails[b.ID().String()] = b.Email()
	}
	return emails, nil
}
