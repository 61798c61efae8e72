package worker

import (
	"context"

	"procurement-service/internal/broker"
	"procurement-service/internal/models"
	"procurement-service/internal/util"

	"go.uber.org/zap"
)

// AuditWorker consumes procurement events and records them as an audit
// trail: structured log lines plus counters. It is the only consumer of
// the event stream inside this service.
type AuditWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	logger       *zap.Logger
}

// NewAuditWorker creates a new audit worker
func NewAuditWorker(consumer *broker.Consumer) *AuditWorker {
	logger := util.GetLogger()
	eventHandler := broker.NewEventHandler()

	eventHandler.OnPlanBuilt(func(_ context.Context, event *models.PlanBuiltEvent) error {
		util.EventsConsumedTotal.WithLabelValues(event.EventType).Inc()
		logger.Info("Audit: plan built",
			zap.String("event_id", event.EventID),
			zap.Int("people", event.People),
			zap.String("strategy", event.Strategy),
			zap.Float64("total_cost", event.TotalCost),
			zap.Int("lines", event.LineCount))
		return nil
	})

	eventHandler.OnOrderPlaced(func(_ context.Context, event *models.OrderPlacedEvent) error {
		util.EventsConsumedTotal.WithLabelValues(event.EventType).Inc()
		logger.Info("Audit: order placed",
			zap.String("event_id", event.EventID),
			zap.String("store", event.Store),
			zap.String("order_id", event.OrderID),
			zap.Float64("total", event.Total),
			zap.Int("items", event.ItemCount))
		return nil
	})

	return &AuditWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
		logger:       logger,
	}
}

// Start starts the worker
func (w *AuditWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting audit worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *AuditWorker) Stop() error {
	w.logger.Info("Stopping audit worker")
	return w.consumer.Close()
}
