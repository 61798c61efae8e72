package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"procurement-service/internal/models"
	"procurement-service/internal/util"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventPublisher publishes procurement domain events. A publisher built
// without a producer silently drops events, so wiring stays identical
// whether or not the event stream is enabled.
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishPlanBuilt publishes a PlanBuilt event
func (ep *EventPublisher) PublishPlanBuilt(ctx context.Context, event *models.PlanBuiltEvent) error {
	if ep.producer == nil {
		return nil
	}
	return ep.producer.PublishEvent(ctx, fmt.Sprintf("plan-%s", event.EventID), event)
}

// PublishOrderPlaced publishes an OrderPlaced event
func (ep *EventPublisher) PublishOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error {
	if ep.producer == nil {
		return nil
	}
	return ep.producer.PublishEvent(ctx, fmt.Sprintf("order-%s", event.OrderID), event)
}

// EventHandler routes consumed events to registered callbacks
type EventHandler struct {
	onPlanBuilt   func(context.Context, *models.PlanBuiltEvent) error
	onOrderPlaced func(context.Context, *models.OrderPlacedEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnPlanBuilt registers a handler for PlanBuilt events
func (eh *EventHandler) OnPlanBuilt(handler func(context.Context, *models.PlanBuiltEvent) error) {
	eh.onPlanBuilt = handler
}

// OnOrderPlaced registers a handler for OrderPlaced events
func (eh *EventHandler) OnOrderPlaced(handler func(context.Context, *models.OrderPlacedEvent) error) {
	eh.onOrderPlaced = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	util.GetLogger().Debug("Handling event",
		zap.String("type", baseEvent.EventType),
		zap.String("id", baseEvent.EventID))

	switch baseEvent.EventType {
	case models.EventTypePlanBuilt:
		if eh.onPlanBuilt != nil {
			var event models.PlanBuiltEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal PlanBuilt event: %w", err)
			}
			return eh.onPlanBuilt(ctx, &event)
		}

	case models.EventTypeOrderPlaced:
		if eh.onOrderPlaced != nil {
			var event models.OrderPlacedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal OrderPlaced event: %w", err)
			}
			return eh.onOrderPlaced(ctx, &event)
		}
	}

	return nil
}
