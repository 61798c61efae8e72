package checkout

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"procurement-service/internal/broker"
	"procurement-service/internal/models"
	"procurement-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Result is the outcome of a simulated multi-store checkout
type Result struct {
	Status   string         `json:"status"`
	Orders   []models.Order `json:"orders"`
	AuditLog []string       `json:"audit_log"`
}

// Simulator fabricates per-store orders from a submitted cart. Nothing
// is persisted and order ids carry no uniqueness guarantee.
type Simulator struct {
	publisher *broker.EventPublisher
	logger    *zap.Logger
}

// NewSimulator creates a new checkout simulator
func NewSimulator(publisher *broker.EventPublisher) *Simulator {
	return &Simulator{
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// ExecuteOrder groups the cart by store, authorizes one synthetic order
// per store, and returns the orders with a per-store audit line. Stores
// are processed in order of first occurrence in the cart.
func (s *Simulator) ExecuteOrder(ctx context.Context, cart []models.CartItem) *Result {
	ctx, span := util.StartSpan(ctx, "Checkout.ExecuteOrder")
	defer span.End()

	storeOrder := make([]string, 0)
	grouped := make(map[string][]models.CartItem)
	for _, item := range cart {
		if _, seen := grouped[item.Store]; !seen {
			storeOrder = append(storeOrder, item.Store)
		}
		grouped[item.Store] = append(grouped[item.Store], item)
	}

	orders := make([]models.Order, 0, len(storeOrder))
	auditLog := make([]string, 0, len(storeOrder))

	for _, store := range storeOrder {
		items := grouped[store]
		orderID := newOrderID(store)

		var authorized float64
		for _, item := range items {
			authorized += lineTotal(item)
		}

		auditLog = append(auditLog, fmt.Sprintf("Connecting to %s... Success. Authorized $%.2f. Order #%s.",
			store, authorized, orderID))

		orders = append(orders, models.Order{
			Store:   store,
			OrderID: orderID,
			Items:   items,
			Total:   authorized,
		})

		util.CheckoutOrdersTotal.Inc()
		s.logger.Info("Order authorized",
			zap.String("store", store),
			zap.String("order_id", orderID),
			zap.Float64("total", authorized))

		s.publishOrderPlaced(ctx, store, orderID, authorized, len(items))
	}

	return &Result{
		Status:   "complete",
		Orders:   orders,
		AuditLog: auditLog,
	}
}

// lineTotal is always quantity-aware: a cart line contributes its
// precomputed total when present, otherwise unit price times quantity.
func lineTotal(item models.CartItem) float64 {
	if item.TotalPrice > 0 {
		return item.TotalPrice
	}
	qty := item.Quantity
	if qty < 1 {
		qty = 1
	}
	return item.Price * float64(qty)
}

// newOrderID derives a short store code from the first 4 characters of
// the store name and appends a 3-digit number. Collisions are accepted
// simulation noise.
func newOrderID(store string) string {
	code := store
	if len(code) > 4 {
		code = code[:4]
	}
	return strings.ToUpper(code) + "-" + strconv.Itoa(rand.Intn(900)+100)
}

// publishOrderPlaced emits an OrderPlaced event; failures are logged only
func (s *Simulator) publishOrderPlaced(ctx context.Context, store, orderID string, total float64, itemCount int) {
	if s.publisher == nil {
		return
	}

	event := &models.OrderPlacedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderPlaced,
			Timestamp: time.Now(),
		},
		Store:     store,
		OrderID:   orderID,
		Total:     total,
		ItemCount: itemCount,
	}

	if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderPlaced event", zap.Error(err))
	}
}
