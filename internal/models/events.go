package models

import "time"

// Event types
const (
	EventTypePlanBuilt   = "PLAN_BUILT"
	EventTypeOrderPlaced = "ORDER_PLACED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// PlanBuiltEvent published after a procurement plan is assembled
type PlanBuiltEvent struct {
	BaseEvent
	People       int     `json:"people"`
	Strategy     string  `json:"strategy"`
	DeadlineDays float64 `json:"deadline_days"`
	Budget       float64 `json:"budget"`
	TotalCost    float64 `json:"total_cost"`
	LineCount    int     `json:"line_count"`
}

// OrderPlacedEvent published per store after a simulated checkout
type OrderPlacedEvent struct {
	BaseEvent
	Store     string  `json:"store"`
	OrderID   string  `json:"order_id"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
}
