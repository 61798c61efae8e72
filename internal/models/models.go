package models

// CatalogItem represents a purchasable supply item
type CatalogItem struct {
	ID           string   `db:"id" json:"id" yaml:"id"`
	Name         string   `db:"name" json:"name" yaml:"name"`
	Store        string   `db:"store" json:"store" yaml:"store"`
	Price        float64  `db:"price" json:"price" yaml:"price"`
	DeliveryDays float64  `db:"delivery_days" json:"deliveryDays" yaml:"deliveryDays"`
	Category     string   `db:"category" json:"category" yaml:"category"`
	Tags         []string `db:"-" json:"tags" yaml:"tags"`
}

// Needs represents required quantities derived from headcount
type Needs struct {
	CablePacks int `json:"cablePacks"`
	PizzaCount int `json:"pizzaCount"`
	SwagCount  int `json:"swagCount"`
}

// PlanLine represents one selected item with its quantity and cost
type PlanLine struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Store        string   `json:"store"`
	Price        float64  `json:"price"`
	DeliveryDays float64  `json:"deliveryDays"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags,omitempty"`
	Quantity     int      `json:"quantity"`
	TotalPrice   float64  `json:"totalPrice"`
}

// CartItem is a client-submitted plan line headed for checkout.
// Quantity and TotalPrice may be absent when the client sends a trimmed cart.
type CartItem struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"name,omitempty"`
	Store        string   `json:"store"`
	Price        float64  `json:"price"`
	DeliveryDays float64  `json:"deliveryDays,omitempty"`
	Category     string   `json:"category,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Quantity     int      `json:"quantity,omitempty"`
	TotalPrice   float64  `json:"totalPrice,omitempty"`
}

// Order represents a simulated per-store purchase
type Order struct {
	Store   string     `json:"store"`
	OrderID string     `json:"orderId"`
	Items   []CartItem `json:"items"`
	Total   float64    `json:"total"`
}

// Supply categories
const (
	CategoryCables = "Cables"
	CategoryFood   = "Food"
	CategorySwag   = "Swag"
)

// Selection strategies
const (
	StrategyCheapest = "cheapest"
	StrategySpeed    = "speed"
)
