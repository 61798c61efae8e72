package planner

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"procurement-service/internal/broker"
	"procurement-service/internal/catalog"
	"procurement-service/internal/models"
	"procurement-service/internal/narration"
	"procurement-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PlanRequest represents a request to build a procurement plan
type PlanRequest struct {
	People   int     `json:"people" binding:"required"`
	Budget   float64 `json:"budget" binding:"required"`
	Deadline float64 `json:"deadline" binding:"required"`
	Strategy string  `json:"strategy"`
}

// PlanResult is the assembled plan with its narrated decision log
type PlanResult struct {
	Plan      []models.PlanLine
	Reasoning []string
	TotalCost float64
}

// Service builds procurement plans over an immutable catalog
type Service struct {
	catalog   *catalog.Catalog
	explainer narration.Explainer
	publisher *broker.EventPublisher
	logger    *zap.Logger
}

// NewService creates a new planner service. The explainer and publisher
// may be nil; both are optional enrichments.
func NewService(cat *catalog.Catalog, explainer narration.Explainer, publisher *broker.EventPublisher) *Service {
	return &Service{
		catalog:   cat,
		explainer: explainer,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// BuildPlan selects one item per category within the deadline, in fixed
// category order, and narrates every decision. There is no running
// budget cap during selection; the budget only decorates the log.
func (s *Service) BuildPlan(ctx context.Context, req PlanRequest) *PlanResult {
	ctx, span := util.StartSpan(ctx, "Planner.BuildPlan")
	defer span.End()

	strategy := req.Strategy
	if strategy != models.StrategySpeed && strategy != models.StrategyCheapest {
		strategy = models.StrategyCheapest
	}

	needs := CalculateNeeds(req.People)

	reasoning := []string{
		fmt.Sprintf("[PLANNER]: Calculating needs for %d attendees...", req.People),
		fmt.Sprintf("[PLANNER]: Cable Packs: %d, Pizza: %d, Swag: %d",
			needs.CablePacks, needs.PizzaCount, needs.SwagCount),
		fmt.Sprintf("[RANKING]: Strategy: %s, Deadline: %s days, Budget: $%s",
			strategy, formatAmount(req.Deadline), formatAmount(req.Budget)),
	}

	steps := []struct {
		category string
		quantity int
	}{
		{models.CategoryCables, needs.CablePacks},
		{models.CategoryFood, needs.PizzaCount},
		{models.CategorySwag, needs.SwagCount},
	}

	plan := make([]models.PlanLine, 0, len(steps))
	var totalCost float64

	for _, step := range steps {
		label := strings.ToUpper(step.category)

		ranked := RankItems(s.catalog.ByCategory(step.category), req.Deadline, strategy)
		if len(ranked) == 0 {
			util.PlanCategoriesSkipped.WithLabelValues(step.category).Inc()
			reasoning = append(reasoning, fmt.Sprintf("[%s]: WARNING - No %s available within deadline!",
				label, strings.ToLower(step.category)))
			continue
		}

		selected := ranked[0]
		cost := selected.Price * float64(step.quantity)
		totalCost += cost

		plan = append(plan, models.PlanLine{
			ID:           selected.ID,
			Name:         selected.Name,
			Store:        selected.Store,
			Price:        selected.Price,
			DeliveryDays: selected.DeliveryDays,
			Category:     selected.Category,
			Tags:         selected.Tags,
			Quantity:     step.quantity,
			TotalPrice:   cost,
		})

		reasoning = append(reasoning, fmt.Sprintf("[%s]: Selected %q from %s - $%s x %d = $%s",
			label, selected.Name, selected.Store,
			formatAmount(selected.Price), step.quantity, formatAmount(cost)))

		if s.explainer != nil {
			text := s.explainer.ExplainChoice(ctx, selected, ranked[1:], narration.ExplainContext{
				RemainingBudget: req.Budget - totalCost,
				DeadlineDays:    req.Deadline,
			})
			reasoning = append(reasoning, "[AGENT]: "+text)
		}
	}

	reasoning = append(reasoning, fmt.Sprintf("[TOTAL]: Mission cost: $%.2f (Budget: $%s)",
		totalCost, formatAmount(req.Budget)))

	if totalCost > req.Budget {
		util.PlansOverBudgetTotal.Inc()
		reasoning = append(reasoning, fmt.Sprintf("[WARNING]: Over budget by $%.2f!", totalCost-req.Budget))
	} else {
		reasoning = append(reasoning, fmt.Sprintf("[SUCCESS]: Under budget by $%.2f!", req.Budget-totalCost))
	}

	util.PlansBuiltTotal.WithLabelValues(strategy).Inc()
	s.logger.Info("Plan built",
		zap.Int("people", req.People),
		zap.String("strategy", strategy),
		zap.Float64("total_cost", totalCost),
		zap.Int("lines", len(plan)))

	s.publishPlanBuilt(ctx, req, strategy, totalCost, len(plan))

	return &PlanResult{
		Plan:      plan,
		Reasoning: reasoning,
		TotalCost: totalCost,
	}
}

// publishPlanBuilt emits a PlanBuilt event; failures are logged only
func (s *Service) publishPlanBuilt(ctx context.Context, req PlanRequest, strategy string, totalCost float64, lines int) {
	if s.publisher == nil {
		return
	}

	event := &models.PlanBuiltEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypePlanBuilt,
			Timestamp: time.Now(),
		},
		People:       req.People,
		Strategy:     strategy,
		DeadlineDays: req.Deadline,
		Budget:       req.Budget,
		TotalCost:    totalCost,
		LineCount:    lines,
	}

	if err := s.publisher.PublishPlanBuilt(ctx, event); err != nil {
		s.logger.Error("Failed to publish PlanBuilt event", zap.Error(err))
	}
}

// formatAmount renders a number the way the narrated log expects:
// no trailing zeros, full precision for fractional cents and days.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
