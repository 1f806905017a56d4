package rules

import (
	"context"
	"strconv"
	"strings"

	"bookhub/internal/domain"

	"go.uber.org/zap"
)

// Input is the strongly-typed view of a booking request that rules are
// evaluated against. Field names used in BusinessRule.Field map to exactly
// one of these accessors; there is no dynamic lookup.
type Input struct {
	DurationHours float64
	Category      string
	Capacity      int
	StartHour     int
	Weekday       string
	UserRole      string
}

// Outcome aggregates the effects of all matching rules.
type Outcome struct {
	Reject            bool
	RejectedBy        string
	RequiredApprovals int
}

type RuleLister interface {
	ListActive(ctx context.Context, tenantID int64) ([]domain.BusinessRule, error)
}

type Engine struct {
	rules  RuleLister
	logger *zap.Logger
}

func NewEngine(rules RuleLister, logger *zap.Logger) *Engine {
	return &Engine{rules: rules, logger: logger}
}

// Evaluate runs the tenant's active rules in priority order. The first
// matching reject rule short-circuits; require_approval rules accumulate
// the highest requested level count.
func (e *Engine) Evaluate(ctx context.Context, tenantID int64, in Input) (Outcome, error) {
	list, err := e.rules.ListActive(ctx, tenantID)
	if err != nil {
		return Outcome{}, err
	}

	var out Outcome
	for i := range list {
		rule := &list[i]
		matched, err := Matches(rule, in)
		if err != nil {
			// A broken rule must not block bookings; skip and report it.
			e.logger.Warn("skipping unevaluable business rule",
				zap.Int64("rule_id", rule.ID),
				zap.String("field", rule.Field),
				zap.Error(err),
			)
			continue
		}
		if !matched {
			continue
		}

		switch rule.Action {
		case domain.ActionReject:
			out.Reject = true
			out.RejectedBy = rule.Name
			return out, nil
		case domain.ActionRequireApproval:
			if rule.ActionValue > out.RequiredApprovals {
				out.RequiredApprovals = rule.ActionValue
			}
		}
	}
	return out, nil
}

// fieldValue is the closed variant a rule condition compares against:
// either a number or a text value, never both.
type fieldValue struct {
	number  float64
	text    string
	numeric bool
}

func accessor(in Input, field string) (fieldValue, bool) {
	switch field {
	case "duration_hours":
		return fieldValue{number: in.DurationHours, numeric: true}, true
	case "capacity":
		return fieldValue{number: float64(in.Capacity), numeric: true}, true
	case "start_hour":
		return fieldValue{number: float64(in.StartHour), numeric: true}, true
	case "category":
		return fieldValue{text: in.Category}, true
	case "weekday":
		return fieldValue{text: in.Weekday}, true
	case "user_role":
		return fieldValue{text: in.UserRole}, true
	default:
		return fieldValue{}, false
	}
}

// Matches evaluates a single rule condition against the input.
func Matches(rule *domain.BusinessRule, in Input) (bool, error) {
	v, ok := accessor(in, rule.Field)
	if !ok {
		return false, &UnknownFieldError{Field: rule.Field}
	}

	switch rule.Operator {
	case domain.OpEquals:
		return compareEq(v, rule.Value)
	case domain.OpNotEquals:
		eq, err := compareEq(v, rule.Value)
		return !eq, err
	case domain.OpGreaterThan:
		return compareOrder(v, rule.Value, func(a, b float64) bool { return a > b })
	case domain.OpLessThan:
		return compareOrder(v, rule.Value, func(a, b float64) bool { return a < b })
	case domain.OpContains:
		if v.numeric {
			return false, &TypeMismatchError{Field: rule.Field, Operator: rule.Operator}
		}
		return strings.Contains(v.text, rule.Value), nil
	case domain.OpIn:
		return matchIn(v, rule.Value)
	default:
		return false, &UnknownOperatorError{Operator: rule.Operator}
	}
}

func compareEq(v fieldValue, raw string) (bool, error) {
	if v.numeric {
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return false, err
		}
		return v.number == n, nil
	}
	return v.text == raw, nil
}

func compareOrder(v fieldValue, raw string, cmp func(a, b float64) bool) (bool, error) {
	if !v.numeric {
		return false, &TypeMismatchError{Operator: domain.OpGreaterThan}
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return false, err
	}
	return cmp(v.number, n), nil
}

// matchIn treats the rule value as a comma-separated list.
func matchIn(v fieldValue, raw string) (bool, error) {
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if v.numeric {
			n, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return false, err
			}
			if v.number == n {
				return true, nil
			}
		} else if v.text == part {
			return true, nil
		}
	}
	return false, nil
}
