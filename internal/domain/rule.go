package domain

import "time"

type RuleOperator string

const (
	OpEquals      RuleOperator = "equals"
	OpNotEquals   RuleOperator = "not_equals"
	OpGreaterThan RuleOperator = "greater_than"
	OpLessThan    RuleOperator = "less_than"
	OpContains    RuleOperator = "contains"
	OpIn          RuleOperator = "in"
)

type RuleAction string

const (
	ActionReject RuleAction = "reject"
	// ActionRequireApproval raises the booking's required approval count to
	// the rule's ActionValue if it is higher than the resource default.
	ActionRequireApproval RuleAction = "require_approval"
)

// BusinessRule is a single condition evaluated against a booking request at
// creation time. The operator set is closed; Field names one of the typed
// accessors in the rules engine.
type BusinessRule struct {
	ID          int64        `json:"id"`
	TenantID    int64        `json:"tenant_id"`
	Name        string       `json:"name" validate:"required"`
	Field       string       `json:"field" validate:"required"`
	Operator    RuleOperator `json:"operator" validate:"required"`
	Value       string       `json:"value"`
	Action      RuleAction   `json:"action" validate:"required"`
	ActionValue int          `json:"action_value,omitempty"`
	Priority    int          `json:"priority"`
	IsActive    bool         `json:"is_active"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
