package rules

type CreateRuleRequest struct {
	Name        string `json:"name" binding:"required"`
	Field       string `json:"field" binding:"required,oneof=duration_hours capacity start_hour category weekday user_role"`
	Operator    string `json:"operator" binding:"required,oneof=equals not_equals greater_than less_than contains in"`
	Value       string `json:"value" binding:"required"`
	Action      string `json:"action" binding:"required,oneof=reject require_approval"`
	ActionValue int    `json:"action_value" binding:"gte=0"`
	Priority    int    `json:"priority"`
}

type UpdateRuleRequest struct {
	Name        *string `json:"name"`
	Value       *string `json:"value"`
	ActionValue *int    `json:"action_value"`
	Priority    *int    `json:"priority"`
	IsActive    *bool   `json:"is_active"`
}
