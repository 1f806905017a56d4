package rules

import (
	"context"
	"testing"

	"bookhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockRuleLister struct {
	mock.Mock
}

func (m *MockRuleLister) ListActive(ctx context.Context, tenantID int64) ([]domain.BusinessRule, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BusinessRule), args.Error(1)
}

func sampleInput() Input {
	return Input{
		DurationHours: 9,
		Category:      "vehicle",
		Capacity:      4,
		StartHour:     18,
		Weekday:       "Saturday",
		UserRole:      "member",
	}
}

func TestMatches_Operators(t *testing.T) {
	in := sampleInput()

	cases := []struct {
		name     string
		rule     domain.BusinessRule
		expected bool
	}{
		{"equals text", domain.BusinessRule{Field: "category", Operator: domain.OpEquals, Value: "vehicle"}, true},
		{"equals numeric", domain.BusinessRule{Field: "capacity", Operator: domain.OpEquals, Value: "4"}, true},
		{"not_equals", domain.BusinessRule{Field: "user_role", Operator: domain.OpNotEquals, Value: "admin"}, true},
		{"greater_than hit", domain.BusinessRule{Field: "duration_hours", Operator: domain.OpGreaterThan, Value: "8"}, true},
		{"greater_than miss", domain.BusinessRule{Field: "duration_hours", Operator: domain.OpGreaterThan, Value: "9"}, false},
		{"less_than", domain.BusinessRule{Field: "start_hour", Operator: domain.OpLessThan, Value: "20"}, true},
		{"contains", domain.BusinessRule{Field: "weekday", Operator: domain.OpContains, Value: "Sat"}, true},
		{"in hit", domain.BusinessRule{Field: "weekday", Operator: domain.OpIn, Value: "Saturday, Sunday"}, true},
		{"in miss", domain.BusinessRule{Field: "weekday", Operator: domain.OpIn, Value: "Monday,Tuesday"}, false},
		{"in numeric", domain.BusinessRule{Field: "capacity", Operator: domain.OpIn, Value: "2, 4, 8"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Matches(&tc.rule, in)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestMatches_UnknownField(t *testing.T) {
	rule := domain.BusinessRule{Field: "moon_phase", Operator: domain.OpEquals, Value: "full"}

	_, err := Matches(&rule, sampleInput())

	var fieldErr *UnknownFieldError
	assert.ErrorAs(t, err, &fieldErr)
}

func TestMatches_TypeMismatch(t *testing.T) {
	rule := domain.BusinessRule{Field: "capacity", Operator: domain.OpContains, Value: "4"}

	_, err := Matches(&rule, sampleInput())

	var mismatch *TypeMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestEvaluate_RejectShortCircuits(t *testing.T) {
	lister := new(MockRuleLister)
	engine := NewEngine(lister, zap.NewNop())

	lister.On("ListActive", mock.Anything, int64(1)).Return([]domain.BusinessRule{
		{ID: 1, Name: "no long bookings", Field: "duration_hours", Operator: domain.OpGreaterThan, Value: "8", Action: domain.ActionReject, Priority: 100},
		{ID: 2, Name: "vehicles need sign-off", Field: "category", Operator: domain.OpEquals, Value: "vehicle", Action: domain.ActionRequireApproval, ActionValue: 2, Priority: 50},
	}, nil)

	out, err := engine.Evaluate(context.Background(), 1, sampleInput())

	assert.NoError(t, err)
	assert.True(t, out.Reject)
	assert.Equal(t, "no long bookings", out.RejectedBy)
	// The lower-priority approval rule never ran.
	assert.Equal(t, 0, out.RequiredApprovals)
}

func TestEvaluate_RequireApprovalTakesMax(t *testing.T) {
	lister := new(MockRuleLister)
	engine := NewEngine(lister, zap.NewNop())

	lister.On("ListActive", mock.Anything, int64(1)).Return([]domain.BusinessRule{
		{ID: 1, Field: "category", Operator: domain.OpEquals, Value: "vehicle", Action: domain.ActionRequireApproval, ActionValue: 2},
		{ID: 2, Field: "weekday", Operator: domain.OpIn, Value: "Saturday,Sunday", Action: domain.ActionRequireApproval, ActionValue: 1},
	}, nil)

	out, err := engine.Evaluate(context.Background(), 1, sampleInput())

	assert.NoError(t, err)
	assert.False(t, out.Reject)
	assert.Equal(t, 2, out.RequiredApprovals)
}

func TestEvaluate_BrokenRuleSkipped(t *testing.T) {
	lister := new(MockRuleLister)
	engine := NewEngine(lister, zap.NewNop())

	lister.On("ListActive", mock.Anything, int64(1)).Return([]domain.BusinessRule{
		{ID: 1, Field: "moon_phase", Operator: domain.OpEquals, Value: "full", Action: domain.ActionReject},
		{ID: 2, Field: "category", Operator: domain.OpEquals, Value: "vehicle", Action: domain.ActionRequireApproval, ActionValue: 1},
	}, nil)

	out, err := engine.Evaluate(context.Background(), 1, sampleInput())

	assert.NoError(t, err)
	assert.False(t, out.Reject)
	assert.Equal(t, 1, out.RequiredApprovals)
}
