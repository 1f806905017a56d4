package rules

import (
	"fmt"

	"bookhub/internal/domain"
)

type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown rule field %q", e.Field)
}

type UnknownOperatorError struct {
	Operator domain.RuleOperator
}

func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown rule operator %q", e.Operator)
}

type TypeMismatchError struct {
	Field    string
	Operator domain.RuleOperator
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("operator %q cannot be applied to field %q", e.Operator, e.Field)
}
