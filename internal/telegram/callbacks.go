package telegram

import (
	"strconv"
	"strings"

	"gatebot/internal/apperrors"
	"gatebot/internal/stories/approval"
)

// Callback is the closed set of button payloads the bot understands.
// Everything is decoded here, once, at the router boundary; unknown tags
// are rejected rather than silently ignored.
type Callback interface {
	isCallback()
}

// ProceedCallback moves the user from the welcome message to plan choice.
type ProceedCallback struct{}

// PlanCallback selects a plan tier.
type PlanCallback struct {
	Months int
}

// DecisionCallback is an approver's approve/decline press.
type DecisionCallback struct {
	Decision approval.Decision
}

func (ProceedCallback) isCallback()  {}
func (PlanCallback) isCallback()     {}
func (DecisionCallback) isCallback() {}

func ParseCallback(data string) (Callback, error) {
	switch {
	case data == "proceed":
		return ProceedCallback{}, nil

	case strings.HasPrefix(data, "plan:"):
		months, err := strconv.Atoi(strings.TrimPrefix(data, "plan:"))
		if err != nil {
			return nil, apperrors.E(apperrors.KindValidation, "bad plan payload: %q", data)
		}
		return PlanCallback{Months: months}, nil

	case approval.IsDecisionCallback(data):
		decision, err := approval.ParseDecision(data)
		if err != nil {
			return nil, err
		}
		return DecisionCallback{Decision: decision}, nil

	default:
		return nil, apperrors.E(apperrors.KindValidation, "unknown callback tag: %q", data)
	}
}
