package approval

import (
	"fmt"
	"strconv"
	"strings"

	"gatebot/internal/apperrors"
)

// Decision payloads ride inside the button callback data:
//
//	approve:<userID>:<months>
//	decline:<userID>

func (d Decision) CallbackData() string {
	if d.Action == ActionApprove {
		return fmt.Sprintf("approve:%d:%d", d.UserID, d.Months)
	}
	return fmt.Sprintf("decline:%d", d.UserID)
}

// IsDecisionCallback reports whether the payload carries a decision tag.
func IsDecisionCallback(data string) bool {
	return strings.HasPrefix(data, "approve:") || strings.HasPrefix(data, "decline:")
}

// ParseDecision decodes a decision payload. Unknown tags and malformed
// fields are rejected explicitly, never ignored.
func ParseDecision(data string) (Decision, error) {
	parts := strings.Split(data, ":")

	switch parts[0] {
	case "approve":
		if len(parts) != 3 {
			return Decision{}, apperrors.E(apperrors.KindValidation, "malformed approve payload: %q", data)
		}
		userID, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return Decision{}, apperrors.E(apperrors.KindValidation, "bad user id in payload %q", data)
		}
		months, err := strconv.Atoi(parts[2])
		if err != nil || months <= 0 {
			return Decision{}, apperrors.E(apperrors.KindValidation, "bad months in payload %q", data)
		}
		return Decision{Action: ActionApprove, UserID: userID, Months: months}, nil

	case "decline":
		if len(parts) != 2 {
			return Decision{}, apperrors.E(apperrors.KindValidation, "malformed decline payload: %q", data)
		}
		userID, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return Decision{}, apperrors.E(apperrors.KindValidation, "bad user id in payload %q", data)
		}
		return Decision{Action: ActionDecline, UserID: userID}, nil

	default:
		return Decision{}, apperrors.E(apperrors.KindValidation, "unknown callback tag: %q", data)
	}
}
