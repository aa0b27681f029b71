package approval

// Submission is a payment proof waiting for human review. The proof itself
// is an image the bot only forwards; nothing about it is verified here.
type Submission struct {
	UserID    int64
	FirstName string
	Username  string
	Months    int
	PriceBirr int
	// ProofFileID references the screenshot on the chat platform.
	ProofFileID string
}

type Action string

const (
	ActionApprove Action = "approve"
	ActionDecline Action = "decline"
)

// Decision is reconstructed entirely from the callback payload, so deciding
// survives a process restart between submission and review.
type Decision struct {
	Action Action
	UserID int64
	// Months is only set for approvals.
	Months int
}

// Actor is the human pressing the decision button, plus the message their
// review UI lives in so the outcome can be reflected there.
type Actor struct {
	UserID    int64
	ChatID    int64
	MessageID int
}
