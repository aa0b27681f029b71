// Package messages holds approver-facing texts. Subscriber-facing texts
// live in the localization catalogs instead.
package messages

// Common
const (
	Error        = "❌ Something went wrong. Please try again later."
	Unauthorized = "⛔ Unauthorized."
)

// Buttons
const (
	ButtonProceed = "✅ Proceed to Membership"
)

// Admin command responses
const (
	ApproveUsage = "Usage: /approve <user_id> [months]\n" +
		"Example: /approve 123456789 1"
	ListEmpty = "No subscribers found."
)

// Approver help, appended to /help output for approvers only.
const ApproverHelp = "🛠 Admin Commands (admins only)\n" +
	"/approve <user_id> [months] - Manually approve a user\n" +
	"/list - List all subscribers and expiry dates"
