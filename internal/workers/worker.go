// Package workers runs the bot's scheduled background jobs.
package workers

// Worker is a background job with its own schedule.
type Worker interface {
	// Start begins the worker's schedule.
	Start() error

	// Stop halts the schedule and waits for an in-flight run.
	Stop()

	// Name identifies the worker in logs.
	Name() string
}
