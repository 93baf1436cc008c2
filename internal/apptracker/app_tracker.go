package apptracker

// AppTracker reports unexpected failures to an error tracking backend.
type AppTracker interface {
	CaptureMessage(message string)
	CaptureException(exception error)
	// Flush waits for buffered events to be delivered.
	Flush()
}
