package burnflow

// State is the session's position in the burn lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateConfirming State = "confirming"
	StateBurning    State = "burning"
	StateComplete   State = "complete"
	StateError      State = "error"
)

// Status is the read-only projection handed to observers. The session owns
// the authoritative copy; observers only ever see value snapshots.
type Status struct {
	State   State
	Success bool

	ProcessedItems int
	TotalItems     int
	BurnedCount    int
	FailedCount    int
	RejectedCount  int

	CurrentItem   string
	CurrentTxHash string
	LastError     string
}
