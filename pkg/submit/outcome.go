package submit

// State is the controller's position in a submission cycle.
type State int32

const (
	StateIdle State = iota
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	default:
		return "idle"
	}
}

// OutcomeKind classifies how a submission ended.
type OutcomeKind int

const (
	// OutcomeSucceeded means the server accepted the payload and the form
	// was cleared.
	OutcomeSucceeded OutcomeKind = iota + 1
	// OutcomeFailed means the request failed and the status slot now holds
	// the error message.
	OutcomeFailed
	// OutcomeSkipped means nothing was sent because another submission was
	// in flight.
	OutcomeSkipped
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Outcome describes a single submission. It is not retained by the
// controller.
type Outcome struct {
	Kind       OutcomeKind
	Message    string
	StatusCode int
	Err        error
}
