package interaction

// State is the lifecycle of a single AI query interaction.
type State int

const (
	Idle State = iota
	Pending
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Reason classifies a failed attempt for the developer log. It is never shown to users.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonMissingCredential Reason = "missing_credential"
	ReasonCredential        Reason = "credential"
	ReasonService           Reason = "service"
	ReasonTransport         Reason = "transport"
	ReasonMalformed         Reason = "malformed"
	ReasonPanic             Reason = "panic"
)

// Outcome is what an attempt produces once it leaves Pending.
type Outcome struct {
	Attempt uint64
	State   State
	Message string
	Reason  Reason
}
