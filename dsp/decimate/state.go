package decimate

// State is the lifecycle state of a Stage.
type State int

const (
	// StateUnconfigured means no rate specification has been set.
	StateUnconfigured State = iota
	// StateConfigured means Start has everything it needs.
	StateConfigured
	// StateRunning means buffers and taps are allocated and Process is valid.
	StateRunning
	// StateStopped means the session was torn down; Start may be called again.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "unconfigured"
	case StateConfigured:
		return "configured"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
