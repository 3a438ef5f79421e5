package access

// State is the collector's position in the per-event lifecycle.
//
//	Disabled  --Enable-->  Idle
//	Idle      --scalar-->  Scalars      (a direct run is open)
//	Scalars   --pin/Begin*/Finish-->  Idle / Buffering
//	Idle|Scalars --Begin*--> Buffering  (depth > 0)
//	Buffering --outermost End*--> Idle
//	any enabled state --error--> Failed
//	any       --Disable--> Disabled
//
// Writes are legal in Idle, Scalars and Buffering. Finish is legal in Idle and
// Scalars. End* needs a matching innermost region.
type State uint8

const (
	StateDisabled State = iota
	StateIdle
	StateScalars
	StateBuffering
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateDisabled:
		return "disabled"
	case StateIdle:
		return "idle"
	case StateScalars:
		return "scalars"
	case StateBuffering:
		return "buffering"
	case StateFailed:
		return "failed"
	default:
		return "invalid"
	}
}
