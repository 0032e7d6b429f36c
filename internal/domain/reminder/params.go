package reminder

// DefaultWindow is the default lookback window, in distance units, over
// which an upcoming reminder's progress ratio ramps from 0 to 1.
const DefaultWindow int64 = 5000

// Params defines the configurable parameters for reminder derivation.
type Params struct {
	// Window is the distance over which the progress ratio for an
	// upcoming reminder ramps toward 1. A record whose remaining
	// distance is at or beyond the window has progress 0; a record
	// that is due now has progress 1.
	Window int64
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		Window: DefaultWindow,
	}
}
