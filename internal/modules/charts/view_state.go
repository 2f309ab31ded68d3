package charts

// Navigation keys, named as browsers report them
const (
	KeyArrowRight = "ArrowRight"
	KeyArrowDown  = "ArrowDown"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowUp    = "ArrowUp"
	KeyHome       = "Home"
	KeyEnd        = "End"
)

// ViewState is the chart's keyboard focus state.
// Each client owns its own value; Navigate returns a new state.
type ViewState struct {
	FocusIndex   int  `json:"focus_index"`
	KeyboardMode bool `json:"keyboard_mode"`
}

// Navigate applies a key press to a chart with the given number of points.
// It reports false, with the state unchanged, for keys it does not handle.
func (s ViewState) Navigate(key string, points int) (ViewState, bool) {
	last := points - 1
	if last < 0 {
		last = 0
	}

	next := s
	switch key {
	case KeyArrowRight, KeyArrowDown:
		next.FocusIndex = s.FocusIndex + 1
	case KeyArrowLeft, KeyArrowUp:
		next.FocusIndex = s.FocusIndex - 1
	case KeyHome:
		next.FocusIndex = 0
	case KeyEnd:
		next.FocusIndex = last
	default:
		return s, false
	}

	next.KeyboardMode = true
	next.FocusIndex = clamp(next.FocusIndex, 0, last)
	return next, true
}

// Pointer leaves keyboard mode, as when the mouse moves over the chart
func (s ViewState) Pointer() ViewState {
	s.KeyboardMode = false
	return s
}

// Reset returns the state for a freshly drawn chart
func (s ViewState) Reset() ViewState {
	s.FocusIndex = 0
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
