package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewState_Navigate(t *testing.T) {
	tests := []struct {
		name        string
		start       int
		key         string
		points      int
		wantIndex   int
		wantHandled bool
	}{
		{"right moves forward", 0, KeyArrowRight, 5, 1, true},
		{"down moves forward", 2, KeyArrowDown, 5, 3, true},
		{"right clamps at last", 4, KeyArrowRight, 5, 4, true},
		{"left moves back", 3, KeyArrowLeft, 5, 2, true},
		{"up moves back", 1, KeyArrowUp, 5, 0, true},
		{"left clamps at first", 0, KeyArrowLeft, 5, 0, true},
		{"home", 3, KeyHome, 5, 0, true},
		{"end", 1, KeyEnd, 5, 4, true},
		{"end with no points", 0, KeyEnd, 0, 0, true},
		{"right with no points", 0, KeyArrowRight, 0, 0, true},
		{"stale index clamps to shorter chart", 9, KeyArrowLeft, 3, 2, true},
		{"unknown key", 2, "Enter", 5, 2, false},
		{"empty key", 2, "", 5, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := ViewState{FocusIndex: tt.start}
			next, handled := start.Navigate(tt.key, tt.points)

			assert.Equal(t, tt.wantHandled, handled)
			assert.Equal(t, tt.wantIndex, next.FocusIndex)
			assert.Equal(t, tt.wantHandled, next.KeyboardMode)
		})
	}
}

func TestViewState_NavigateDoesNotMutateReceiver(t *testing.T) {
	start := ViewState{FocusIndex: 1}
	_, _ = start.Navigate(KeyEnd, 10)

	assert.Equal(t, ViewState{FocusIndex: 1}, start)
}

func TestViewState_PointerAndReset(t *testing.T) {
	s := ViewState{FocusIndex: 3, KeyboardMode: true}

	assert.Equal(t, ViewState{FocusIndex: 3}, s.Pointer())
	assert.Equal(t, ViewState{FocusIndex: 0, KeyboardMode: true}, s.Reset())
}
