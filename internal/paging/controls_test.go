package paging_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tirasundara/momo-dashboard/internal/paging"
)

func labels(controls []paging.Control) string {
	parts := make([]string, len(controls))
	for i, c := range controls {
		parts[i] = c.Label()
	}
	return strings.Join(parts, " ")
}

func TestControls(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    string
	}{
		{"single page", 1, 1, ""},
		{"two pages", 1, 2, "Previous 1 2 Next"},
		{"fits in window", 3, 5, "Previous 1 2 3 4 5 Next"},
		{"start of range", 1, 10, "Previous 1 2 3 4 5 ... 10 Next"},
		{"window shifted right", 2, 10, "Previous 1 2 3 4 5 ... 10 Next"},
		{"middle", 5, 10, "Previous 1 ... 3 4 5 6 7 ... 10 Next"},
		{"end of range", 10, 10, "Previous 1 ... 6 7 8 9 10 Next"},
		{"no ellipsis before adjacent anchor", 4, 10, "Previous 1 2 3 4 5 6 ... 10 Next"},
		{"no ellipsis after adjacent anchor", 7, 10, "Previous 1 ... 5 6 7 8 9 10 Next"},
		{"six pages", 6, 6, "Previous 1 2 3 4 5 6 Next"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := labels(paging.Controls(tt.current, tt.total))
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestControls_DisabledEnds(t *testing.T) {
	first := paging.Controls(1, 3)
	assert.True(t, first[0].Disabled, "Previous should be disabled on page 1")
	assert.False(t, first[len(first)-1].Disabled)

	last := paging.Controls(3, 3)
	assert.False(t, last[0].Disabled)
	assert.True(t, last[len(last)-1].Disabled, "Next should be disabled on the last page")
}

func TestControls_ActivePage(t *testing.T) {
	var active []int
	for _, c := range paging.Controls(5, 10) {
		if c.Active {
			active = append(active, c.Page)
		}
	}

	assert.Equal(t, []int{5}, active)
}

func TestWindow(t *testing.T) {
	for current := 1; current <= 20; current++ {
		start, end := paging.Window(current, 20)

		assert.Equal(t, 4, end-start, "window at %d should hold 5 pages", current)
		assert.GreaterOrEqual(t, start, 1)
		assert.LessOrEqual(t, end, 20)
		assert.True(t, start <= current && current <= end)
	}

	start, end := paging.Window(2, 3)
	assert.Equal(t, 1, start)
	assert.Equal(t, 3, end)
}
