package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/lifelog/internal/nav"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC)}
}

func TestCompose(t *testing.T) {
	pages := []string{"aaaa", "bbbb", "cccc"}

	tests := []struct {
		name   string
		offset float64
		h      int
		want   string
	}{
		{"first page", 0, 1, "aaaa"},
		{"second page", -100, 1, "bbbb"},
		{"halfway", -50, 1, "aabb"},
		{"three quarters into last", -175, 1, "bccc"},
		{"rubber band before first", 20, 1, " aaa"},
		{"rubber band past last", -220, 1, "ccc "},
		{"pads missing lines", -200, 2, "cccc\n    "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compose(pages, tt.offset, 4, tt.h))
		})
	}
}

func TestPageLinesTruncatesAndPads(t *testing.T) {
	lines := pageLines([]string{"abcdef\nx"}, 0, 4, 3)
	assert.Equal(t, []string{"abcd", "x   ", "    "}, lines)

	blank := pageLines([]string{"abc"}, 5, 3, 1)
	assert.Equal(t, []string{"   "}, blank)
}

func TestCutLeft(t *testing.T) {
	assert.Equal(t, "cdef", cutLeft("abcdef", 2))
	assert.Equal(t, "abc", cutLeft("abc", 0))
	assert.Equal(t, "", cutLeft("abc", 5))
	assert.Equal(t, "\x1b[31mbc\x1b[0m", cutLeft("\x1b[31mabc\x1b[0m", 1))
	// a wide rune cut in half leaves a space behind
	assert.Equal(t, " b", cutLeft("日b", 1))
}

func TestSliderTween(t *testing.T) {
	clk := newFakeClock()
	s := newSlider(5, 100*time.Millisecond, clk.now)

	s.Render(nav.Frame{Index: 2, Offset: -200})
	assert.Equal(t, -200.0, s.offset)
	assert.False(t, s.animating)
	assert.Equal(t, []bool{false, false, true, false, false}, s.active)

	s.Render(nav.Frame{Index: 3, Offset: -300, Animate: true})
	require.True(t, s.animating)
	assert.Equal(t, 3, s.index)
	assert.Equal(t, -200.0, s.offset, "animated frames start from what is on screen")

	clk.advance(50 * time.Millisecond)
	assert.True(t, s.step())
	assert.InDelta(t, -287.5, s.offset, 0.001)

	clk.advance(60 * time.Millisecond)
	assert.False(t, s.step())
	assert.Equal(t, -300.0, s.offset)
	assert.False(t, s.animating)
}

func TestSliderLiveFramesApplyDirectly(t *testing.T) {
	clk := newFakeClock()
	s := newSlider(3, 100*time.Millisecond, clk.now)

	s.Render(nav.Frame{Index: 1, Offset: -100})
	s.Render(nav.Frame{Index: 1, Offset: -130, Live: true})
	assert.Equal(t, -130.0, s.offset)
	assert.False(t, s.step())
}

func TestSliderWithoutTransition(t *testing.T) {
	s := newSlider(3, 0, nil)
	s.Render(nav.Frame{Index: 2, Offset: -200, Animate: true})
	assert.Equal(t, -200.0, s.offset)
	assert.False(t, s.animating)
}
