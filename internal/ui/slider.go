package ui

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/ramanasai/lifelog/internal/nav"
)

// Terminal cells are mapped to pixels so the controller's px thresholds keep
// roughly the feel they have on a phone screen.
const (
	cellWidthPx  = 8
	cellHeightPx = 16

	frameInterval = time.Second / 60
)

// slider is the nav.Observer that owns what the track currently shows. Live
// drag frames are shown as-is; animated frames are eased toward over the
// configured transition.
type slider struct {
	index     int
	active    []bool
	offset    float64 // displayed track offset, percent
	from, to  float64
	start     time.Time
	duration  time.Duration
	animating bool
	ticking   bool
	clock     func() time.Time
}

func newSlider(pages int, transition time.Duration, clock func() time.Time) *slider {
	if clock == nil {
		clock = time.Now
	}
	return &slider{active: make([]bool, pages), duration: transition, clock: clock}
}

func (s *slider) Render(f nav.Frame) {
	s.index = f.Index
	for i := range s.active {
		s.active[i] = i == f.Index
	}

	if !f.Animate || s.duration <= 0 {
		s.offset = f.Offset
		s.animating = false
		return
	}
	s.from = s.offset
	s.to = f.Offset
	s.start = s.clock()
	s.animating = s.from != s.to
}

// step advances the tween and reports whether another frame is needed.
func (s *slider) step() bool {
	if !s.animating {
		return false
	}
	t := float64(s.clock().Sub(s.start)) / float64(s.duration)
	if t >= 1 {
		s.offset = s.to
		s.animating = false
		return false
	}
	s.offset = s.from + (s.to-s.from)*easeOutCubic(t)
	return true
}

func easeOutCubic(t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	return 1 - math.Pow(1-t, 3)
}

type frameMsg struct{}

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

// compose lays the rendered pages side by side and cuts the w-wide window
// the track offset points at. Pages outside the range show as blank, which
// is what the rubber band reveals at either end.
func compose(pages []string, offset float64, w, h int) string {
	pos := -offset / 100
	left := int(math.Floor(pos))
	col := int(math.Round((pos - float64(left)) * float64(w)))
	if col >= w {
		left++
		col = 0
	}

	leftLines := pageLines(pages, left, w, h)
	rightLines := pageLines(pages, left+1, w, h)

	out := make([]string, h)
	for i := 0; i < h; i++ {
		if col == 0 {
			out[i] = leftLines[i]
			continue
		}
		out[i] = cutLeft(leftLines[i], col) + truncate.String(rightLines[i], uint(col))
	}
	return strings.Join(out, "\n")
}

// pageLines returns exactly h lines of exactly w cells for page i.
func pageLines(pages []string, i, w, h int) []string {
	lines := make([]string, h)
	var src []string
	if i >= 0 && i < len(pages) {
		src = strings.Split(pages[i], "\n")
	}
	for n := range lines {
		var l string
		if n < len(src) {
			l = truncate.String(src[n], uint(w))
		}
		if pad := w - ansi.PrintableRuneWidth(l); pad > 0 {
			l += strings.Repeat(" ", pad)
		}
		lines[n] = l
	}
	return lines
}

// cutLeft drops the first n cells of s. Escape sequences are kept so styling
// that started in the dropped part still applies.
func cutLeft(s string, n int) string {
	if n <= 0 {
		return s
	}
	var b strings.Builder
	inSeq := false
	skipped := 0
	for _, r := range s {
		if r == ansi.Marker {
			inSeq = true
			b.WriteRune(r)
			continue
		}
		if inSeq {
			b.WriteRune(r)
			if ansi.IsTerminator(r) {
				inSeq = false
			}
			continue
		}
		if skipped < n {
			skipped += runewidth.RuneWidth(r)
			if skipped > n {
				// a wide rune straddled the cut
				b.WriteString(strings.Repeat(" ", skipped-n))
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
