// Package nav implements the paged slider's navigation state machine.
//
// A Controller owns the current page index and turns pointer, touch,
// keyboard, button and resize events into Frames. It never draws anything;
// observers receive every Frame and render it however they like.
//
// Offsets are expressed the way a horizontal slider translates its track:
// page i is settled at -i*100 percent. During a horizontal drag the
// controller emits live frames with the finger's displacement added, damped
// at the first and last page. When the gesture ends the drag is either
// committed to the neighbouring page or snapped back, always through GoTo.
package nav

import (
	"math"
	"time"
)

// Axis is the direction a gesture has been locked to.
type Axis int

const (
	AxisUndecided Axis = iota
	AxisHorizontal
	AxisVertical
)

func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return "undecided"
	}
}

// Keys understood by Controller.Key.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

type Options struct {
	Pages int
	Start int // zero-based page shown first

	AxisLockPx     float64 // movement needed before the axis is decided
	RubberBand     float64 // damping factor past the first/last page
	MaxThresholdPx float64 // commit distance never exceeds this
	ThresholdRatio float64 // commit distance as a fraction of the viewport
	Velocity       float64 // commit speed in px/ms

	Clock func() time.Time
}

func DefaultOptions() Options {
	return Options{
		Pages:          5,
		Start:          2,
		AxisLockPx:     6,
		RubberBand:     0.35,
		MaxThresholdPx: 90,
		ThresholdRatio: 0.18,
		Velocity:       0.65,
		Clock:          time.Now,
	}
}

// Frame is one visual state of the slider.
type Frame struct {
	Index   int     // settled page index
	Offset  float64 // track translation in percent of one page
	Animate bool    // transition into this frame instead of jumping
	Live    bool    // transient drag frame, not yet reconciled by GoTo
}

// Observer receives every frame the controller produces.
type Observer interface {
	Render(Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Frame)

func (f ObserverFunc) Render(fr Frame) { f(fr) }

type gesture struct {
	active bool
	axis   Axis
	startX float64
	startY float64
	startT time.Time
	lastX  float64
	width  float64
}

type Controller struct {
	opts      Options
	current   int
	viewport  float64
	g         gesture
	frame     Frame
	observers []Observer
}

// New builds a controller showing opts.Start and paints that page once,
// without animation, to every observer.
func New(opts Options, observers ...Observer) *Controller {
	if opts.Pages < 1 {
		opts.Pages = 1
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	c := &Controller{opts: opts, observers: observers}
	c.GoTo(opts.Start, false)
	return c
}

// Subscribe adds o and immediately renders the current frame to it.
func (c *Controller) Subscribe(o Observer) {
	c.observers = append(c.observers, o)
	o.Render(c.frame)
}

func (c *Controller) Current() int   { return c.current }
func (c *Controller) Pages() int     { return c.opts.Pages }
func (c *Controller) Frame() Frame   { return c.frame }
func (c *Controller) Dragging() bool { return c.g.active }
func (c *Controller) Axis() Axis     { return c.g.axis }

// Active reports whether the nav button or indicator at position i should be
// highlighted.
func (c *Controller) Active(i int) bool { return i == c.current }

// GoTo settles the slider on index, clamped to the valid page range. It is
// the only place the current index changes.
func (c *Controller) GoTo(index int, animate bool) {
	c.current = clamp(index, 0, c.opts.Pages-1)
	c.emit(Frame{
		Index:   c.current,
		Offset:  -float64(c.current) * 100,
		Animate: animate,
	})
}

// Next and Prev move one page with animation.
func (c *Controller) Next() { c.GoTo(c.current+1, true) }
func (c *Controller) Prev() { c.GoTo(c.current-1, true) }

// Key handles ArrowLeft/ArrowRight and reports whether key was consumed.
// Any gesture in flight is abandoned.
func (c *Controller) Key(key string) bool {
	switch key {
	case KeyArrowLeft:
		c.reset()
		c.Prev()
	case KeyArrowRight:
		c.reset()
		c.Next()
	default:
		return false
	}
	return true
}

// Click jumps to the page a navigation button points at.
func (c *Controller) Click(target int) {
	c.reset()
	c.GoTo(target, true)
}

// SetViewport records the viewport width and re-settles the current page
// without animation so stale drag math never shows after a resize.
func (c *Controller) SetViewport(width float64) {
	c.viewport = width
	c.GoTo(c.current, false)
}

// Threshold is the drag distance in px that commits a page change.
func (c *Controller) Threshold() float64 {
	vw := c.viewport
	if vw <= 0 {
		vw = c.g.width
	}
	return math.Min(c.opts.MaxThresholdPx, vw*c.opts.ThresholdRatio)
}

// PointerDown starts a gesture at (x, y). containerWidth is measured now,
// since layout may have changed since the previous gesture.
func (c *Controller) PointerDown(x, y, containerWidth float64) {
	if containerWidth <= 0 {
		containerWidth = c.viewport
	}
	c.g = gesture{
		active: true,
		axis:   AxisUndecided,
		startX: x,
		startY: y,
		startT: c.opts.Clock(),
		lastX:  x,
		width:  containerWidth,
	}
}

// PointerMove tracks the gesture. Horizontal drags emit live frames;
// vertical drags are left to native scrolling.
func (c *Controller) PointerMove(x, y float64) {
	if !c.g.active {
		return
	}
	c.g.lastX = x
	dx, dy := x-c.g.startX, y-c.g.startY

	if c.g.axis == AxisUndecided {
		if math.Abs(dx) < c.opts.AxisLockPx && math.Abs(dy) < c.opts.AxisLockPx {
			return
		}
		if math.Abs(dx) > math.Abs(dy) {
			c.g.axis = AxisHorizontal
		} else {
			c.g.axis = AxisVertical
		}
	}
	if c.g.axis != AxisHorizontal {
		return
	}

	c.emit(Frame{
		Index:  c.current,
		Offset: c.dragOffset(dx),
		Live:   true,
	})
}

// dragOffset is the live track offset for a horizontal displacement dx.
func (c *Controller) dragOffset(dx float64) float64 {
	var percent float64
	if c.g.width > 0 {
		percent = dx / c.g.width * 100
	}
	atFirst := c.current == 0 && dx > 0
	atLast := c.current == c.opts.Pages-1 && dx < 0
	if atFirst || atLast {
		percent *= c.opts.RubberBand
	}
	return -float64(c.current)*100 + percent
}

// PointerUp ends the gesture. A horizontal drag commits to the neighbouring
// page when it travelled past Threshold or moved faster than the configured
// velocity; everything else snaps back to the current page.
func (c *Controller) PointerUp() {
	if !c.g.active {
		return
	}
	g := c.g
	c.reset()

	if g.axis != AxisHorizontal {
		c.GoTo(c.current, true)
		return
	}

	dx := g.lastX - g.startX
	dt := float64(c.opts.Clock().Sub(g.startT)) / float64(time.Millisecond)
	velocity := math.Abs(dx) / math.Max(dt, 1)

	next := c.current
	if math.Abs(dx) > c.Threshold() || velocity > c.opts.Velocity {
		switch {
		case dx < 0:
			next = c.current + 1
		case dx > 0:
			next = c.current - 1
		}
	}
	c.GoTo(next, true)
}

// Cancel abandons the gesture and snaps back.
func (c *Controller) Cancel() {
	if !c.g.active {
		return
	}
	c.reset()
	c.GoTo(c.current, true)
}

// Touch events follow the same state machine as pointer events.
func (c *Controller) TouchStart(x, y, containerWidth float64) { c.PointerDown(x, y, containerWidth) }
func (c *Controller) TouchMove(x, y float64)                  { c.PointerMove(x, y) }
func (c *Controller) TouchEnd()                               { c.PointerUp() }

func (c *Controller) reset() {
	c.g = gesture{}
}

func (c *Controller) emit(f Frame) {
	c.frame = f
	for _, o := range c.observers {
		o.Render(f)
	}
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
