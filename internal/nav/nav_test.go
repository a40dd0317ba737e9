package nav

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type recorder struct{ frames []Frame }

func (r *recorder) Render(f Frame) { r.frames = append(r.frames, f) }

func (r *recorder) last() Frame { return r.frames[len(r.frames)-1] }

func newTestController(t *testing.T) (*Controller, *fakeClock, *recorder) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	opts := DefaultOptions()
	opts.Clock = clock.Now
	rec := &recorder{}
	c := New(opts, rec)
	c.SetViewport(500)
	return c, clock, rec
}

// drag performs a full horizontal gesture from x=250 by dx over d.
func drag(c *Controller, clock *fakeClock, dx float64, d time.Duration) {
	c.PointerDown(250, 100, 500)
	clock.Advance(d)
	c.PointerMove(250+dx, 100)
	c.PointerUp()
}

func TestNewPaintsStartPageWithoutAnimation(t *testing.T) {
	rec := &recorder{}
	c := New(DefaultOptions(), rec)

	require.Len(t, rec.frames, 1)
	assert.Equal(t, Frame{Index: 2, Offset: -200}, rec.frames[0])
	assert.Equal(t, 2, c.Current())
	assert.True(t, c.Active(2))
	assert.False(t, c.Active(0))
}

func TestNewClampsStart(t *testing.T) {
	opts := DefaultOptions()
	opts.Start = 42
	assert.Equal(t, 4, New(opts).Current())

	opts.Pages = 0
	c := New(opts)
	assert.Equal(t, 1, c.Pages())
	assert.Equal(t, 0, c.Current())
}

func TestGoToClamps(t *testing.T) {
	c, _, rec := newTestController(t)

	c.GoTo(99, true)
	assert.Equal(t, 4, c.Current())
	assert.Equal(t, Frame{Index: 4, Offset: -400, Animate: true}, rec.last())

	c.GoTo(-5, true)
	assert.Equal(t, 0, c.Current())
	assert.Equal(t, Frame{Index: 0, Offset: 0, Animate: true}, rec.last())
}

func TestGoToIsIdempotent(t *testing.T) {
	c, _, rec := newTestController(t)

	c.GoTo(3, true)
	first := rec.last()
	c.GoTo(3, true)

	assert.Equal(t, first, rec.last())
	assert.Equal(t, 3, c.Current())
}

func TestAxisLock(t *testing.T) {
	c, _, rec := newTestController(t)
	before := len(rec.frames)

	c.PointerDown(100, 100, 500)
	c.PointerMove(103, 102)
	assert.Equal(t, AxisUndecided, c.Axis(), "inside the dead zone")

	c.PointerMove(101, 110)
	assert.Equal(t, AxisVertical, c.Axis())

	c.PointerMove(300, 110)
	assert.Equal(t, AxisVertical, c.Axis(), "axis never changes once decided")
	assert.Len(t, rec.frames, before, "vertical drags emit no frames")
}

func TestAxisLockHorizontal(t *testing.T) {
	c, _, _ := newTestController(t)

	c.PointerDown(100, 100, 500)
	c.PointerMove(92, 103)
	assert.Equal(t, AxisHorizontal, c.Axis())

	c.PointerMove(92, 400)
	assert.Equal(t, AxisHorizontal, c.Axis())
}

func TestLiveDragFrames(t *testing.T) {
	c, _, rec := newTestController(t)

	c.PointerDown(250, 100, 500)
	c.PointerMove(200, 100)

	f := rec.last()
	assert.True(t, f.Live)
	assert.Equal(t, 2, f.Index)
	assert.InDelta(t, -210, f.Offset, 1e-9)
	assert.True(t, c.Dragging())
}

func TestRubberBandAtEdges(t *testing.T) {
	tests := []struct {
		name  string
		index int
		dx    float64
		want  float64
	}{
		{name: "first page pulled right", index: 0, dx: 100, want: 20 * 0.35},
		{name: "last page pulled left", index: 4, dx: -100, want: -400 - 20*0.35},
		{name: "first page pulled left is undamped", index: 0, dx: -100, want: -20},
		{name: "middle page is undamped", index: 2, dx: 100, want: -180},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, rec := newTestController(t)
			c.GoTo(tt.index, false)

			c.PointerDown(250, 100, 500)
			c.PointerMove(250+tt.dx, 100)

			assert.InDelta(t, tt.want, rec.last().Offset, 1e-9)
		})
	}
}

func TestThreshold(t *testing.T) {
	c, _, _ := newTestController(t)
	assert.InDelta(t, 90, c.Threshold(), 1e-9)

	c.SetViewport(200)
	assert.InDelta(t, 36, c.Threshold(), 1e-9)

	c.SetViewport(2000)
	assert.InDelta(t, 90, c.Threshold(), 1e-9)
}

func TestThresholdFallsBackToContainerWidth(t *testing.T) {
	c := New(DefaultOptions())
	assert.Zero(t, c.Threshold())

	c.PointerDown(0, 0, 300)
	assert.InDelta(t, 54, c.Threshold(), 1e-9)
}

func TestPointerUpCommit(t *testing.T) {
	tests := []struct {
		name string
		dx   float64
		d    time.Duration
		want int
	}{
		{name: "past threshold slowly goes next", dx: -95, d: time.Second, want: 3},
		{name: "past threshold slowly goes previous", dx: 95, d: time.Second, want: 1},
		{name: "short slow drag snaps back", dx: -50, d: time.Second, want: 2},
		{name: "exactly threshold snaps back", dx: -90, d: time.Second, want: 2},
		{name: "short fast flick goes next", dx: -30, d: 10 * time.Millisecond, want: 3},
		{name: "short fast flick goes previous", dx: 30, d: 10 * time.Millisecond, want: 1},
		{name: "zero elapsed time floors at one millisecond", dx: -7, d: 0, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, clock, rec := newTestController(t)

			drag(c, clock, tt.dx, tt.d)

			assert.Equal(t, tt.want, c.Current())
			f := rec.last()
			assert.False(t, f.Live)
			assert.True(t, f.Animate)
			assert.Equal(t, float64(-tt.want*100), f.Offset)
			assert.False(t, c.Dragging())
		})
	}
}

func TestCommitClampsAtEdges(t *testing.T) {
	c, clock, _ := newTestController(t)

	c.GoTo(4, false)
	drag(c, clock, -200, time.Second)
	assert.Equal(t, 4, c.Current())

	c.GoTo(0, false)
	drag(c, clock, 200, time.Second)
	assert.Equal(t, 0, c.Current())
}

func TestVerticalGestureNeverChangesPage(t *testing.T) {
	c, clock, rec := newTestController(t)

	c.PointerDown(250, 100, 500)
	c.PointerMove(252, 300)
	c.PointerMove(0, 300)
	clock.Advance(5 * time.Millisecond)
	c.PointerUp()

	assert.Equal(t, 2, c.Current())
	assert.Equal(t, Frame{Index: 2, Offset: -200, Animate: true}, rec.last())
}

func TestTapSnapsBack(t *testing.T) {
	c, _, rec := newTestController(t)

	c.PointerDown(250, 100, 500)
	c.PointerUp()

	assert.Equal(t, 2, c.Current())
	assert.Equal(t, Frame{Index: 2, Offset: -200, Animate: true}, rec.last())
}

func TestPointerEventsWithoutGestureAreIgnored(t *testing.T) {
	c, _, rec := newTestController(t)
	before := len(rec.frames)

	c.PointerMove(10, 10)
	c.PointerUp()
	c.Cancel()

	assert.Len(t, rec.frames, before)
}

func TestKeys(t *testing.T) {
	c, _, rec := newTestController(t)

	assert.True(t, c.Key(KeyArrowRight))
	assert.Equal(t, 3, c.Current())
	assert.True(t, rec.last().Animate)

	assert.True(t, c.Key(KeyArrowLeft))
	assert.True(t, c.Key(KeyArrowLeft))
	assert.Equal(t, 1, c.Current())

	assert.False(t, c.Key("Enter"))
	assert.Equal(t, 1, c.Current())
}

func TestKeyAbandonsGesture(t *testing.T) {
	c, clock, _ := newTestController(t)

	c.PointerDown(250, 100, 500)
	c.PointerMove(100, 100)
	require.True(t, c.Dragging())

	c.Key(KeyArrowRight)
	assert.False(t, c.Dragging())
	assert.Equal(t, AxisUndecided, c.Axis())

	clock.Advance(time.Second)
	c.PointerUp()
	assert.Equal(t, 3, c.Current(), "released gesture no longer commits")
}

func TestClick(t *testing.T) {
	c, _, rec := newTestController(t)

	c.PointerDown(250, 100, 500)
	c.PointerMove(100, 100)
	c.Click(0)

	assert.Equal(t, 0, c.Current())
	assert.Equal(t, Frame{Index: 0, Offset: 0, Animate: true}, rec.last())
	assert.False(t, c.Dragging())

	c.Click(17)
	assert.Equal(t, 4, c.Current())
}

func TestNewPointerDownResetsGesture(t *testing.T) {
	c, clock, _ := newTestController(t)

	c.PointerDown(250, 100, 500)
	c.PointerMove(250, 300)
	require.Equal(t, AxisVertical, c.Axis())

	c.PointerDown(250, 100, 500)
	assert.Equal(t, AxisUndecided, c.Axis())

	clock.Advance(time.Second)
	c.PointerMove(150, 100)
	c.PointerUp()
	assert.Equal(t, 3, c.Current())
}

func TestResizeResettlesWithoutAnimation(t *testing.T) {
	c, _, rec := newTestController(t)
	c.GoTo(3, true)

	c.SetViewport(320)

	assert.Equal(t, Frame{Index: 3, Offset: -300}, rec.last())
	assert.InDelta(t, 320*0.18, c.Threshold(), 1e-9)
}

func TestCancelSnapsBack(t *testing.T) {
	c, _, rec := newTestController(t)

	c.PointerDown(250, 100, 500)
	c.PointerMove(50, 100)
	c.Cancel()

	assert.False(t, c.Dragging())
	assert.Equal(t, Frame{Index: 2, Offset: -200, Animate: true}, rec.last())
}

func TestTouchAliases(t *testing.T) {
	c, clock, _ := newTestController(t)

	c.TouchStart(250, 100, 500)
	clock.Advance(time.Second)
	c.TouchMove(400, 100)
	c.TouchEnd()

	assert.Equal(t, 1, c.Current())
}

func TestSubscribeRendersCurrentFrame(t *testing.T) {
	c, _, _ := newTestController(t)
	c.GoTo(1, true)

	var got []Frame
	c.Subscribe(ObserverFunc(func(f Frame) { got = append(got, f) }))
	c.Next()

	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Index)
	assert.Equal(t, 2, got[1].Index)
}

func TestAxisString(t *testing.T) {
	assert.Equal(t, "undecided", AxisUndecided.String())
	assert.Equal(t, "horizontal", AxisHorizontal.String())
	assert.Equal(t, "vertical", AxisVertical.String())
}
