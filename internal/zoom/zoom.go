// Package zoom implements the zoom and pan state of the photo viewer.
//
// Scale moves along a fixed ladder for keyboard steps, jumps to fixed rungs
// on click and double click, and moves by a constant step on the mouse wheel.
// Pan is only meaningful above the neutral scale: any transition that leaves
// the scale at or below 1 also zeroes the pan.
package zoom

import "math"

// Ladder is the sequence of scales visited by ZoomInStep and ZoomOutStep.
var Ladder = []float64{0.25, 0.5, 0.75, 1, 1.25, 1.5, 2, 2.5, 3, 4, 5}

const (
	MinScale         = 0.25
	MaxScale         = 5.0
	Neutral          = 1.0
	WheelStep        = 0.25
	ClickScale       = 2.0
	DoubleClickScale = 3.0

	// Center is the default origin on both axes, in percent of the image box.
	Center = 50.0

	epsilon = 1e-9
)

// Point is a pair of coordinates. Origins are percentages of the rendered
// image box; pan and pointer positions are in box units (terminal cells).
type Point struct {
	X, Y float64
}

// State is a snapshot of the controller.
type State struct {
	Scale    float64
	Origin   Point
	Pan      Point
	Dragging bool
}

// Transform describes how to draw the image: translate by pan divided by the
// scale, then scale about the origin.
type Transform struct {
	TranslateX float64
	TranslateY float64
	Scale      float64
	OriginX    float64 // percent
	OriginY    float64 // percent
}

// Rect is a crop rectangle in source image pixels. It may extend past the
// image bounds when the image is panned off screen.
type Rect struct {
	X, Y, W, H float64
}

// Options configures optional policies.
type Options struct {
	// ClampPan keeps the zoomed image covering the whole box. Requires SetBox.
	ClampPan bool
}

// Controller holds the zoom state of the image currently displayed.
type Controller struct {
	opts  Options
	state State
	last  Point // pointer position of the previous drag event
	boxW  float64
	boxH  float64
}

// New returns a controller at the neutral state.
func New(opts Options) *Controller {
	c := &Controller{opts: opts}
	c.Reset()
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Scale returns the current scale.
func (c *Controller) Scale() float64 {
	return c.state.Scale
}

// Zoomed reports whether the image is magnified past the neutral scale.
func (c *Controller) Zoomed() bool {
	return c.state.Scale > Neutral+epsilon
}

// SetBox records the size of the rendered image box, in the same units as
// pointer positions. Used for pan clamping.
func (c *Controller) SetBox(w, h float64) {
	c.boxW, c.boxH = w, h
	c.clamp()
}

// Reset returns to scale 1, centered, without pan.
func (c *Controller) Reset() {
	c.state = State{
		Scale:  Neutral,
		Origin: Point{X: Center, Y: Center},
	}
}

// ZoomInStep moves one rung up the ladder. A scale between rungs moves to
// the next rung above it. No-op at the top.
func (c *Controller) ZoomInStep() {
	for _, r := range Ladder {
		if r > c.state.Scale+epsilon {
			c.setScale(r)
			return
		}
	}
}

// ZoomOutStep moves one rung down the ladder. No-op at the bottom.
func (c *Controller) ZoomOutStep() {
	for i := len(Ladder) - 1; i >= 0; i-- {
		if Ladder[i] < c.state.Scale-epsilon {
			c.setScale(Ladder[i])
			return
		}
	}
}

// ClickToggleZoom zooms to 2x about the pointer from the neutral scale and
// resets from any other scale.
func (c *Controller) ClickToggleZoom(xPct, yPct float64) {
	c.toggle(ClickScale, xPct, yPct)
}

// DoubleClickZoom is ClickToggleZoom with a 3x target.
func (c *Controller) DoubleClickZoom(xPct, yPct float64) {
	c.toggle(DoubleClickScale, xPct, yPct)
}

func (c *Controller) toggle(target, xPct, yPct float64) {
	if !isNeutral(c.state.Scale) {
		c.Reset()
		return
	}
	c.state.Scale = target
	c.state.Origin = Point{X: percent(xPct), Y: percent(yPct)}
	c.clamp()
}

// Wheel changes the scale by WheelStep in the direction of sign. At or below
// the neutral scale the origin recenters; above it follows the pointer.
func (c *Controller) Wheel(sign int, xPct, yPct float64) {
	switch {
	case sign > 0:
		c.state.Scale = min(c.state.Scale+WheelStep, MaxScale)
	case sign < 0:
		c.state.Scale = max(c.state.Scale-WheelStep, MinScale)
	default:
		return
	}
	if c.state.Scale <= Neutral+epsilon {
		c.settle()
		c.state.Origin = Point{X: Center, Y: Center}
		return
	}
	c.state.Origin = Point{X: percent(xPct), Y: percent(yPct)}
	c.clamp()
}

// DragStart begins a pan gesture at the pointer. Ignored unless zoomed in.
// Reports whether a drag started.
func (c *Controller) DragStart(x, y float64) bool {
	if !c.Zoomed() {
		return false
	}
	c.state.Dragging = true
	c.last = Point{X: x, Y: y}
	return true
}

// DragMove adds the pointer movement since the previous event to the pan.
// Reports whether the pan changed.
func (c *Controller) DragMove(x, y float64) bool {
	if !c.state.Dragging {
		return false
	}
	dx, dy := x-c.last.X, y-c.last.Y
	c.last = Point{X: x, Y: y}
	if dx == 0 && dy == 0 {
		return false
	}
	c.state.Pan.X += dx
	c.state.Pan.Y += dy
	c.clamp()
	return true
}

// DragEnd finishes the pan gesture.
func (c *Controller) DragEnd() {
	c.state.Dragging = false
}

// Transform returns the draw transform for the current state.
func (c *Controller) Transform() Transform {
	s := c.state
	return Transform{
		TranslateX: s.Pan.X / s.Scale,
		TranslateY: s.Pan.Y / s.Scale,
		Scale:      s.Scale,
		OriginX:    s.Origin.X,
		OriginY:    s.Origin.Y,
	}
}

// Viewport returns the part of an imgW x imgH image that is visible when it
// is fitted into a boxW x boxH box and transformed. A box point p shows image
// point o + (p - pan - o) / scale, with o the origin in box units.
func (c *Controller) Viewport(imgW, imgH, boxW, boxH float64) Rect {
	if boxW <= 0 || boxH <= 0 {
		return Rect{W: imgW, H: imgH}
	}
	s := c.state
	ox := s.Origin.X / 100 * boxW
	oy := s.Origin.Y / 100 * boxH
	left := ox + (-s.Pan.X-ox)/s.Scale
	top := oy + (-s.Pan.Y-oy)/s.Scale
	sx, sy := imgW/boxW, imgH/boxH
	return Rect{
		X: left * sx,
		Y: top * sy,
		W: boxW / s.Scale * sx,
		H: boxH / s.Scale * sy,
	}
}

func (c *Controller) setScale(scale float64) {
	c.state.Scale = scale
	if scale <= Neutral+epsilon {
		c.settle()
		return
	}
	c.clamp()
}

// settle enforces the neutral-or-below invariant.
func (c *Controller) settle() {
	c.state.Pan = Point{}
	c.state.Dragging = false
}

// clamp limits pan so that the zoomed image still covers the box, when the
// ClampPan policy is on and the box size is known.
func (c *Controller) clamp() {
	if !c.opts.ClampPan || c.boxW <= 0 || c.boxH <= 0 || !c.Zoomed() {
		return
	}
	k := c.state.Scale - 1
	ox := c.state.Origin.X / 100 * c.boxW
	oy := c.state.Origin.Y / 100 * c.boxH
	c.state.Pan.X = math.Max(-k*(c.boxW-ox), math.Min(c.state.Pan.X, k*ox))
	c.state.Pan.Y = math.Max(-k*(c.boxH-oy), math.Min(c.state.Pan.Y, k*oy))
}

func isNeutral(scale float64) bool {
	return math.Abs(scale-Neutral) < epsilon
}

func percent(v float64) float64 {
	return math.Max(0, math.Min(v, 100))
}
