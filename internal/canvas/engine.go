// Package canvas implements the drawing collaborator: a stateful pen over
// an accumulating list of vector shapes.
package canvas

import (
	"fmt"
	"math"
)

// Point is a 2-D coordinate.
type Point struct {
	X, Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("Point(%g, %g)", p.X, p.Y)
}

// DistanceTo returns the Euclidean distance to another point.
func (p Point) DistanceTo(other Point) float64 {
	return math.Hypot(other.X-p.X, other.Y-p.Y)
}

// AngleTo returns the angle to another point in degrees.
func (p Point) AngleTo(other Point) float64 {
	return math.Atan2(other.Y-p.Y, other.X-p.X) * 180 / math.Pi
}

// ---- Shapes ----

// Line is a stroked segment between two absolute points.
type Line struct {
	From, To Point
	Color    string
	Width    float64
}

// Circle is a stroked, optionally filled circle. Fill is empty when the
// shape was drawn with filling off.
type Circle struct {
	Center Point
	Radius float64
	Color  string
	Width  float64
	Fill   string
}

// Rect is an axis-aligned rectangle anchored at its corner.
type Rect struct {
	Corner Point
	W, H   float64
	Color  string
	Width  float64
	Fill   string
}

// Polygon is a closed shape over a list of vertices.
type Polygon struct {
	Points []Point
	Color  string
	Width  float64
	Fill   string
}

// Arc is an elliptical arc. Angle rotates the ellipse; the rendered span is
// always the 0 to 180 degree half regardless of Angle.
type Arc struct {
	Center Point
	W, H   float64
	Angle  float64
	Color  string
	Width  float64
}

// ---- Engine ----

const (
	initialHeading = 90 // degrees, 0 = right, 90 = up
	minPenWidth    = 0.1
)

// Engine accumulates shapes under a movable pen. Pen state and shapes
// persist across program runs within one session.
type Engine struct {
	width, height int
	title         string

	penPos    Point
	heading   float64
	penDown   bool
	penColor  string
	penWidth  float64
	fillColor string
	filling   bool

	lines    []Line
	circles  []Circle
	rects    []Rect
	polygons []Polygon
	arcs     []Arc

	redraws int
	shown   bool

	// OnRedraw, when set, is invoked on every redraw request.
	OnRedraw func()
}

// NewEngine creates an engine with the given viewport dimensions.
func NewEngine(width, height int, title string) *Engine {
	e := &Engine{
		width:  width,
		height: height,
		title:  title,
	}
	e.Reset()
	return e
}

// ---- pen state ----

// Reset restores pen position, heading, color, width and fill to their
// initial defaults. Accumulated shapes are kept.
func (e *Engine) Reset() {
	e.penPos = Point{}
	e.heading = initialHeading
	e.penDown = true
	e.penColor = "black"
	e.penWidth = 1.0
	e.fillColor = ""
	e.filling = false
}

// Clear discards all accumulated shapes. Pen state is kept.
func (e *Engine) Clear() {
	e.lines = nil
	e.circles = nil
	e.rects = nil
	e.polygons = nil
	e.arcs = nil
	e.Redraw()
}

// SetColor sets the stroke color, and the fill color too while filling.
func (e *Engine) SetColor(color string) {
	e.penColor = color
	if e.filling {
		e.fillColor = color
	}
}

// SetWidth sets the stroke width, floored at a minimum positive value.
func (e *Engine) SetWidth(width float64) {
	e.penWidth = math.Max(minPenWidth, width)
}

// SetFill enables or disables filling. Enabling without a prior fill color
// adopts the current stroke color.
func (e *Engine) SetFill(fill bool) {
	e.filling = fill
	if fill && e.fillColor == "" {
		e.fillColor = e.penColor
	} else if !fill {
		e.fillColor = ""
	}
}

// PenUp lifts the pen so that movement stops recording lines.
func (e *Engine) PenUp() {
	e.penDown = false
}

// PenDown lowers the pen.
func (e *Engine) PenDown() {
	e.penDown = true
}

// ---- movement ----

// Goto moves the pen to an absolute position, recording a line segment when
// the pen is down.
func (e *Engine) Goto(x, y float64) {
	if e.penDown {
		e.lines = append(e.lines, Line{
			From:  e.penPos,
			To:    Point{X: x, Y: y},
			Color: e.penColor,
			Width: e.penWidth,
		})
	}
	e.penPos = Point{X: x, Y: y}
}

// Forward moves the pen along the current heading by a signed distance.
func (e *Engine) Forward(distance float64) {
	rad := e.heading * math.Pi / 180
	e.Goto(e.penPos.X+distance*math.Cos(rad), e.penPos.Y+distance*math.Sin(rad))
}

// Backward moves the pen against the current heading.
func (e *Engine) Backward(distance float64) {
	e.Forward(-distance)
}

// TurnLeft rotates the heading counterclockwise by degrees.
func (e *Engine) TurnLeft(deg float64) {
	e.heading += deg
}

// TurnRight rotates the heading clockwise by degrees.
func (e *Engine) TurnRight(deg float64) {
	e.heading -= deg
}

// SetHeading sets the heading in degrees (0 = right, 90 = up).
func (e *Engine) SetHeading(deg float64) {
	e.heading = deg
}

// Position returns the current pen position.
func (e *Engine) Position() (x, y float64) {
	return e.penPos.X, e.penPos.Y
}

// Heading returns the current heading in degrees.
func (e *Engine) Heading() float64 {
	return e.heading
}

// ---- shape commands ----

func (e *Engine) currentFill() string {
	if e.filling {
		return e.fillColor
	}
	return ""
}

// DrawCircle draws a circle centered on the pen position.
func (e *Engine) DrawCircle(radius float64) {
	x, y := e.penPos.X, e.penPos.Y
	e.DrawCircleAt(radius, x, y)
}

// DrawCircleAt draws a circle at an explicit center. When the pen is up,
// the pen relocates to the center.
func (e *Engine) DrawCircleAt(radius, cx, cy float64) {
	center := Point{X: cx, Y: cy}
	e.circles = append(e.circles, Circle{
		Center: center,
		Radius: radius,
		Color:  e.penColor,
		Width:  e.penWidth,
		Fill:   e.currentFill(),
	})
	if !e.penDown {
		e.penPos = center
	}
}

// DrawRect draws a rectangle cornered at the pen position.
func (e *Engine) DrawRect(width, height float64) {
	e.DrawRectAt(width, height, e.penPos.X, e.penPos.Y)
}

// DrawRectAt draws a rectangle at an explicit corner.
func (e *Engine) DrawRectAt(width, height, cx, cy float64) {
	e.rects = append(e.rects, Rect{
		Corner: Point{X: cx, Y: cy},
		W:      width,
		H:      height,
		Color:  e.penColor,
		Width:  e.penWidth,
		Fill:   e.currentFill(),
	})
}

// DrawLine draws an absolute segment, independent of the pen position.
func (e *Engine) DrawLine(x1, y1, x2, y2 float64) {
	e.lines = append(e.lines, Line{
		From:  Point{X: x1, Y: y1},
		To:    Point{X: x2, Y: y2},
		Color: e.penColor,
		Width: e.penWidth,
	})
}

// DrawPolygon draws a closed shape from a flat list of x,y coordinates.
func (e *Engine) DrawPolygon(coords []float64) {
	points := make([]Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		points = append(points, Point{X: coords[i], Y: coords[i+1]})
	}
	e.polygons = append(e.polygons, Polygon{
		Points: points,
		Color:  e.penColor,
		Width:  e.penWidth,
		Fill:   e.currentFill(),
	})
}

// DrawArc draws an arc centered on the pen position.
func (e *Engine) DrawArc(width, height, angle float64) {
	e.DrawArcAt(width, height, angle, e.penPos.X, e.penPos.Y)
}

// DrawArcAt draws an arc at an explicit center. The stored angle rotates
// the ellipse; the rendered span stays the fixed half-ellipse.
func (e *Engine) DrawArcAt(width, height, angle, cx, cy float64) {
	e.arcs = append(e.arcs, Arc{
		Center: Point{X: cx, Y: cy},
		W:      width,
		H:      height,
		Angle:  angle,
		Color:  e.penColor,
		Width:  e.penWidth,
	})
}

// ---- presentation ----

// Redraw records a redraw request and invokes the OnRedraw hook.
func (e *Engine) Redraw() {
	e.redraws++
	if e.OnRedraw != nil {
		e.OnRedraw()
	}
}

// Show marks the canvas as displayed.
func (e *Engine) Show() {
	e.shown = true
}

// ---- accessors ----

// Lines returns the recorded line segments.
func (e *Engine) Lines() []Line { return e.lines }

// Circles returns the recorded circles.
func (e *Engine) Circles() []Circle { return e.circles }

// Rects returns the recorded rectangles.
func (e *Engine) Rects() []Rect { return e.rects }

// Polygons returns the recorded polygons.
func (e *Engine) Polygons() []Polygon { return e.polygons }

// Arcs returns the recorded arcs.
func (e *Engine) Arcs() []Arc { return e.arcs }

// ShapeCount returns the total number of accumulated shapes.
func (e *Engine) ShapeCount() int {
	return len(e.lines) + len(e.circles) + len(e.rects) + len(e.polygons) + len(e.arcs)
}

// RedrawCount returns how many redraw requests have been issued.
func (e *Engine) RedrawCount() int { return e.redraws }

// Shown reports whether show() has been called.
func (e *Engine) Shown() bool { return e.shown }

// IsPenDown reports whether the pen is down.
func (e *Engine) IsPenDown() bool { return e.penDown }

// Color returns the current stroke color.
func (e *Engine) Color() string { return e.penColor }

// StrokeWidth returns the current stroke width.
func (e *Engine) StrokeWidth() float64 { return e.penWidth }

// Filling reports whether filling is enabled.
func (e *Engine) Filling() bool { return e.filling }

// FillColor returns the current fill color, empty when not filling.
func (e *Engine) FillColor() string { return e.fillColor }

// Size returns the viewport dimensions.
func (e *Engine) Size() (width, height int) {
	return e.width, e.height
}

// Title returns the canvas title.
func (e *Engine) Title() string { return e.title }
