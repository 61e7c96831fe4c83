// pkg/physics/collision.go
package physics

// Circle represents a disc-shaped collision shape
type Circle struct {
	Center Vector2
	Radius float64
}

// Contains reports whether point lies within the circle, boundary included
func (c Circle) Contains(point Vector2) bool {
	return c.Center.Distance(point) <= c.Radius
}

// Touches reports whether two circles overlap or touch
func (c Circle) Touches(other Circle) bool {
	return c.Center.Distance(other.Center) <= c.Radius+other.Radius
}

// Walls describes the inner planes of an axis-aligned table
type Walls struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// NewWalls builds the wall planes for a playing field of the given size
// surrounded by walls of the given thickness.
func NewWalls(width, height, thickness float64) Walls {
	return Walls{
		Left:   thickness,
		Top:    thickness,
		Right:  width + thickness,
		Bottom: height + thickness,
	}
}

// Contact reports which axes of the circle reach or cross a wall plane.
// hitX covers the left and right walls, hitY the top and bottom walls.
func (w Walls) Contact(c Circle) (hitX, hitY bool) {
	hitX = c.Center.X+c.Radius >= w.Right || c.Center.X-c.Radius <= w.Left
	hitY = c.Center.Y-c.Radius <= w.Top || c.Center.Y+c.Radius >= w.Bottom
	return hitX, hitY
}

// Bounce reflects velocity on every axis where the circle touches a wall.
// It returns the new velocity and which axes were reflected.
func (w Walls) Bounce(c Circle, velocity Vector2) (Vector2, bool, bool) {
	hitX, hitY := w.Contact(c)
	if hitX {
		velocity = velocity.ReflectX()
	}
	if hitY {
		velocity = velocity.ReflectY()
	}
	return velocity, hitX, hitY
}

// Approaching reports whether moving from pos by velocity for one step
// brings it strictly closer to target.
func Approaching(pos, velocity, target Vector2) bool {
	return pos.Add(velocity).Distance(target) < pos.Distance(target)
}

// ExchangeAlongNormal performs an equal-mass elastic collision between two
// discs centered at posA and posB. The velocity components along the line
// of centers are swapped; tangential components are untouched.
// posA and posB must differ.
func ExchangeAlongNormal(posA, posB Vector2, velA, velB *Vector2) {
	d := posA.Sub(posB).Normalized()
	j := velB.Dot(d) - velA.Dot(d)
	velA.IncreaseBy(d.Scale(j))
	velB.DecreaseBy(d.Scale(j))
}
