package vector

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vector2f is a point in osu!pixels.
type Vector2f struct {
	X, Y float32
}

func NewVec2f(x, y float32) Vector2f {
	return Vector2f{X: x, Y: y}
}

func fromMgl(v mgl32.Vec2) Vector2f {
	return Vector2f{X: v[0], Y: v[1]}
}

func (v Vector2f) Mgl() mgl32.Vec2 {
	return mgl32.Vec2{v.X, v.Y}
}

func (v Vector2f) Add(v1 Vector2f) Vector2f {
	return fromMgl(v.Mgl().Add(v1.Mgl()))
}

func (v Vector2f) Sub(v1 Vector2f) Vector2f {
	return fromMgl(v.Mgl().Sub(v1.Mgl()))
}

func (v Vector2f) Scl(s float32) Vector2f {
	return fromMgl(v.Mgl().Mul(s))
}

func (v Vector2f) Dot(v1 Vector2f) float32 {
	return v.Mgl().Dot(v1.Mgl())
}

func (v Vector2f) Len() float32 {
	return v.Mgl().Len()
}

func (v Vector2f) Dst(v1 Vector2f) float32 {
	return math32.Hypot(v1.X-v.X, v1.Y-v.Y)
}

func (v Vector2f) DstSq(v1 Vector2f) float32 {
	x, y := v1.X-v.X, v1.Y-v.Y
	return x*x + y*y
}

// Lerp linearly interpolates from v towards v1 by t.
func (v Vector2f) Lerp(v1 Vector2f, t float32) Vector2f {
	return Vector2f{
		X: v.X + (v1.X-v.X)*t,
		Y: v.Y + (v1.Y-v.Y)*t,
	}
}

// AngleRV returns the signed angle between v and v1 in radians.
func (v Vector2f) AngleRV(v1 Vector2f) float32 {
	det := v.X*v1.Y - v.Y*v1.X
	return math32.Atan2(det, v.Dot(v1))
}

func (v Vector2f) IsNaN() bool {
	return math32.IsNaN(v.X) || math32.IsNaN(v.Y)
}

func (v Vector2f) String() string {
	return fmt.Sprintf("%.2fx%.2f", v.X, v.Y)
}
