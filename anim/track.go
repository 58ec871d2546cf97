// Package anim plays keyframe clips onto scene nodes.
package anim

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/orrery/scene"
)

// Path is the node property a track drives.
type Path int

const (
	Translation Path = iota
	Rotation
	Scale
)

// Width returns the number of floats in one keyframe value.
func (p Path) Width() int {
	if p == Rotation {
		return 4
	}
	return 3
}

func (p Path) String() string {
	switch p {
	case Translation:
		return "translation"
	case Rotation:
		return "rotation"
	case Scale:
		return "scale"
	}
	return "unknown"
}

// Interpolation selects how values between keyframes are computed.
type Interpolation int

const (
	Linear Interpolation = iota
	Step
	// CubicSpline keyframes store an in-tangent, the value and an out-tangent,
	// in that order.
	CubicSpline
)

// Track animates one property of one node. Times are in seconds and strictly
// increasing. Rotation values are quaternions in x, y, z, w order.
type Track struct {
	Target        *scene.Node
	Path          Path
	Interpolation Interpolation
	Times         []float32
	Values        []float32
}

// stride is the number of floats per keyframe.
func (t *Track) stride() int {
	if t.Interpolation == CubicSpline {
		return 3 * t.Path.Width()
	}
	return t.Path.Width()
}

// value returns keyframe i's value, skipping the in-tangent of cubic tracks.
func (t *Track) value(i int) []float32 {
	w := t.Path.Width()
	off := i * t.stride()
	if t.Interpolation == CubicSpline {
		off += w
	}
	return t.Values[off : off+w]
}

func (t *Track) inTangent(i int) []float32 {
	off := i * t.stride()
	return t.Values[off : off+t.Path.Width()]
}

func (t *Track) outTangent(i int) []float32 {
	w := t.Path.Width()
	off := i*t.stride() + 2*w
	return t.Values[off : off+w]
}

// Valid reports whether Values holds exactly one keyframe per time.
func (t *Track) Valid() bool {
	return len(t.Times) > 0 && len(t.Values) == len(t.Times)*t.stride()
}

// Sample returns the track's value at time. Times before the first keyframe
// clamp to it, just as times past the last clamp to the last.
func (t *Track) Sample(time float32) []float32 {
	out := make([]float32, t.Path.Width())
	t.sampleInto(out, time)
	return out
}

func (t *Track) sampleInto(out []float32, time float32) {
	last := len(t.Times) - 1
	if time <= t.Times[0] || last == 0 {
		copy(out, t.value(0))
		return
	}
	if time >= t.Times[last] {
		copy(out, t.value(last))
		return
	}

	// i is the last keyframe at or before time.
	i, found := slices.BinarySearch(t.Times, time)
	if !found {
		i--
	}
	if found || t.Interpolation == Step {
		copy(out, t.value(i))
		return
	}

	t0, t1 := t.Times[i], t.Times[i+1]
	dt := t1 - t0
	s := (time - t0) / dt

	switch {
	case t.Interpolation == CubicSpline:
		hermite(out, t.value(i), t.outTangent(i), t.value(i+1), t.inTangent(i+1), dt, s)
		if t.Path == Rotation {
			copy(out, quatSlice(sliceQuat(out).Normalize()))
		}
	case t.Path == Rotation:
		a, b := sliceQuat(t.value(i)), sliceQuat(t.value(i+1))
		if a.Dot(b) < 0 {
			b = b.Scale(-1)
		}
		copy(out, quatSlice(mgl32.QuatSlerp(a, b, s)))
	default:
		a, b := t.value(i), t.value(i+1)
		for k := range out {
			out[k] = a[k] + (b[k]-a[k])*s
		}
	}
}

// apply writes the sampled value into the target node.
func (t *Track) apply(scratch []float32, time float32) {
	if t.Target == nil {
		return
	}
	t.sampleInto(scratch, time)
	switch t.Path {
	case Translation:
		t.Target.Position = mgl32.Vec3{scratch[0], scratch[1], scratch[2]}
	case Rotation:
		t.Target.Quaternion = sliceQuat(scratch)
	case Scale:
		t.Target.Scale = mgl32.Vec3{scratch[0], scratch[1], scratch[2]}
	}
}

func hermite(out, p0, m0, p1, m1 []float32, dt, s float32) {
	s2 := s * s
	s3 := s2 * s
	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2
	for k := range out {
		out[k] = h00*p0[k] + h10*dt*m0[k] + h01*p1[k] + h11*dt*m1[k]
	}
}

func sliceQuat(v []float32) mgl32.Quat {
	return mgl32.Quat{W: v[3], V: mgl32.Vec3{v[0], v[1], v[2]}}
}

func quatSlice(q mgl32.Quat) []float32 {
	return []float32{q.V[0], q.V[1], q.V[2], q.W}
}
