package render

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/orrery/scene"
)

// PointerState is one frame's sample of the pointing device.
type PointerState struct {
	X, Y  float32 // cursor in pixels
	Left  bool    // orbit while held
	Right bool    // pan while held
	// WheelY is the vertical scroll this frame, positive away from the user.
	WheelY float32
}

const polarEpsilon = 1e-6

// OrbitControls swings a camera around Target. Left drag orbits, the wheel
// dollies and right drag pans. Input accumulates deltas; Update applies them.
type OrbitControls struct {
	Camera *scene.Camera
	Target mgl32.Vec3

	Enabled     bool
	RotateSpeed float32
	ZoomSpeed   float32
	PanSpeed    float32
	MinDistance float32
	MaxDistance float32

	EnableDamping bool
	DampingFactor float32

	deltaTheta float32
	deltaPhi   float32
	scale      float32
	panOffset  mgl32.Vec3

	last     PointerState
	havePrev bool
}

// NewOrbitControls returns controls targeting the origin with damping off.
func NewOrbitControls(camera *scene.Camera) *OrbitControls {
	return &OrbitControls{
		Camera:        camera,
		Enabled:       true,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		PanSpeed:      1,
		MaxDistance:   math32.Inf(1),
		DampingFactor: 0.05,
		scale:         1,
	}
}

// HandlePointer turns the change since the previous sample into orbit, pan
// and dolly deltas. viewHeight is the surface height in pixels.
func (c *OrbitControls) HandlePointer(p PointerState, viewHeight int) {
	defer func() {
		c.last = p
		c.havePrev = true
	}()
	if !c.Enabled || viewHeight <= 0 {
		return
	}

	h := float32(viewHeight)
	if c.havePrev {
		dx, dy := p.X-c.last.X, p.Y-c.last.Y
		switch {
		case p.Left && c.last.Left:
			c.RotateLeft(2 * math32.Pi * dx * c.RotateSpeed / h)
			c.RotateUp(2 * math32.Pi * dy * c.RotateSpeed / h)
		case p.Right && c.last.Right:
			c.Pan(dx*c.PanSpeed, dy*c.PanSpeed, viewHeight)
		}
	}

	switch {
	case p.WheelY > 0:
		c.DollyIn(c.zoomScale())
	case p.WheelY < 0:
		c.DollyOut(c.zoomScale())
	}
}

func (c *OrbitControls) zoomScale() float32 {
	return math32.Pow(0.95, c.ZoomSpeed)
}

// RotateLeft swings the camera around the up axis by angle radians.
func (c *OrbitControls) RotateLeft(angle float32) {
	c.deltaTheta -= angle
}

// RotateUp tilts the camera toward the pole by angle radians.
func (c *OrbitControls) RotateUp(angle float32) {
	c.deltaPhi -= angle
}

// DollyIn moves the camera toward the target by factor (< 1).
func (c *OrbitControls) DollyIn(factor float32) {
	c.scale *= factor
}

// DollyOut moves the camera away from the target by 1/factor.
func (c *OrbitControls) DollyOut(factor float32) {
	c.scale /= factor
}

// Pan slides camera and target across the view plane by a pixel offset, so
// the point under the cursor stays under it.
func (c *OrbitControls) Pan(dx, dy float32, viewHeight int) {
	offset := c.Camera.Position.Sub(c.Target)
	distance := offset.Len() * math32.Tan(mgl32.DegToRad(c.Camera.Fov)/2)
	right, up := c.cameraAxes()

	h := float32(viewHeight)
	c.panOffset = c.panOffset.
		Add(right.Mul(-2 * dx * distance / h)).
		Add(up.Mul(2 * dy * distance / h))
}

// cameraAxes returns the camera's right and up vectors in world space.
func (c *OrbitControls) cameraAxes() (right, up mgl32.Vec3) {
	back := c.Camera.Position.Sub(c.Target)
	if back.Len() == 0 {
		return mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}
	}
	back = back.Normalize()
	right = c.Camera.Up.Cross(back)
	if right.Len() == 0 {
		right = mgl32.Vec3{1, 0, 0}
	}
	right = right.Normalize()
	return right, back.Cross(right)
}

// Spherical returns the camera offset from Target as radius, azimuth theta
// from +Z toward +X and polar angle phi from +Y.
func (c *OrbitControls) Spherical() (radius, theta, phi float32) {
	offset := c.Camera.Position.Sub(c.Target)
	radius = offset.Len()
	if radius == 0 {
		return 0, 0, 0
	}
	theta = math32.Atan2(offset.X(), offset.Z())
	phi = math32.Acos(mgl32.Clamp(offset.Y()/radius, -1, 1))
	return radius, theta, phi
}

// Update applies pending deltas and aims the camera at Target. With damping
// enabled only a DampingFactor share of each delta is applied per call and
// the rest decays. It reports whether the camera moved.
func (c *OrbitControls) Update() bool {
	before := c.Camera.Position
	beforeTarget := c.Target

	radius, theta, phi := c.Spherical()

	if c.EnableDamping {
		theta += c.deltaTheta * c.DampingFactor
		phi += c.deltaPhi * c.DampingFactor
	} else {
		theta += c.deltaTheta
		phi += c.deltaPhi
	}
	phi = mgl32.Clamp(phi, polarEpsilon, math32.Pi-polarEpsilon)

	radius *= c.scale
	radius = mgl32.Clamp(radius, c.MinDistance, c.MaxDistance)

	if c.EnableDamping {
		c.Target = c.Target.Add(c.panOffset.Mul(c.DampingFactor))
	} else {
		c.Target = c.Target.Add(c.panOffset)
	}

	sinPhi := math32.Sin(phi)
	offset := mgl32.Vec3{
		radius * sinPhi * math32.Sin(theta),
		radius * math32.Cos(phi),
		radius * sinPhi * math32.Cos(theta),
	}
	c.Camera.Position = c.Target.Add(offset)
	c.Camera.LookAt(c.Target)

	if c.EnableDamping {
		keep := 1 - c.DampingFactor
		c.deltaTheta *= keep
		c.deltaPhi *= keep
		c.panOffset = c.panOffset.Mul(keep)
	} else {
		c.deltaTheta, c.deltaPhi = 0, 0
		c.panOffset = mgl32.Vec3{}
	}
	c.scale = 1

	const moved = 1e-6
	return c.Camera.Position.Sub(before).Len() > moved || c.Target.Sub(beforeTarget).Len() > moved
}
