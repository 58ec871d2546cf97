package render

import "github.com/plus3/orrery/scene"

// SceneContext bundles what every frame needs: the graph, the camera looking
// at it, the controls moving the camera and the surface size.
type SceneContext struct {
	Graph    *scene.Graph
	Camera   *scene.Camera
	Controls *OrbitControls

	width  int
	height int
}

// NewSceneContext returns a context for a width x height surface, with orbit
// controls attached to camera.
func NewSceneContext(graph *scene.Graph, camera *scene.Camera, width, height int) *SceneContext {
	s := &SceneContext{
		Graph:    graph,
		Camera:   camera,
		Controls: NewOrbitControls(camera),
	}
	s.Resize(width, height)
	return s
}

// Resize matches the camera aspect and surface size to width x height. Both
// are recomputed from the arguments alone, so repeated calls with the same
// size leave the same state. Non-positive sizes are ignored.
func (s *SceneContext) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
	s.Camera.Aspect = float32(width) / float32(height)
	s.Camera.UpdateProjection()
}

// Size returns the surface size set by the last Resize.
func (s *SceneContext) Size() (width, height int) {
	return s.width, s.height
}
