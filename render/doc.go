// Package render turns a scene graph into screen-space triangles.
//
// Nothing here touches a display: SceneContext and OrbitControls manage the
// camera, and Pipeline produces batches that a backend such as render/ebiten
// submits to the GPU.
package render
