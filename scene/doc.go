// Package scene is the render graph the orrery draws: a tree of nodes with
// local transforms, the meshes and materials hanging off them, the lights that
// shade them and the perspective camera that views them.
//
// The graph carries no drawing code. The render package walks it each frame.
package scene
