// Package orrery builds a star system from a table of body descriptors and
// animates it with ECS systems.
//
// Every orbiting body is a textured sphere parented to an empty pivot at the
// origin. Spinning the sphere turns the body; spinning the pivot carries the
// sphere around a circle. Rates are fixed per call, so motion speed follows
// the frame rate. An optional animated model hangs off the central body and
// plays back in wall-clock time.
package orrery
