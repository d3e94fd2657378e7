package core

import "github.com/df07/go-accel-tracer/pkg/vecmath"

// Light is a point light source. PointLight (the only variant §3 names) is
// simply a Light with Color defaulted to white by the loader.
type Light struct {
	Position  Vec3
	Intensity float64
	Color     Vec3 // defaults to white (1,1,1)
}

// NewPointLight builds a white point light.
func NewPointLight(position Vec3, intensity float64) Light {
	return Light{Position: position, Intensity: intensity, Color: vecmath.NewVec3(1, 1, 1)}
}
