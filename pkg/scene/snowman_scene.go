package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// NewSnowmanScene creates a snowman with coal eyes, mouth and a carrot nose
// against a night sky
func NewSnowmanScene() *Scene {
	camera := renderer.NewCamera(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, -1),
		core.NewVec3(0, 1, 0),
	)
	light := lights.NewLight(core.NewVec3(-2, 3, 0), core.NewVec3(1, 1, 1), 1.2)

	snow := material.NewMaterial(core.NewVec3(240, 240, 240).Divide(255), [2]float32{0.9, 0.15}, 20, 0, 0, 1)
	coal := material.NewMaterial(core.NewVec3(0, 0, 0), [2]float32{0.9, 0.4}, 60, 0, 0, 1)
	carrot := material.NewMatte(core.NewVec3(255, 161, 0).Divide(255))

	s := &Scene{
		Name:        "snowman",
		Camera:      camera,
		Light:       light,
		Textures:    material.NewTextureSet(),
		Environment: lights.NewNightBackground(),
		Config:      RenderConfig{Width: 1300, Height: 900, MaxDepth: 3},
	}

	// Body, bottom to top
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1.5, -7), 1.5, snow),
		geometry.NewSphere(core.NewVec3(0, 0, -7), 1, snow),
		geometry.NewSphere(core.NewVec3(0, 1.2, -7), 0.7, snow),
	)

	// Eyes and nose
	s.Add(
		geometry.NewSphere(core.NewVec3(-0.25, 1.4, -6.25), 0.1, coal),
		geometry.NewSphere(core.NewVec3(0.25, 1.4, -6.25), 0.1, coal),
		geometry.NewSphere(core.NewVec3(0, 1.15, -6.2), 0.15, carrot),
	)

	// Smile
	for _, p := range []core.Vec3{
		core.NewVec3(-0.4, 0.95, -6.25),
		core.NewVec3(-0.2, 0.85, -6.25),
		core.NewVec3(0, 0.8, -6.25),
		core.NewVec3(0.2, 0.85, -6.25),
		core.NewVec3(0.4, 0.95, -6.25),
	} {
		s.Add(geometry.NewSphere(p, 0.07, coal))
	}

	return s
}
