package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// NewDefaultScene creates the Whitted showcase: matte, mirror and glass
// spheres over a checkered floor, lit by a point light and a glowing cube
func NewDefaultScene() *Scene {
	camera := renderer.NewCamera(
		core.NewVec3(0, 0.5, 1),    // Slightly above the floor
		core.NewVec3(0, -0.5, -6),  // Look at the middle of the group
		core.NewVec3(0, 1, 0),
	)
	light := lights.NewLight(core.NewVec3(-3, 5, 0), core.NewVec3(1, 1, 1), 1.5)

	textures := material.NewTextureSet()
	textures.Add("checker", material.NewCheckerboardTexture(256, 256, 32,
		core.NewVec3(0.9, 0.9, 0.9), // White
		core.NewVec3(0.2, 0.2, 0.2), // Charcoal
	))

	// Create materials
	red := material.NewMatte(core.NewVec3(0.8, 0.15, 0.1))
	mirror := material.NewMirror(core.NewVec3(0.9, 0.9, 0.9))
	glass := material.NewGlass(1.5)
	floor := material.NewMaterial(core.NewVec3(1, 1, 1), [2]float32{0.9, 0.05}, 50, 0.1, 0, 1).WithTexture("checker")
	glow := material.NewLightMaterial(core.NewVec3(2, 1.6, 1))

	s := &Scene{
		Name:        "default",
		Camera:      camera,
		Light:       light,
		Textures:    textures,
		Environment: lights.NewProceduralSky(),
		Config:      DefaultRenderConfig(),
	}

	s.Add(
		geometry.NewCube(core.NewVec3(0, -1.75, -6), core.NewVec3(12, 0.5, 12), floor),
		geometry.NewSphere(core.NewVec3(-1.5, -0.75, -6), 0.75, red),
		geometry.NewSphere(core.NewVec3(1.5, -0.5, -7), 1, mirror),
		geometry.NewSphere(core.NewVec3(0, -1, -4.5), 0.5, glass),
		geometry.NewCube(core.NewVec3(-2.5, 1.5, -8), core.NewVec3(0.4, 0.4, 0.4), glow),
	)

	return s
}
