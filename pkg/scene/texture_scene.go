package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// NewTextureScene creates a scene demonstrating texture mapping, normal
// mapping and a skybox
func NewTextureScene() *Scene {
	camera := renderer.NewCamera(
		core.NewVec3(0, 2, 8),
		core.NewVec3(0, 0.5, 0),
		core.NewVec3(0, 1, 0),
	)
	light := lights.NewLight(core.NewVec3(4, 6, 6), core.NewVec3(1, 1, 1), 1.3)

	// Create procedural textures
	textures := material.NewTextureSet()
	textures.Add("checker", material.NewCheckerboardTexture(256, 256, 32,
		core.NewVec3(0.9, 0.9, 0.9), // White
		core.NewVec3(0.2, 0.2, 0.8), // Blue
	))
	textures.Add("gradient", material.NewGradientTexture(256, 256,
		core.NewVec3(1.0, 0.2, 0.2), // Red (top)
		core.NewVec3(0.2, 1.0, 0.2), // Green (bottom)
	))
	textures.Add("uv", material.NewUVDebugTexture(256, 256))
	textures.Add("brick", material.NewCheckerboardTexture(512, 512, 16,
		core.NewVec3(0.7, 0.3, 0.1),  // Orange
		core.NewVec3(0.5, 0.2, 0.05), // Dark brown
	))
	textures.Add("ripples", material.NewRippleNormalMap(256, 256, 12, 0.6))

	// Sky faces fade from horizon haze to deep blue overhead
	horizon := core.NewVec3(0.85, 0.9, 1)
	zenith := core.NewVec3(0.2, 0.4, 0.9)
	ground := core.NewVec3(0.3, 0.28, 0.25)
	sideFace := material.NewGradientTexture(64, 64, zenith, horizon)
	for _, id := range []material.TextureID{"sky-right", "sky-left", "sky-back", "sky-front"} {
		textures.Add(id, sideFace)
	}
	textures.Add("sky-top", material.NewGradientTexture(64, 64, zenith, zenith))
	textures.Add("sky-bottom", material.NewGradientTexture(64, 64, ground, ground))

	skybox := lights.NewSkybox(lights.SkyboxFaces{
		Right:  "sky-right",
		Left:   "sky-left",
		Top:    "sky-top",
		Bottom: "sky-bottom",
		Back:   "sky-back",
		Front:  "sky-front",
	}, textures)
	skybox.Fallback = horizon

	s := &Scene{
		Name:        "textures",
		Camera:      camera,
		Light:       light,
		Textures:    textures,
		Environment: skybox,
		Config:      DefaultRenderConfig(),
	}

	// All shapes in a single row, left to right
	s.Add(
		geometry.NewSphere(core.NewVec3(-3, 0.5, 0), 1, material.NewMatte(core.NewVec3(1, 1, 1)).WithTexture("checker")),
		geometry.NewCube(core.NewVec3(-0.8, 0.3, 0), core.NewVec3(1.2, 1.2, 1.2), material.NewMatte(core.NewVec3(1, 1, 1)).WithTexture("uv")),
		geometry.NewSphere(core.NewVec3(1.2, 0.5, 0), 0.9, material.NewMaterial(core.NewVec3(0.9, 0.6, 0.2), [2]float32{0.8, 0.4}, 80, 0.1, 0, 1).WithNormalMap("ripples")),
		geometry.NewCube(core.NewVec3(3.3, 0.4, 0), core.NewVec3(1, 1.4, 1), material.NewMatte(core.NewVec3(1, 1, 1)).WithTexture("gradient")),
	)

	// Brick floor
	s.Add(geometry.NewCube(core.NewVec3(0, -0.6, 0), core.NewVec3(10, 0.4, 6), material.NewMatte(core.NewVec3(1, 1, 1)).WithTexture("brick")))

	return s
}
