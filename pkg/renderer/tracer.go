package renderer

import (
	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// TraceConfig contains the tracing parameters
type TraceConfig struct {
	MaxDepth          int     // Recursion depth past which the environment is returned
	ShadowBias        float32 // Offset of shadow ray origins along the normal
	SecondaryBias     float32 // Offset of reflection and refraction origins along the normal
	ShadowAttenuation float32 // Light blocked at an occluded point, in [0, 1]
}

// DefaultTraceConfig returns the standard Whitted parameters
func DefaultTraceConfig() TraceConfig {
	return TraceConfig{
		MaxDepth:          3,
		ShadowBias:        1e-4,
		SecondaryBias:     1e-3,
		ShadowAttenuation: 0.7,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetShapes() []geometry.Shape
	GetTextures() material.Textures
	GetEnvironment() lights.Environment
}

// Tracer evaluates primary and secondary rays against a scene for one light
// snapshot. A Tracer is not safe for concurrent use; each worker owns one.
type Tracer struct {
	shapes      []geometry.Shape
	textures    material.Textures
	environment lights.Environment
	light       lights.Light
	config      TraceConfig

	raysCast   int64
	shadowRays int64
}

// NewTracer creates a tracer for the scene lit by light
func NewTracer(scene Scene, light lights.Light, config TraceConfig) *Tracer {
	textures := scene.GetTextures()
	if textures == nil {
		textures = material.NewTextureSet()
	}
	environment := scene.GetEnvironment()
	if environment == nil {
		environment = lights.NewNightBackground()
	}

	return &Tracer{
		shapes:      scene.GetShapes(),
		textures:    textures,
		environment: environment,
		light:       light,
		config:      config,
	}
}

// RaysCast returns the number of CastRay calls made so far
func (t *Tracer) RaysCast() int64 { return t.raysCast }

// ShadowRays returns the number of shadow rays tested so far
func (t *Tracer) ShadowRays() int64 { return t.shadowRays }

// CastRay returns the color seen along a ray. Once depth exceeds MaxDepth the
// environment is returned without further recursion. The result is not clamped.
func (t *Tracer) CastRay(origin, direction core.Vec3, depth int) core.Vec3 {
	t.raysCast++

	if depth > t.config.MaxDepth {
		return t.environment.Sample(direction)
	}

	hit, shape := t.ClosestHit(core.NewRay(origin, direction))
	if !hit.IsIntersecting {
		return t.environment.Sample(direction)
	}

	return t.shade(origin, direction, hit, shape, depth)
}

// ClosestHit scans every shape and returns the nearest intersection with the
// shape that produced it. The shape is nil on a miss.
func (t *Tracer) ClosestHit(ray core.Ray) (geometry.Intersect, geometry.Shape) {
	closest := geometry.EmptyIntersect()
	var closestShape geometry.Shape

	for _, shape := range t.shapes {
		hit := shape.Intersect(ray)
		if hit.IsIntersecting && (!closest.IsIntersecting || hit.Distance < closest.Distance) {
			closest = hit
			closestShape = shape
		}
	}

	return closest, closestShape
}

func (t *Tracer) shade(origin, direction core.Vec3, hit geometry.Intersect, shape geometry.Shape, depth int) core.Vec3 {
	mat := hit.Material

	normal := hit.Normal
	if mat.HasNormalMap() {
		if sample, ok := t.textures.NormalLookup(mat.NormalMap, hit.U, hit.V); ok {
			normal = perturbNormal(normal, sample)
		}
	}
	hit.Normal = normal

	viewDir := origin.Subtract(hit.Point).Normalize()

	var diffuseIntensity float32
	var specular core.Vec3
	for _, light := range lights.ShadingLights(t.light, t.shapes, hit.Point, shape) {
		lightDir := light.DirectionFrom(hit.Point)
		lit := light.Intensity * (1 - t.CastShadow(hit, light))

		diffuseIntensity += max(0, normal.Dot(lightDir)) * lit

		// A zero exponent would light every point, even facing away
		if mat.Specular > 0 {
			reflected := Reflect(lightDir.Negate(), normal)
			highlight := math32.Pow(max(0, viewDir.Dot(reflected)), mat.Specular)
			specular = specular.Add(light.Color.Multiply(highlight * lit))
		}
	}

	diffuseColor := mat.Diffuse
	if mat.HasTexture() {
		if texel, ok := t.textures.Lookup(mat.Texture, hit.U, hit.V); ok {
			diffuseColor = texel
		}
	}

	var reflectColor, refractColor core.Vec3
	if mat.Reflectivity > 0 {
		reflectDir := Reflect(direction, normal).Normalize()
		reflectColor = t.CastRay(t.offset(hit.Point, reflectDir, normal), reflectDir, depth+1)
	}
	if mat.Transparency > 0 {
		refractDir := Refract(direction, normal, mat.RefractiveIndex)
		refractColor = t.CastRay(t.offset(hit.Point, refractDir, normal), refractDir, depth+1)
	}

	return diffuseColor.Multiply(diffuseIntensity * mat.Albedo[0]).
		Add(specular.Multiply(mat.Albedo[1])).
		Add(reflectColor.Multiply(mat.Reflectivity)).
		Add(refractColor.Multiply(mat.Transparency)).
		Add(mat.Emission)
}

// offset moves a secondary ray origin off the surface, onto the side the ray
// leaves towards
func (t *Tracer) offset(point, direction, normal core.Vec3) core.Vec3 {
	bias := normal.Multiply(t.config.SecondaryBias)
	if direction.Dot(normal) < 0 {
		return point.Subtract(bias)
	}
	return point.Add(bias)
}

// CastShadow returns 0 when the light is visible from the hit point and
// ShadowAttenuation when any shape lies between them. A derived light is
// never occluded by its own emitting shape.
func (t *Tracer) CastShadow(hit geometry.Intersect, light lights.Light) float32 {
	t.shadowRays++

	lightDir := light.DirectionFrom(hit.Point)
	bias := hit.Normal.Multiply(t.config.ShadowBias)
	origin := hit.Point.Add(bias)
	if lightDir.Dot(hit.Normal) < 0 {
		origin = hit.Point.Subtract(bias)
	}
	lightDistance := light.DistanceFrom(origin)

	ray := core.NewRay(origin, lightDir)
	for _, shape := range t.shapes {
		if light.Source != nil && shape == light.Source {
			continue
		}
		occluder := shape.Intersect(ray)
		if occluder.IsIntersecting && occluder.Distance < lightDistance {
			return t.config.ShadowAttenuation
		}
	}

	return 0
}

// perturbNormal rotates a tangent-space normal map sample into world space
// around the geometric normal n
func perturbNormal(n, sample core.Vec3) core.Vec3 {
	tangent := core.NewVec3(n.Y, -n.X, 0).Normalize()
	if tangent.IsZero() {
		tangent = core.NewVec3(0, n.Z, -n.Y).Normalize()
	}
	bitangent := n.Cross(tangent)

	perturbed := tangent.Multiply(sample.X).
		Add(bitangent.Multiply(sample.Y)).
		Add(n.Multiply(sample.Z)).
		Normalize()
	if perturbed.IsZero() || !perturbed.IsFinite() {
		return n
	}
	return perturbed
}
