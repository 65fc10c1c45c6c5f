package renderer

import (
	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Reflect mirrors the incident direction about the normal
func Reflect(incident, normal core.Vec3) core.Vec3 {
	return incident.Subtract(normal.Multiply(2 * incident.Dot(normal)))
}

// Refract bends the incident direction through a surface with the given
// refractive index using Snell's law. Whether the ray is entering or leaving
// the medium is decided by the sign of incident·normal. Under total internal
// reflection the mirror direction is returned instead.
func Refract(incident, normal core.Vec3, refractiveIndex float32) core.Vec3 {
	if refractiveIndex <= 0 {
		refractiveIndex = 1
	}

	cosi := clamp(incident.Dot(normal), -1, 1)
	etai, etat := float32(1), refractiveIndex
	n := normal
	if cosi < 0 {
		cosi = -cosi
	} else {
		// Leaving the medium
		etai, etat = etat, etai
		n = normal.Negate()
	}

	eta := etai / etat
	k := 1 - eta*eta*(1-cosi*cosi)
	if k < 0 {
		return Reflect(incident, normal).Normalize()
	}

	return incident.Multiply(eta).Add(n.Multiply(eta*cosi - math32.Sqrt(k))).Normalize()
}
