package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// MinEmitterDistance is how close an emissive centroid may come to a shading
// point before its derived light is dropped.
const MinEmitterDistance = 1e-3

// FromEmissive converts an emissive shape into a point light at its centroid.
// The color is the normalized emission and the intensity its magnitude.
func FromEmissive(shape geometry.Shape) (Light, bool) {
	emission := shape.SurfaceMaterial().Emission
	intensity := emission.Length()
	if intensity == 0 {
		return Light{}, false
	}

	return Light{
		Position:  shape.Centroid(),
		Color:     emission.Divide(intensity),
		Intensity: intensity,
		Source:    shape,
	}, true
}

// ShadingLights returns the lights that illuminate point: the authored light
// followed by one derived light per emissive shape. Emitters whose centroid
// sits on top of point, and the shape being shaded, are skipped. The result
// is built per call and never cached.
func ShadingLights(authored Light, shapes []geometry.Shape, point core.Vec3, shaded geometry.Shape) []Light {
	result := make([]Light, 1, 1+len(shapes))
	result[0] = authored

	for _, shape := range shapes {
		if shape == shaded {
			continue
		}
		light, ok := FromEmissive(shape)
		if !ok {
			continue
		}
		if light.Position.Subtract(point).Length() < MinEmitterDistance {
			continue
		}
		result = append(result, light)
	}

	return result
}
