package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float32             `json:"point"`
	Normal       [3]float32             `json:"normal"`
	Distance     float32                `json:"distance"`
	U            float32                `json:"u"`
	V            float32                `json:"v"`
	Color        string                 `json:"color"` // Traced pixel color as #rrggbb
	Properties   map[string]interface{} `json:"properties"`
}

// InspectResult contains the primary hit for a pixel
type InspectResult struct {
	Hit   geometry.Intersect
	Shape geometry.Shape
	Color core.Vec3
}

func vecArray(v core.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func hexColor(v core.Vec3) string {
	c := core.Vec3ToColor(v)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// inspectPixel casts the camera ray through a pixel and reports what it hits
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResult {
	camera := sceneObj.Camera
	direction := camera.RayDirection(pixelX, pixelY, width, height)

	tracer := renderer.NewTracer(sceneObj, sceneObj.Light, sceneObj.TraceConfig())
	hit, shape := tracer.ClosestHit(core.NewRay(camera.Eye, direction))

	return InspectResult{
		Hit:   hit,
		Shape: shape,
		Color: tracer.CastRay(camera.Eye, direction, 0),
	}
}

// materialInfo classifies a material and lists its coefficients
func materialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"diffuse":      vecArray(mat.Diffuse),
		"color":        hexColor(mat.Diffuse),
		"albedo":       mat.Albedo,
		"specular":     mat.Specular,
		"reflectivity": mat.Reflectivity,
		"transparency": mat.Transparency,
	}
	if mat.HasTexture() {
		properties["texture"] = string(mat.Texture)
	}
	if mat.HasNormalMap() {
		properties["normalMap"] = string(mat.NormalMap)
	}

	switch {
	case mat.IsEmissive():
		properties["emission"] = vecArray(mat.Emission)
		return "emissive", properties
	case mat.Transparency > 0:
		properties["refractiveIndex"] = mat.RefractiveIndex
		return "glass", properties
	case mat.Reflectivity > 0:
		return "mirror", properties
	default:
		return "matte", properties
	}
}

// geometryInfo extracts detailed geometry information
func geometryInfo(shape geometry.Shape, hit geometry.Intersect) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Cube:
		properties["center"] = vecArray(geom.Center)
		properties["size"] = vecArray(geom.Size)
		properties["face"] = faceFromNormal(hit.Normal).String()
		return "cube", properties

	default:
		return "unknown", properties
	}
}

// faceFromNormal returns the cube face whose outward normal best matches n
func faceFromNormal(n core.Vec3) geometry.Face {
	best := geometry.FaceFront
	bestDot := float32(-2)
	for face := geometry.FaceFront; face <= geometry.FaceBottom; face++ {
		if d := face.Normal().Dot(n); d > bestDot {
			best, bestDot = face, d
		}
	}
	return best
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req, err := s.parseRenderRequest(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(query.Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(query.Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	sceneObj, status, err := s.prepareScene(r.Context(), req)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	result := inspectPixel(sceneObj, req.Width, req.Height, pixelX, pixelY)
	if !result.Hit.IsIntersecting {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, Color: hexColor(result.Color)})
		return
	}

	materialType, materialProps := materialInfo(result.Hit.Material)
	geometryType, geometryProps := geometryInfo(result.Shape, result.Hit)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(result.Hit.Point),
		Normal:       vecArray(result.Hit.Normal),
		Distance:     result.Hit.Distance,
		U:            result.Hit.U,
		V:            result.Hit.V,
		Color:        hexColor(result.Color),
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
