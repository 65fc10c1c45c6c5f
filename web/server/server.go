package server

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/log"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Request limits
const (
	minSize  = 16
	maxSize  = 2000
	maxDepth = 16
)

// Server serves rendered frames of the built-in and file scenes over HTTP
type Server struct {
	port      int
	scenesDir string
	logger    log.Logger
	mux       *http.ServeMux
}

// NewServer creates a new web server. Scene files are listed from scenesDir.
func NewServer(port int, scenesDir string) *Server {
	s := &Server{
		port:      port,
		scenesDir: scenesDir,
		logger:    log.New("server"),
		mux:       http.NewServeMux(),
	}

	// Serve static files
	s.mux.Handle("/", http.FileServer(http.Dir("web/static/")))

	// API endpoints
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	s.mux.HandleFunc("/api/frame", s.handleFrame)
	s.mux.HandleFunc("/api/turntable", s.handleTurntable)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)

	return s
}

// Handler returns the server's request router
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Noticef("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string                  `json:"scene"`    // Scene id or scene file path
	Width    int                     `json:"width"`    // Image width
	Height   int                     `json:"height"`   // Image height
	MaxDepth int                     `json:"maxDepth"` // Recursion depth, 0 for the scene default
	Controls renderer.CameraControls `json:"controls"` // Applied to the scene's camera
}

// Stats represents render statistics
type Stats struct {
	TotalPixels int   `json:"totalPixels"`
	Workers     int   `json:"workers"`
	RaysCast    int64 `json:"raysCast"`
	ShadowRays  int64 `json:"shadowRays"`
	RenderMs    int64 `json:"renderMs"`
}

func toStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels: stats.TotalPixels,
		Workers:     stats.Workers,
		RaysCast:    stats.RaysCast,
		ShadowRays:  stats.ShadowRays,
		RenderMs:    stats.RenderTime.Milliseconds(),
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, status, err := s.createScene(r.Context(), sceneName)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	config := sceneObj.Config
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":    config.Width,
			"height":   config.Height,
			"maxDepth": sceneObj.TraceConfig().MaxDepth,
			"shapes":   len(sceneObj.Shapes),
			"emitters": sceneObj.EmitterCount(),
		},
		"limits": map[string]interface{}{
			"width":    map[string]int{"min": minSize, "max": maxSize},
			"height":   map[string]int{"min": minSize, "max": maxSize},
			"maxDepth": map[string]int{"min": 0, "max": maxDepth},
		},
	})
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 400, minSize, maxSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 300, minSize, maxSize); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "depth", 0, 0, maxDepth); err != nil {
		return nil, err
	}

	controls := &req.Controls
	for _, p := range []struct {
		key    string
		target *float32
		limit  float64
	}{
		{"yaw", &controls.Yaw, 100},
		{"pitch", &controls.Pitch, 100},
		{"zoom", &controls.Zoom, 1000},
		{"pan", &controls.Pan, 1000},
	} {
		value, err := parseFloatParam(values, p.key, 0, -p.limit, p.limit)
		if err != nil {
			return nil, err
		}
		*p.target = float32(value)
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene creates a scene by id. Scene files are only served when they
// are listed in the scenes directory. The returned status is meaningful only
// with a non-nil error.
func (s *Server) createScene(ctx context.Context, sceneName string) (*scene.Scene, int, error) {
	for _, info := range scene.ListScenes() {
		if info.ID == sceneName {
			sceneObj, err := scene.Create(ctx, sceneName)
			if err != nil {
				return nil, http.StatusInternalServerError, err
			}
			return sceneObj, http.StatusOK, nil
		}
	}

	files, err := scene.ListSceneFiles(s.scenesDir)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	for _, info := range files {
		if info.ID == sceneName {
			sceneObj, err := scene.Create(ctx, info.FilePath)
			if err != nil {
				return nil, http.StatusInternalServerError, err
			}
			return sceneObj, http.StatusOK, nil
		}
	}

	return nil, http.StatusNotFound, fmt.Errorf("unknown scene: %s", sceneName)
}

// prepareScene creates the requested scene and applies the camera controls
func (s *Server) prepareScene(ctx context.Context, req *RenderRequest) (*scene.Scene, int, error) {
	sceneObj, status, err := s.createScene(ctx, req.Scene)
	if err != nil {
		return nil, status, err
	}
	if req.MaxDepth > 0 {
		sceneObj.Config.MaxDepth = req.MaxDepth
	}
	sceneObj.Camera.ApplyControls(req.Controls)
	return sceneObj, http.StatusOK, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
