package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const maxTurntableFrames = 120

// FrameUpdate represents one turntable frame sent via SSE
type FrameUpdate struct {
	Index     int    `json:"index"`     // 0-based frame number
	Total     int    `json:"total"`     // Frames in the turntable
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "frame", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// newRaytracer creates a raytracer sized by the request for the prepared scene
func newRaytracer(sceneObj *scene.Scene, req *RenderRequest, logger core.Logger) (*renderer.Raytracer, error) {
	return renderer.NewRaytracer(sceneObj, req.Width, req.Height, sceneObj.TraceConfig(), sceneObj.Config.Workers, logger)
}

// handleFrame renders a single frame and returns it as a PNG
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	sceneObj, status, err := s.prepareScene(r.Context(), req)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	rt, err := newRaytracer(sceneObj, req, nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer rt.Close()

	frame, stats, err := rt.Render(r.Context(), sceneObj.Camera, sceneObj.Light)
	if err != nil {
		s.logger.Warningf("Frame render of %s abandoned: %v", req.Scene, err)
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	s.logger.Infof("Rendered %s at %dx%d in %v", req.Scene, req.Width, req.Height, stats.RenderTime)

	var buf bytes.Buffer
	if err := png.Encode(&buf, frame.Image()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.RenderTime.Milliseconds(), 10))
	w.Header().Set("X-Rays-Cast", strconv.FormatInt(stats.RaysCast, 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleTurntable orbits the camera around the scene and streams every frame
// via SSE
func (s *Server) handleTurntable(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req, err := s.parseRenderRequest(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	frames, err := parseIntParam(query, "frames", 12, 1, maxTurntableFrames)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	s.setSSEHeaders(w)
	ctx := r.Context()

	// Single writer goroutine; the handler waits for it before returning
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(ctx, w, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()
	// Console streaming must stop before the event channel closes
	defer func() {
		close(consoleChan)
		<-consoleDone
	}()

	sceneObj, _, err := s.prepareScene(ctx, req)
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", err.Error())
		return
	}

	rt, err := newRaytracer(sceneObj, req, webLogger)
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", err.Error())
		return
	}
	defer rt.Close()

	webLogger.Infof("Turntable of %s: %d frames at %dx%d", sceneObj.Name, frames, req.Width, req.Height)

	step := 2 * math32.Pi / float32(frames)
	camera := sceneObj.Camera
	start := time.Now()
	for i := 0; i < frames; i++ {
		frame, stats, err := rt.Render(ctx, camera, sceneObj.Light)
		if err != nil {
			if ctx.Err() == nil {
				s.sendEvent(ctx, sseEventChan, "error", fmt.Sprintf("Rendering failed: %v", err))
			}
			return
		}

		imageData, err := imageToBase64PNG(frame.Image())
		if err != nil {
			s.sendEvent(ctx, sseEventChan, "error", err.Error())
			return
		}

		data, err := json.Marshal(FrameUpdate{
			Index:     i,
			Total:     frames,
			ImageData: imageData,
			Stats:     toStats(stats),
		})
		if err != nil {
			s.sendEvent(ctx, sseEventChan, "error", err.Error())
			return
		}
		s.sendEvent(ctx, sseEventChan, "frame", string(data))

		camera.Orbit(step, 0)
	}

	webLogger.Infof("Turntable complete in %v", time.Since(start).Round(time.Millisecond))
	s.sendEvent(ctx, sseEventChan, "complete", "Rendering completed")
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	return consoleChan, NewWebLogger(renderID, consoleChan)
}

// sendEvent queues an event for the writer, giving up if the client is gone
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan<- SSEEvent, eventType, data string) {
	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: data}:
	case <-ctx.Done():
	}
}

// writeSSEEvents handles writing all SSE events in a single goroutine
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	flusher, _ := w.(http.Flusher)
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}
			if ctx.Err() != nil {
				// Client disconnected; drain so senders never block
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				continue
			}
			if flusher != nil {
				flusher.Flush()
			}
		case <-ctx.Done():
			// Keep draining until the handler closes the channel
			for range sseEventChan {
			}
			return
		}
	}
}

// streamConsoleMessages forwards console messages as SSE events until
// consoleChan is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			s.logger.Errorf("Error marshaling console message: %v", err)
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		default:
			// Channel full, skip message to avoid blocking
		}
	}
}

// imageToBase64PNG converts an image to a base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
