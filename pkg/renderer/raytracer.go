package renderer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// ErrClosed is returned by Render after Close
var ErrClosed = errors.New("raytracer closed")

// Raytracer renders frames of a scene at a fixed resolution using a
// persistent worker pool
type Raytracer struct {
	scene      Scene
	width      int
	height     int
	config     TraceConfig
	numWorkers int
	logger     core.Logger

	mu         sync.Mutex // Serializes frames
	workerPool *WorkerPool
	closed     bool
}

// NewRaytracer creates a new raytracer. numWorkers <= 0 uses one worker per CPU.
func NewRaytracer(scene Scene, width, height int, config TraceConfig, numWorkers int, logger core.Logger) (*Raytracer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Raytracer{
		scene:      scene,
		width:      width,
		height:     height,
		config:     config,
		numWorkers: numWorkers,
		logger:     logger,
	}, nil
}

// Width returns the frame width in pixels
func (rt *Raytracer) Width() int { return rt.width }

// Height returns the frame height in pixels
func (rt *Raytracer) Height() int { return rt.height }

// Render traces one frame. The camera and light are copied before any row is
// dispatched so later changes by the caller do not affect this frame. Render
// blocks until every row is done. If ctx is cancelled the remaining rows are
// skipped and ctx.Err() is returned; the partial frame must be discarded.
func (rt *Raytracer) Render(ctx context.Context, camera Camera, light lights.Light) (*Frame, RenderStats, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.closed {
		return nil, RenderStats{}, ErrClosed
	}

	// Start the pool on the first frame
	if rt.workerPool == nil {
		rt.workerPool = NewWorkerPool(rt.scene, rt.config, rt.height, rt.numWorkers)
		rt.workerPool.Start()
		rt.logger.Debugf("Started %d render workers", rt.workerPool.GetNumWorkers())
	}

	start := time.Now()
	frame := NewFrame(rt.width, rt.height)

	for y := 0; y < rt.height; y++ {
		rt.workerPool.SubmitTask(RowTask{
			Ctx:    ctx,
			Y:      y,
			Frame:  frame,
			Camera: camera,
			Light:  light,
			TaskID: y,
		})
	}

	stats := RenderStats{
		TotalPixels: rt.width * rt.height,
		Workers:     rt.workerPool.GetNumWorkers(),
	}

	// Every row reports back, even when skipped, so the pool is idle on return
	var renderErr error
	for i := 0; i < rt.height; i++ {
		result, ok := rt.workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			renderErr = result.Error
			continue
		}
		stats.add(result)
	}
	stats.RenderTime = time.Since(start)

	if renderErr != nil {
		rt.logger.Debugf("Frame abandoned after %d rows: %v", stats.Rows, renderErr)
		return frame, stats, renderErr
	}

	rt.logger.Debugf("Rendered %dx%d in %v (%d rays)", rt.width, rt.height, stats.RenderTime, stats.RaysCast)
	return frame, stats, nil
}

// TracePixel traces a single pixel on the calling goroutine
func (rt *Raytracer) TracePixel(camera Camera, light lights.Light, x, y int) core.Vec3 {
	tracer := NewTracer(rt.scene, light, rt.config)
	return tracer.CastRay(camera.Eye, camera.RayDirection(x, y, rt.width, rt.height), 0)
}

// Close stops the worker pool. It is safe to call more than once.
func (rt *Raytracer) Close() {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.closed {
		return
	}
	rt.closed = true
	if rt.workerPool != nil {
		rt.workerPool.Stop()
	}
}
