package renderer

import (
	"context"
	"runtime"
	"sync"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// RowTask represents one scanline for the worker pool
type RowTask struct {
	Ctx    context.Context
	Y      int
	Frame  *Frame       // Shared frame; each task writes only row Y
	Camera Camera       // Snapshot for the whole frame
	Light  lights.Light // Snapshot for the whole frame
	TaskID int
}

// RowResult contains the result from rendering a row
type RowResult struct {
	TaskID     int
	RaysCast   int64
	ShadowRays int64
	Error      error
}

// WorkerPool manages parallel scanline rendering
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual row rendering tasks
type Worker struct {
	ID          int
	scene       Scene
	config      TraceConfig
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// The queues hold a full frame of rows so submission never blocks.
func NewWorkerPool(scene Scene, config TraceConfig, height, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, height),
		resultQueue: make(chan RowResult, height),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			scene:       scene,
			config:      config,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Rows of an abandoned frame are skipped but still reported
		if err := task.Ctx.Err(); err != nil {
			w.resultQueue <- RowResult{TaskID: task.TaskID, Error: err}
			continue
		}

		tracer := NewTracer(w.scene, task.Light, w.config)
		renderRow(tracer, task.Camera, task.Frame, task.Y)

		w.resultQueue <- RowResult{
			TaskID:     task.TaskID,
			RaysCast:   tracer.RaysCast(),
			ShadowRays: tracer.ShadowRays(),
		}
	}
}

// renderRow traces every pixel of row y into the frame
func renderRow(tracer *Tracer, camera Camera, frame *Frame, y int) {
	row := frame.Row(y)
	for x := range row {
		direction := camera.RayDirection(x, y, frame.Width, frame.Height)
		row[x] = core.Vec3ToColor(tracer.CastRay(camera.Eye, direction, 0))
	}
}
