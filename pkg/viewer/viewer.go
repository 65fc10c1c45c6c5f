// Package viewer displays a scene in a window and re-renders it as the
// camera is moved with the keyboard.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/log"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Per-tick camera speeds
const (
	orbitSpeed float32 = 0.03
	zoomSpeed  float32 = 0.1
	panSpeed   float32 = 0.05
)

var logger = log.New("viewer")

// Options configure a viewer window
type Options struct {
	Width   int
	Height  int
	Workers int    // 0 for one per CPU
	Watch   string // Scene file to reload on change, empty to disable
	Title   string
}

// Viewer implements ebiten.Game. Each Draw renders one full frame, so frame
// N+1 is never started before frame N is on screen.
type Viewer struct {
	opts      Options
	scene     *scene.Scene
	camera    renderer.Camera
	raytracer *renderer.Raytracer
	canvas    *ebiten.Image
	watcher   *loaders.FileWatcher

	dirty     bool
	lastFrame time.Duration
	lastStats renderer.RenderStats
}

// New creates a viewer for s
func New(s *scene.Scene, opts Options) (*Viewer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = s.Config.Width, s.Config.Height
	}
	if opts.Title == "" {
		opts.Title = "Whitted Raytracer - " + s.Name
	}

	v := &Viewer{
		opts:   opts,
		canvas: ebiten.NewImage(opts.Width, opts.Height),
	}
	if err := v.setScene(s); err != nil {
		return nil, err
	}

	if opts.Watch != "" {
		watcher, err := loaders.WatchFile(opts.Watch, logger)
		if err != nil {
			v.raytracer.Close()
			return nil, err
		}
		v.watcher = watcher
		logger.Noticef("Watching %s for changes", opts.Watch)
	}

	return v, nil
}

// Run opens the window and blocks until it is closed
func (v *Viewer) Run() error {
	defer v.Close()

	ebiten.SetWindowSize(v.opts.Width, v.opts.Height)
	ebiten.SetWindowTitle(v.opts.Title)

	err := ebiten.RunGame(v)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Close releases the render workers and the file watcher
func (v *Viewer) Close() {
	if v.watcher != nil {
		v.watcher.Close()
		v.watcher = nil
	}
	if v.raytracer != nil {
		v.raytracer.Close()
	}
}

// setScene swaps in a new scene and resets the camera
func (v *Viewer) setScene(s *scene.Scene) error {
	rt, err := renderer.NewRaytracer(s, v.opts.Width, v.opts.Height, s.TraceConfig(), v.opts.Workers, logger)
	if err != nil {
		return err
	}
	if v.raytracer != nil {
		v.raytracer.Close()
	}
	v.scene = s
	v.camera = s.Camera
	v.raytracer = rt
	v.dirty = true
	return nil
}

// Update implements ebiten.Game
func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.camera = v.scene.Camera
		v.dirty = true
	}

	if controls := readControls(ebiten.IsKeyPressed); !controls.IsZero() {
		v.camera.ApplyControls(controls)
		v.dirty = true
	}

	if v.watcher != nil {
		select {
		case <-v.watcher.Changes():
			v.reload()
		default:
		}
	}
	return nil
}

// reload re-reads the watched scene file, keeping the current scene on error
func (v *Viewer) reload() {
	s, err := scene.NewFileScene(context.Background(), v.opts.Watch)
	if err != nil {
		logger.Warningf("Reload of %s failed: %v", v.opts.Watch, err)
		return
	}
	camera := v.camera
	if err := v.setScene(s); err != nil {
		logger.Warningf("Reload of %s failed: %v", v.opts.Watch, err)
		return
	}
	// Edits to the scene should not reset where the user is looking
	v.camera = camera
	logger.Infof("Reloaded %s", v.opts.Watch)
}

// readControls maps held keys to one tick of camera movement
func readControls(pressed func(ebiten.Key) bool) renderer.CameraControls {
	var c renderer.CameraControls
	if pressed(ebiten.KeyArrowLeft) {
		c.Yaw -= orbitSpeed
	}
	if pressed(ebiten.KeyArrowRight) {
		c.Yaw += orbitSpeed
	}
	if pressed(ebiten.KeyArrowUp) {
		c.Pitch += orbitSpeed
	}
	if pressed(ebiten.KeyArrowDown) {
		c.Pitch -= orbitSpeed
	}
	if pressed(ebiten.KeyW) {
		c.Zoom += zoomSpeed
	}
	if pressed(ebiten.KeyS) {
		c.Zoom -= zoomSpeed
	}
	if pressed(ebiten.KeyE) {
		c.Pan += panSpeed
	}
	if pressed(ebiten.KeyQ) {
		c.Pan -= panSpeed
	}
	return c
}

// Draw implements ebiten.Game
func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.dirty {
		start := time.Now()
		frame, stats, err := v.raytracer.Render(context.Background(), v.camera, v.scene.Light)
		if err != nil {
			logger.Errorf("Render failed: %v", err)
		} else {
			v.canvas.WritePixels(frame.Bytes())
			v.lastFrame = time.Since(start)
			v.lastStats = stats
			v.dirty = false
		}
	}

	screen.DrawImage(v.canvas, nil)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.1f  frame: %v  rays: %d\narrows orbit, W/S zoom, Q/E pan, R reset",
		ebiten.ActualFPS(), v.lastFrame.Round(time.Millisecond), v.lastStats.RaysCast))
}

// Layout implements ebiten.Game
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.opts.Width, v.opts.Height
}
