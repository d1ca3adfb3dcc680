package engine

import (
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-pixels/engine/profiler"
	"github.com/Carmen-Shannon/oxy-pixels/engine/renderer"
	"github.com/Carmen-Shannon/oxy-pixels/engine/scene"
	"github.com/Carmen-Shannon/oxy-pixels/engine/window"
)

// engine implements the Engine interface.
// Coordinates engine, render, and window threads.
type engine struct {
	wg sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)
	resizeCallback func(width, height int)

	mu     *sync.RWMutex
	scenes map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It orchestrates the engine loop, render loop, and window management.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickCallback registers the function called each engine tick.
	// Use this for game logic, physics, input processing, and animation updates.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called each render frame, before scenes flush their
	// dirty state to the GPU. Use this for per-frame uniform and geometry updates.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetResizeCallback registers a function called after the engine has resized every scene's
	// renderer and camera.
	//
	// Parameters:
	//   - callback: function receiving the new framebuffer width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Run starts the main engine loop (blocks until window closes).
	Run()

	// Quit signals all engine goroutines to stop and shuts down the engine.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Initializes message channels and profiler with sensible defaults.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel:    make(chan struct{}),
		mu:             &sync.RWMutex{},
		scenes:         make(map[int]scene.Scene),
		profiler:       profiler.NewProfiler(),
		engineTickRate: time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			if width <= 0 || height <= 0 {
				return
			}
			for _, s := range e.Scenes() {
				if s == nil {
					continue
				}
				if r := s.Renderer(); r != nil {
					r.Resize(width, height)
				}
				if c := s.Camera(); c != nil {
					c.SetAspect(float32(width) / float32(height))
				}
			}
			if e.resizeCallback != nil {
				e.resizeCallback(width, height)
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	e.handle()
	e.window.ProcessMessages()
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// handle launches the engine, render, and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(3)
	go e.handleEngine()
	go e.handleRender()
	go e.handleQuit()
}

// handleEngine runs the fixed-rate engine tick loop in its own goroutine.
// Fires the tick callback at the configured tick rate until the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
		}
	}
}

// handleRender runs the uncapped (or frame-limited) render loop in its own goroutine.
// Each frame runs the render callback, flushes every active scene's dirty state in one upload per
// scene, then encodes all draw calls into a single render pass.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	// Recover from panics inside the render goroutine to avoid crashing the whole process.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] render goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			if e.renderCallback != nil {
				e.renderCallback(dt)
			}

			activeScenes := e.activeScenes()
			var frameRenderer renderer.Renderer
			if len(activeScenes) > 0 {
				// Use the first active scene's renderer to manage the frame
				frameRenderer = activeScenes[0].Renderer()
			}
			if frameRenderer != nil {
				for _, s := range activeScenes {
					s.Camera().Update()
					s.Flush()
				}

				// All scenes sharing the renderer are drawn within a single render pass.
				if err := frameRenderer.BeginFrame(); err == nil {
					for _, s := range activeScenes {
						if err := s.DrawCalls(); err != nil {
							log.Printf("[Engine] scene %q: %v", s.Name(), err)
						}
					}
					frameRenderer.EndFrame()
					frameRenderer.Present()
				}
			}

			if e.profilingEnabled.Load() && e.profiler != nil {
				var uploaded uint64
				if frameRenderer != nil {
					uploaded = frameRenderer.UploadedBytes()
				}
				e.profiler.Tick(uploaded)
			}

			// Frame rate limiting
			if e.renderFrameLimit > 0 {
				elapsed := time.Since(lastRender)
				if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// activeScenes returns the active scenes in ascending z-index order.
func (e *engine) activeScenes() []scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()

	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	var active []scene.Scene
	for _, k := range keys {
		if s := e.scenes[k]; s != nil && s.Active() {
			active = append(active, s)
		}
	}
	return active
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetResizeCallback registers the function called after a resize has been applied to every scene.
func (e *engine) SetResizeCallback(callback func(width, height int)) {
	e.resizeCallback = callback
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}

// framePeriod converts a rate in frames per second into the duration of one frame. fps must be > 0.
func framePeriod(fps float64) time.Duration {
	return time.Duration(float64(time.Second) / fps)
}
