package main

import (
	"flag"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-pixels/common"
	"github.com/Carmen-Shannon/oxy-pixels/engine"
	"github.com/Carmen-Shannon/oxy-pixels/engine/camera"
	"github.com/Carmen-Shannon/oxy-pixels/engine/config"
	"github.com/Carmen-Shannon/oxy-pixels/engine/grid"
	"github.com/Carmen-Shannon/oxy-pixels/engine/loader"
	"github.com/Carmen-Shannon/oxy-pixels/engine/palette"
	"github.com/Carmen-Shannon/oxy-pixels/engine/pixel_field"
	"github.com/Carmen-Shannon/oxy-pixels/engine/renderer"
	"github.com/Carmen-Shannon/oxy-pixels/engine/scene"
	"github.com/Carmen-Shannon/oxy-pixels/engine/window"
)

// demoGridKey is the loader cache key of the built-in pattern used when no grid or image is given.
const demoGridKey = "<demo>"

// defaultPalette is used when no palette file is given. Index 0 is the background.
var defaultPalette = []string{
	"#f4f1ea", "#1b1b1b", "#c0392b", "#e67e22", "#f1c40f", "#27ae60", "#16a085", "#2980b9",
	"#8e44ad", "#7f8c8d", "#d35400", "#2c3e50", "#e84393", "#00cec9", "#6c5ce7", "#fdcb6e",
}

func main() {
	configPath := flag.String("config", "", "TOML configuration file")
	gridPath := flag.String("grid", "", "grid text file, one hex digit per cell")
	imagePath := flag.String("image", "", "raster image (png, jpeg, bmp, webp) quantized to the palette")
	palettePath := flag.String("palette", "", "palette YAML file (colors: [...])")
	profile := flag.Bool("profile", false, "log frame rate, memory and upload statistics")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("[Main] %v", err)
		}
	}

	pal, g, err := loadSource(*gridPath, *imagePath, *palettePath)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}
	log.Printf("[Main] grid %dx%d, %d colors", g.Rows(), g.Cols(), pal.Len())

	// ── Window + Renderer ───────────────────────────────────────────────
	win := window.NewWindow(cfg.WindowOptions()...)

	background, err := pal.ColorOf(palette.BackgroundIndex)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}
	r, err := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win,
		append(cfg.RendererOptions(), renderer.WithClearColor(background))...,
	)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}
	defer r.Release()

	pipelineKey := pixel_field.DefaultPipelineKey
	pl, err := pixel_field.NewPixelPipeline(pipelineKey)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}
	if err := r.RegisterPipelines(pl); err != nil {
		log.Fatalf("[Main] %v", err)
	}

	// ── Camera ──────────────────────────────────────────────────────────
	ctrl := camera.NewCameraController(cfg.ControllerOptions()...)
	cam := camera.NewCamera(append(cfg.CameraOptions(), camera.WithController(ctrl))...)

	// ── Field + Scene ───────────────────────────────────────────────────
	start := time.Now()
	f, err := pixel_field.NewField(g, pal, cam,
		append(cfg.FieldOptions(), pixel_field.WithPipelineKey(pipelineKey))...)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}

	vertexShader, _, err := pixel_field.NewPixelShaders(pipelineKey)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}
	// A frame writes at most one material and one position buffer per drawn batch, plus the camera.
	sc := scene.NewScene("pixels", cam, r, vertexShader,
		scene.WithActive(true),
		scene.WithWriteCapacity(2*f.Stats().NonEmpty+1),
	)
	if err := f.AddPixelsToScene(sc); err != nil {
		log.Fatalf("[Main] %v", err)
	}
	st := f.Stats()
	log.Printf("[Field] %d batches (%d drawn), %d quads, %d vertices, built in %v",
		st.Batches, st.NonEmpty, st.Quads, st.Vertices, time.Since(start))

	// ── Engine ──────────────────────────────────────────────────────────
	eng := engine.NewEngine(append(cfg.EngineOptions(),
		engine.WithProfiling(*profile),
		engine.WithWindow(win),
		engine.WithScene(0, sc),
	)...)

	// ── Per-frame sizing ────────────────────────────────────────────────
	var intro *pixel_field.Intro
	if cfg.Intro.Enabled {
		intro, err = pixel_field.NewIntro(f, cfg.Intro.StartDepth,
			time.Duration(cfg.Intro.DurationMS)*time.Millisecond,
			time.Duration(cfg.Intro.StaggerMS)*time.Millisecond,
			time.Now())
		if err != nil {
			log.Fatalf("[Main] %v", err)
		}
	}

	var viewportHeight atomic.Int64
	eng.SetResizeCallback(func(_, height int) {
		viewportHeight.Store(int64(height))
	})

	settle := pixel_field.NewSettleDetector(cfg.SettleDelay())
	eng.SetRenderCallback(func(_ float32) {
		now := time.Now()
		commit := false

		if h := viewportHeight.Swap(0); h > 0 {
			f.SetViewportHeight(int(h))
			commit = true
		}
		if intro != nil && !intro.Done() {
			done, err := intro.Step(now)
			if err != nil {
				log.Printf("[Field] intro: %v", err)
			}
			commit = commit || done
		}

		f.UpdatePixelSize()
		if settle.Settled(ctrl.LastMoved(), now) || commit {
			if n := f.UpdateBufferGeometry(); n > 0 {
				log.Printf("[Field] committed %d batches in %v", n, f.Stats().CommitTime)
			}
		}
	})

	// ── Input Handling ──────────────────────────────────────────────────
	setupInput(eng, cam, f, pal, *profile)

	fmt.Println("╔══════════════════════════════════════════════════════╗")
	fmt.Println("║  Oxy Pixels                                          ║")
	fmt.Println("╠══════════════════════════════════════════════════════╣")
	fmt.Println("║  Camera: WASD/Arrows=Pan  Scroll or -/= = Zoom       ║")
	fmt.Println("║          Left drag=Pan  Click=Pick  R=Reset  P=Stats ║")
	fmt.Println("╚══════════════════════════════════════════════════════╝")

	eng.Run()
	eng.Quit()
}

// loadSource resolves the palette and grid from the command line.
// With no grid or image the built-in demo pattern is used.
func loadSource(gridPath, imagePath, palettePath string) (palette.Palette, grid.Grid, error) {
	if gridPath != "" && imagePath != "" {
		return nil, nil, fmt.Errorf("-grid and -image are mutually exclusive")
	}

	var pal palette.Palette
	var err error
	if palettePath != "" {
		pal, err = loader.NewLoader().LoadPalette(palettePath)
	} else {
		pal, err = palette.NewPalette(defaultPalette)
	}
	if err != nil {
		return nil, nil, err
	}

	demo, err := grid.NewGrid(demoGrid(256, 256, pal.Len()))
	if err != nil {
		return nil, nil, err
	}
	ld := loader.NewLoader(loader.WithPalette(pal), loader.WithGrid(demoGridKey, demo))

	g, err := ld.LoadGrid(common.Coalesce(gridPath, imagePath, demoGridKey))
	if err != nil {
		return nil, nil, err
	}
	return pal, g, nil
}

// demoGrid draws concentric diamonds over the background so every palette entry is used.
func demoGrid(rows, cols, colors int) [][]uint8 {
	out := make([][]uint8, rows)
	for r := range out {
		out[r] = make([]uint8, cols)
		if colors < 2 {
			continue
		}
		for c := range out[r] {
			d := abs(r-rows/2) + abs(c-cols/2)
			if (d/6)%2 == 0 {
				continue
			}
			out[r][c] = uint8(1 + (d/12)%(colors-1))
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
