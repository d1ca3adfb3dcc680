package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-pixels/common"
	"github.com/Carmen-Shannon/oxy-pixels/engine"
	"github.com/Carmen-Shannon/oxy-pixels/engine/camera"
	"github.com/Carmen-Shannon/oxy-pixels/engine/pixel_field"
	"github.com/Carmen-Shannon/oxy-pixels/engine/pixel_group"
	"github.com/Carmen-Shannon/oxy-pixels/engine/renderer"
	"github.com/Carmen-Shannon/oxy-pixels/engine/window"

	"github.com/pelletier/go-toml/v2"
)

// DefaultTitle is the window title used when none is configured.
const DefaultTitle = "oxy-pixels"

// Config is the on-disk configuration of the pixel field viewer.
// Zero-valued sections in a file keep the defaults from Default.
type Config struct {
	Engine   EngineConfig `toml:"engine"`
	Field    FieldConfig  `toml:"field"`
	Camera   CameraConfig `toml:"camera"`
	Window   WindowConfig `toml:"window"`
	Intro    IntroConfig  `toml:"intro"`
	SettleMS int          `toml:"settle_ms"`
	// ProfileIntervalMS is the profiler logging interval used when profiling is enabled.
	ProfileIntervalMS int `toml:"profile_interval_ms"`
}

// EngineConfig holds the loop rates. FrameLimit 0 leaves the render loop uncapped.
type EngineConfig struct {
	TickRate   float64 `toml:"tick_rate"`
	FrameLimit float64 `toml:"frame_limit"`
}

// FieldConfig holds the batching and sizing constants.
type FieldConfig struct {
	PixelSize      float32 `toml:"pixel_size"`
	MaxFootprintPx float64 `toml:"max_footprint_px"`
	SubGroups      int     `toml:"sub_groups"`
	HashShift      uint    `toml:"hash_shift"`
	DistanceOffset float64 `toml:"distance_offset"`
	// CenterRow and CenterCol override the world origin cell. Both or neither must be set.
	CenterRow *int `toml:"center_row"`
	CenterCol *int `toml:"center_col"`
	Workers   int  `toml:"workers"`
}

// CameraConfig holds the camera lens and controller settings.
type CameraConfig struct {
	FovDegrees float32 `toml:"fov_degrees"`
	Zoom       float32 `toml:"zoom"`
	MinZoom    float32 `toml:"min_zoom"`
	MaxZoom    float32 `toml:"max_zoom"`
	ZoomSpeed  float32 `toml:"zoom_speed"`
	PanSpeed   float32 `toml:"pan_speed"`
	Near       float32 `toml:"near"`
	Far        float32 `toml:"far"`
	// Up orients the top-down view. It must have a component in the image plane.
	Up [3]float32 `toml:"up"`
}

// WindowConfig holds the window and presentation settings.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	VSync  bool   `toml:"vsync"`
	MSAA   bool   `toml:"msaa"`
	// SoftwareRenderer requests the CPU fallback adapter.
	SoftwareRenderer bool `toml:"software_renderer"`
}

// IntroConfig controls the startup fly-in where batches drop from StartDepth to the image plane.
type IntroConfig struct {
	Enabled    bool    `toml:"enabled"`
	DurationMS int     `toml:"duration_ms"`
	StartDepth float32 `toml:"start_depth"`
	// StaggerMS delays each successive batch's start.
	StaggerMS int `toml:"stagger_ms"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			TickRate: 60,
		},
		Field: FieldConfig{
			PixelSize:      pixel_field.DefaultPixelSize,
			MaxFootprintPx: pixel_field.DefaultMaxFootprintPx,
			SubGroups:      pixel_group.DefaultSubGroups,
			HashShift:      pixel_group.DefaultHashShift,
			DistanceOffset: pixel_field.DefaultDistanceOffset,
			Workers:        4,
		},
		Camera: CameraConfig{
			FovDegrees: 50,
			Zoom:       30,
			MinZoom:    1,
			MaxZoom:    500,
			ZoomSpeed:  2,
			PanSpeed:   1,
			Near:       0.1,
			Far:        1000,
			Up:         [3]float32{-1, 0, 0},
		},
		Window: WindowConfig{
			Title:  DefaultTitle,
			Width:  1280,
			Height: pixel_field.DefaultViewportHeight,
			VSync:  true,
			MSAA:   true,
		},
		Intro: IntroConfig{
			Enabled:    true,
			DurationMS: 1200,
			StartDepth: 200,
			StaggerMS:  15,
		},
		SettleMS:          int(pixel_field.DefaultSettleDelay / time.Millisecond),
		ProfileIntervalMS: 1000,
	}
}

// Load reads a TOML configuration file over the defaults and validates it.
//
// Parameters:
//   - path: the file path of the TOML document
//
// Returns:
//   - Config: the merged configuration
//   - error: error if the file cannot be read, decoded or validated
func Load(path string) (Config, error) {
	fp, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer fp.Close()

	cfg, err := Decode(bufio.NewReader(fp))
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a TOML document over the defaults and validates it. Unknown keys are rejected.
//
// Parameters:
//   - r: the reader providing the TOML document
//
// Returns:
//   - Config: the merged configuration
//   - error: error if decoding or validation fails
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%w: %s", common.ErrInvalidConfiguration, strict.String())
		}
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every constant the engine consumes.
//
// Returns:
//   - error: common.ErrInvalidConfiguration or common.ErrDegenerateGroupConfiguration describing the first problem
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{common.ErrInvalidConfiguration}, args...)...)
	}

	f := c.Field
	switch {
	case f.PixelSize <= 0:
		return invalid("field.pixel_size must be > 0, got %v", f.PixelSize)
	case f.MaxFootprintPx <= 0:
		return invalid("field.max_footprint_px must be > 0, got %v", f.MaxFootprintPx)
	case f.DistanceOffset == 0:
		return invalid("field.distance_offset must be non-zero")
	case f.SubGroups < 2:
		return fmt.Errorf("%w: field.sub_groups must be >= 2, got %d", common.ErrDegenerateGroupConfiguration, f.SubGroups)
	case (f.CenterRow == nil) != (f.CenterCol == nil):
		return invalid("field.center_row and field.center_col must be set together")
	case f.CenterRow != nil && (*f.CenterRow < 0 || *f.CenterCol < 0):
		return invalid("field center must be non-negative")
	case f.Workers < 1:
		return invalid("field.workers must be >= 1, got %d", f.Workers)
	}

	cam := c.Camera
	switch {
	case cam.FovDegrees <= 0 || cam.FovDegrees >= 180:
		return invalid("camera.fov_degrees must be in (0, 180), got %v", cam.FovDegrees)
	case cam.MinZoom <= 0 || cam.MaxZoom <= cam.MinZoom:
		return invalid("camera zoom bounds [%v, %v] are unusable", cam.MinZoom, cam.MaxZoom)
	case cam.Near <= 0 || cam.Far <= cam.Near:
		return invalid("camera clip planes [%v, %v] are unusable", cam.Near, cam.Far)
	case cam.ZoomSpeed <= 0 || cam.PanSpeed <= 0:
		return invalid("camera speeds must be > 0")
	case cam.Up[0] == 0 && cam.Up[1] == 0:
		return invalid("camera.up %v has no component in the image plane", cam.Up)
	}

	if c.Engine.TickRate <= 0 || c.Engine.FrameLimit < 0 {
		return invalid("engine rates must be positive (tick_rate %v, frame_limit %v)", c.Engine.TickRate, c.Engine.FrameLimit)
	}

	w := c.Window
	if w.Width <= 0 || w.Height <= 0 {
		return invalid("window size %dx%d is unusable", w.Width, w.Height)
	}
	if c.Intro.Enabled && (c.Intro.DurationMS <= 0 || c.Intro.StaggerMS < 0) {
		return invalid("intro timings must be positive")
	}
	if c.SettleMS < 0 || c.ProfileIntervalMS < 0 {
		return invalid("durations must be non-negative")
	}
	return nil
}

// SettleDelay returns the settle quiet period as a duration.
func (c Config) SettleDelay() time.Duration {
	return time.Duration(c.SettleMS) * time.Millisecond
}

// ProfileInterval returns the profiler logging interval as a duration.
func (c Config) ProfileInterval() time.Duration {
	return time.Duration(c.ProfileIntervalMS) * time.Millisecond
}

// EngineOptions maps the engine section and profiler interval onto engine options.
func (c Config) EngineOptions() []engine.EngineBuilderOption {
	return []engine.EngineBuilderOption{
		engine.WithTickRate(c.Engine.TickRate),
		engine.WithRenderFrameLimit(c.Engine.FrameLimit),
		engine.WithProfilerInterval(c.ProfileInterval()),
	}
}

// FieldOptions maps the field section onto pixel field options. The viewport height follows the window height.
func (c Config) FieldOptions() []pixel_field.FieldBuilderOption {
	opts := []pixel_field.FieldBuilderOption{
		pixel_field.WithPixelSize(c.Field.PixelSize),
		pixel_field.WithMaxFootprintPx(c.Field.MaxFootprintPx),
		pixel_field.WithSubGroups(c.Field.SubGroups),
		pixel_field.WithHashShift(c.Field.HashShift),
		pixel_field.WithDistanceOffset(c.Field.DistanceOffset),
		pixel_field.WithViewportHeight(c.Window.Height),
		pixel_field.WithWorkers(c.Field.Workers),
	}
	if c.Field.CenterRow != nil && c.Field.CenterCol != nil {
		opts = append(opts, pixel_field.WithCenter(*c.Field.CenterRow, *c.Field.CenterCol))
	}
	return opts
}

// CameraOptions maps the camera section onto camera options. The aspect ratio follows the window size.
func (c Config) CameraOptions() []camera.CameraBuilderOption {
	return []camera.CameraBuilderOption{
		camera.WithUp(c.Camera.Up[0], c.Camera.Up[1], c.Camera.Up[2]),
		camera.WithFovDegrees(c.Camera.FovDegrees),
		camera.WithAspect(float32(c.Window.Width) / float32(c.Window.Height)),
		camera.WithNear(c.Camera.Near),
		camera.WithFar(c.Camera.Far),
	}
}

// ControllerOptions maps the camera section onto controller options.
func (c Config) ControllerOptions() []camera.CameraControllerOption {
	return []camera.CameraControllerOption{
		camera.WithZoomBounds(c.Camera.MinZoom, c.Camera.MaxZoom),
		camera.WithPosition(0, 0, c.Camera.Zoom),
		camera.WithZoomSpeed(c.Camera.ZoomSpeed),
		camera.WithPanSpeed(c.Camera.PanSpeed),
	}
}

// WindowOptions maps the window section onto window options. An empty title falls back to DefaultTitle.
func (c Config) WindowOptions() []window.WindowBuilderOption {
	return []window.WindowBuilderOption{
		window.WithTitle(common.Coalesce(c.Window.Title, DefaultTitle)),
		window.WithSize(c.Window.Width, c.Window.Height),
	}
}

// RendererOptions maps the window section onto renderer options.
// The clear color is left to the caller since it comes from the palette.
func (c Config) RendererOptions() []renderer.RendererBuilderOption {
	mode := renderer.PresentModeUncapped
	if c.Window.VSync {
		mode = renderer.PresentModeVSync
	}
	msaa := renderer.MSAAOff
	if c.Window.MSAA {
		msaa = renderer.MSAA4x
	}
	return []renderer.RendererBuilderOption{
		renderer.WithPresentMode(mode),
		renderer.WithMSAA(msaa),
		renderer.WithForceSoftwareRenderer(c.Window.SoftwareRenderer),
	}
}
