package loader

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-pixels/common"
	"github.com/Carmen-Shannon/oxy-pixels/engine/grid"
	"github.com/Carmen-Shannon/oxy-pixels/engine/palette"

	"gopkg.in/yaml.v3"
)

// LoaderBackendType identifies the grid file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeText selects the hex-digit text grid backend.
	BackendTypeText LoaderBackendType = iota
	// BackendTypeImage selects the raster image backend, which quantizes every pixel to the palette.
	BackendTypeImage
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu *sync.RWMutex

	palette   palette.Palette
	gridCache map[string]grid.Grid

	backends map[LoaderBackendType]loaderBackend
}

// paletteFile is the on-disk layout of a palette YAML document.
type paletteFile struct {
	Colors []string `yaml:"colors"`
}

// Loader defines the public-facing interface for loading and caching source grids and palettes.
// It abstracts the file format (hex text, PNG, JPEG, BMP, WebP) behind a backend selected by
// file extension and caches previously loaded grids by path.
type Loader interface {
	// LoadGrid imports a grid file and caches the result.
	// If the grid is already cached (by file path), the cached version is returned.
	// The backend is selected based on the file extension (.txt/.grid → text backend,
	// .png/.jpg/.jpeg/.bmp/.webp → image backend).
	//
	// Parameters:
	//   - path: the file path to the grid file
	//
	// Returns:
	//   - grid.Grid: the loaded and cached grid
	//   - error: error if loading fails
	LoadGrid(path string) (grid.Grid, error)

	// LoadGridReader imports a grid from a reader stream and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key for the loaded grid
	//   - r: the reader providing grid data
	//   - backendType: the backend that understands the stream's format
	//
	// Returns:
	//   - grid.Grid: the loaded grid
	//   - error: error if loading fails
	LoadGridReader(name string, r io.Reader, backendType LoaderBackendType) (grid.Grid, error)

	// LoadPalette reads a palette YAML file and makes it the palette used to quantize images.
	//
	// Parameters:
	//   - path: the file path to the palette file
	//
	// Returns:
	//   - palette.Palette: the parsed palette
	//   - error: error if the file cannot be read or parsed
	LoadPalette(path string) (palette.Palette, error)

	// Palette returns the palette currently used by the image backend, or nil if none is set.
	//
	// Returns:
	//   - palette.Palette: the active palette
	Palette() palette.Palette

	// Get retrieves a cached grid by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - grid.Grid: the cached grid or nil
	Get(name string) grid.Grid

	// Grids returns a copy of the grid cache.
	//
	// Returns:
	//   - map[string]grid.Grid: all cached grids keyed by name
	Grids() map[string]grid.Grid
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with both grid backends registered and options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:        &sync.RWMutex{},
		gridCache: make(map[string]grid.Grid),
		backends: map[LoaderBackendType]loaderBackend{
			BackendTypeText:  newTextLoaderBackend(),
			BackendTypeImage: newImageLoaderBackend(),
		},
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) LoadGrid(path string) (grid.Grid, error) {
	l.mu.RLock()
	if cached, ok := l.gridCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	backendType, err := resolveBackend(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return l.LoadGridReader(path, f, backendType)
}

func (l *loader) LoadGridReader(name string, r io.Reader, backendType LoaderBackendType) (grid.Grid, error) {
	l.mu.RLock()
	if cached, ok := l.gridCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	backend, ok := l.backends[backendType]
	p := l.palette
	l.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("loader: unknown backend type %d", backendType)
	}

	rows, err := backend.Decode(r, p)
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", name, err)
	}
	g, err := grid.NewGrid(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", name, err)
	}

	l.mu.Lock()
	l.gridCache[name] = g
	l.mu.Unlock()

	log.Printf("[Loader] %s: %dx%d", name, g.Rows(), g.Cols())
	return g, nil
}

func (l *loader) LoadPalette(path string) (palette.Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read palette %s: %w", path, err)
	}
	p, err := DecodePalette(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to load palette %s: %w", path, err)
	}

	l.mu.Lock()
	l.palette = p
	l.mu.Unlock()
	return p, nil
}

func (l *loader) Palette() palette.Palette {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.palette
}

func (l *loader) Get(name string) grid.Grid {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.gridCache[name]
}

func (l *loader) Grids() map[string]grid.Grid {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]grid.Grid, len(l.gridCache))
	for k, v := range l.gridCache {
		result[k] = v
	}
	return result
}

// DecodePalette parses a palette YAML document of the form `colors: ["#ffffff", ...]`.
// Unknown keys are rejected.
//
// Parameters:
//   - r: the reader providing the YAML document
//
// Returns:
//   - palette.Palette: the parsed palette
//   - error: error if the document is malformed or any color fails to parse
func DecodePalette(r io.Reader) (palette.Palette, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var pf paletteFile
	if err := dec.Decode(&pf); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("palette: %w: empty document", common.ErrInvalidConfiguration)
		}
		return nil, fmt.Errorf("palette: %w", err)
	}
	return palette.NewPalette(pf.Colors)
}

// resolveBackend selects an appropriate loader backend based on the file extension.
func resolveBackend(path string) (LoaderBackendType, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", ".grid":
		return BackendTypeText, nil
	case ".png", ".jpg", ".jpeg", ".bmp", ".webp":
		return BackendTypeImage, nil
	default:
		return 0, fmt.Errorf("unsupported grid format: %s", ext)
	}
}
