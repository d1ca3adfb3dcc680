package loader

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Carmen-Shannon/oxy-pixels/engine/palette"
)

// textLoaderBackend reads grids written as one row per line, one hex digit per cell.
// Blank lines are skipped.
type textLoaderBackend struct{}

var _ loaderBackend = &textLoaderBackend{}

func newTextLoaderBackend() *textLoaderBackend {
	return &textLoaderBackend{}
}

func (b *textLoaderBackend) Decode(r io.Reader, _ palette.Palette) ([][]uint8, error) {
	var rows [][]uint8
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		row := make([]uint8, len(text))
		for i := 0; i < len(text); i++ {
			v, ok := hexDigit(text[i])
			if !ok {
				return nil, fmt.Errorf("line %d col %d: invalid hex digit %q", line, i, text[i])
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
