package main

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-pixels/engine/camera"

	"github.com/stretchr/testify/assert"
)

func TestScreenToWorld(t *testing.T) {
	cases := []struct {
		name         string
		up           [3]float32
		sx, sy       float32
		wantX, wantY float32
	}{
		{"default right", [3]float32{-1, 0, 0}, 1, 0, 0, 1},
		{"default down", [3]float32{-1, 0, 0}, 0, 1, 1, 0},
		{"y up right", [3]float32{0, 1, 0}, 1, 0, 1, 0},
		{"y up down", [3]float32{0, 1, 0}, 0, 1, 0, -1},
		{"unnormalized up", [3]float32{0, 4, 0}, 2, 0, 2, 0},
		{"degenerate up", [3]float32{0, 0, 1}, 1, 1, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cam := camera.NewCamera(camera.WithUp(tc.up[0], tc.up[1], tc.up[2]))
			wx, wy := screenToWorld(cam, tc.sx, tc.sy)
			assert.InDelta(t, tc.wantX, wx, 1e-6)
			assert.InDelta(t, tc.wantY, wy, 1e-6)
		})
	}
}

func TestDemoGridUsesEveryColor(t *testing.T) {
	rows := demoGrid(64, 64, 4)
	seen := map[uint8]bool{}
	for _, row := range rows {
		assert.Len(t, row, 64)
		for _, v := range row {
			seen[v] = true
		}
	}
	assert.Len(t, seen, 4)

	for _, row := range demoGrid(8, 8, 1) {
		for _, v := range row {
			assert.Zero(t, v)
		}
	}
}
