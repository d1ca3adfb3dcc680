// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// RGB is a palette color with each channel normalized to the [0, 1] range, ready for GPU upload.
type RGB struct {
	// R is the red channel.
	R float32
	// G is the green channel.
	G float32
	// B is the blue channel.
	B float32
}

// Array returns the color as a [3]float32 in R, G, B order.
//
// Returns:
//   - [3]float32: the color channels
func (c RGB) Array() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

// Pixel is a logical pixel of the source image. It is not stored anywhere; it is derived on demand
// from a (row, column) pair and the grid it belongs to.
type Pixel struct {
	// Row is the source-image row.
	Row int
	// Col is the source-image column.
	Col int
	// ColorIndex is the palette index stored in the grid at (Row, Col).
	ColorIndex int
}
