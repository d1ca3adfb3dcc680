package pixel_field

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/oxy-pixels/engine/camera"
	"github.com/Carmen-Shannon/oxy-pixels/engine/mesh"
	"github.com/Carmen-Shannon/oxy-pixels/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-pixels/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-pixels/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/pixel.wgsl
var pixelShaderBody string

// PixelShaderSource is the complete WGSL program drawing a pixel batch: the shared struct
// definitions followed by the entry points.
var PixelShaderSource = camera.GPUCameraUniformSource + "\n" +
	material.GPUPixelParamsSource + "\n" +
	mesh.GPUPixelVertexSource + "\n" +
	pixelShaderBody

// BindGroupLayouts returns the bind group layouts of the pixel program: the camera uniform at
// group 0 and the per-batch pixel parameters at group 1. Both stages declare identical layouts so
// the bind groups created from either match the pipeline layout.
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: layouts keyed by group index
func BindGroupLayouts() map[int]wgpu.BindGroupLayoutDescriptor {
	cam := camera.GPUCameraUniform{}
	params := material.GPUPixelParams{}
	visibility := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment
	return map[int]wgpu.BindGroupLayoutDescriptor{
		0: {
			Label: "Camera Bind Group Layout",
			Entries: []wgpu.BindGroupLayoutEntry{{
				Binding:    0,
				Visibility: visibility,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(cam.Size()),
				},
			}},
		},
		1: {
			Label: "Pixel Params Bind Group Layout",
			Entries: []wgpu.BindGroupLayoutEntry{{
				Binding:    0,
				Visibility: visibility,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(params.ByteSize()),
				},
			}},
		},
	}
}

// NewPixelShaders compiles the pixel program into its vertex and fragment stages.
//
// Parameters:
//   - key: prefix for the shader keys
//
// Returns:
//   - vs, fs: the vertex and fragment shaders
//   - error: an error if an entry point is missing
func NewPixelShaders(key string) (vs, fs shader.Shader, err error) {
	var layoutOpts []shader.ShaderBuilderOption
	for group, desc := range BindGroupLayouts() {
		layoutOpts = append(layoutOpts, shader.WithBindGroupLayout(group, desc))
	}

	vs, err = shader.NewShader(key+"_vs", shader.ShaderTypeVertex, PixelShaderSource,
		append(layoutOpts, shader.WithVertexLayouts(mesh.VertexLayouts()...))...)
	if err != nil {
		return nil, nil, err
	}
	fs, err = shader.NewShader(key+"_fs", shader.ShaderTypeFragment, PixelShaderSource, layoutOpts...)
	if err != nil {
		return nil, nil, err
	}
	return vs, fs, nil
}

// NewPixelPipeline builds the unregistered render pipeline used by every batch material.
// Quads are double sided and depth tested so batches moved along z layer correctly.
//
// Parameters:
//   - key: the pipeline key
//
// Returns:
//   - pipeline.Pipeline: the pipeline, ready for Renderer.RegisterPipelines
//   - error: an error if the shaders could not be created
func NewPixelPipeline(key string) (pipeline.Pipeline, error) {
	vs, fs, err := NewPixelShaders(key)
	if err != nil {
		return nil, fmt.Errorf("pixel pipeline: %w", err)
	}
	return pipeline.NewPipeline(key,
		pipeline.WithShaders(vs, fs),
		pipeline.WithCullMode(wgpu.CullModeNone),
		pipeline.WithTopology(wgpu.PrimitiveTopologyTriangleList),
		pipeline.WithDepthCompare(wgpu.CompareFunctionLessEqual),
	), nil
}

// materialize creates one mesh and material per non-empty batch. Mesh position and center
// streams alias the batch buffers so geometry commits are visible without copying.
func (f *field) materialize() error {
	batches := f.set.Batches()
	f.meshes = make([]mesh.Mesh, len(batches))
	for flat, b := range batches {
		if b.Empty() {
			continue
		}
		color, err := f.palette.ColorOf(b.ColorIndex())
		if err != nil {
			return fmt.Errorf("field: materialize batch %d: %w", flat, err)
		}
		label := fmt.Sprintf("pixels_%d_%d", b.ColorIndex(), b.SubGroup())
		mat := material.NewPixelMaterial(
			material.WithName(label),
			material.WithColor(color),
			material.WithSize(f.pixelSize),
			material.WithDepthCompensation(1),
			material.WithDepthOffset(b.DepthOffset()),
			material.WithPipelineKey(f.pipelineKey),
		)
		f.meshes[flat] = mesh.NewMesh(label, b.Positions(), b.Centers(), b.Corners(), mesh.WithMaterial(mat))
	}
	return nil
}
