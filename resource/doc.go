// Package resource defines the GPU resource kinds a render graph manages
// and the Factory that builds them on a HAL device.
//
// Each kind pairs a plain description struct with an object type:
//
//	Texture1DDesc             -> *Texture1D
//	Texture2DDesc             -> *Texture2D
//	Texture3DDesc             -> *Texture3D
//	DepthStencilBufferDesc    -> *DepthStencilBuffer
//	GBufferDesc               -> *GBuffer
//	ConstantBufferDesc        -> *ConstantBuffer
//	StructuredBufferDesc      -> *StructuredBuffer
//	SamplerStateDesc          -> *SamplerState
//	ComputePipelineStateDesc  -> *ComputePipelineState
//	GraphicsPipelineStateDesc -> *GraphicsPipelineState
//
// Descriptions are values. Their Compatible methods decide whether two
// descriptions may share one object; labels never affect compatibility.
// Every object has an idempotent Destroy method.
//
// Shader sources are WGSL. With ShaderSPIRV the factory compiles them with
// naga and caches the SPIR-V words per source.
package resource
