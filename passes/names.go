package passes

import "github.com/gogpu/gputypes"

// Resource names shared between passes.
const (
	ResourceCamera     = "camera"
	ResourceSceneColor = "scene-color"
	ResourceGBuffer    = "geometry.gbuffer"
	ResourceDepth      = "geometry.depth"
	ResourceShadowMap  = "shadow.map"
	ResourceLit        = "lighting.output"
	ResourceBlurred    = "blur.output"
	ResourceScratch    = "scratch"
)

// Slot keys published by passes.
const (
	SlotShadowMap = "shadow-map"
	SlotLight     = "light"
	SlotGBuffer   = "gbuffer"
	SlotLit       = "lit"
)

// Pass names accepted by Lookup and Build.
const (
	NameShadow     = "shadow"
	NameBackground = "background"
	NameGeometry   = "geometry"
	NameLighting   = "lighting"
	NameBlur       = "blur"
	NameComposite  = "composite"
	NameOverlay    = "overlay"
)

// Formats of the intermediate targets.
const (
	SceneColorFormat = gputypes.TextureFormatRGBA8Unorm
	AlbedoFormat     = gputypes.TextureFormatRGBA8Unorm
	NormalFormat     = gputypes.TextureFormatRGBA8Unorm
)

// DefaultOrder lists every registered pass in frame order.
var DefaultOrder = []string{
	NameShadow, NameBackground, NameGeometry, NameLighting,
	NameBlur, NameComposite, NameOverlay,
}
