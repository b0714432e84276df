package passes

import _ "embed"

//go:embed shaders/shadow.wgsl
var shadowShaderWGSL string

//go:embed shaders/background.wgsl
var backgroundShaderWGSL string

//go:embed shaders/geometry.wgsl
var geometryShaderWGSL string

//go:embed shaders/lighting.wgsl
var lightingShaderWGSL string

//go:embed shaders/blur.wgsl
var blurShaderWGSL string

//go:embed shaders/composite.wgsl
var compositeShaderWGSL string

//go:embed shaders/overlay.wgsl
var overlayShaderWGSL string
