package frameview

import (
	// Vulkan registers itself with the HAL registry so New can find a
	// backend without further imports. Import other backend packages
	// (hal/metal, hal/dx12, hal/gles, hal/noop) to make them selectable.
	_ "github.com/gogpu/wgpu/hal/vulkan"
)
