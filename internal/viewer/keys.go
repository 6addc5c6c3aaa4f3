package viewer

import "github.com/veandco/go-sdl2/sdl"

// Keyboard shortcuts. Escape is handled by the input layer.
const (
	keyFrame      = sdl.SCANCODE_F   // frame the whole mesh
	keyReset      = sdl.SCANCODE_R   // restore the configured camera
	keyScreenshot = sdl.SCANCODE_F12 // save the framebuffer as PNG
	keyRetarget   = sdl.SCANCODE_C   // orbit around the point under the cursor
)
