// Package input polls SDL2 events and feeds pointer motion to the orbit
// camera.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/midgard-terrain/internal/engine/camera"
)

// EventType classifies events the viewer reacts to beyond camera motion.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
}

// Input handles all input processing.
type Input struct {
	events  []Event
	camera  []camera.Event
	pointer camera.PointerTracker
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		camera: make([]camera.Event, 0, 16),
	}
}

// Update polls SDL events. Window and keyboard events land in Events, pointer
// motion is translated into CameraEvents. Returns true if the viewer should
// quit, either on a window close or on Escape.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.camera = i.camera[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			i.events = append(i.events, Event{
				Type: EventKeyDown,
				Key:  e.Keysym.Scancode,
			})
			if e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
				quit = true
			}

		case *sdl.MouseMotionEvent:
			i.camera = append(i.camera, i.pointer.Move(float32(e.X), float32(e.Y))...)

		case *sdl.MouseButtonEvent:
			b := buttonFromSDL(e.Button)
			if e.Type == sdl.MOUSEBUTTONDOWN {
				i.pointer.Press(b, float32(e.X), float32(e.Y))
			} else {
				i.pointer.Release(b)
			}

		case *sdl.MouseWheelEvent:
			dy := float32(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				dy = -dy
			}
			i.camera = append(i.camera, i.pointer.Scroll(dy))
		}
	}

	return quit
}

// Events returns the window and keyboard events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// CameraEvents returns the camera motion from the last Update, in arrival
// order.
func (i *Input) CameraEvents() []camera.Event {
	return i.camera
}

// Pointer returns the last mouse position in window coordinates.
func (i *Input) Pointer() (x, y float32, ok bool) {
	return i.pointer.Position()
}

func buttonFromSDL(b uint8) camera.Button {
	switch b {
	case sdl.BUTTON_LEFT:
		return camera.ButtonPrimary
	case sdl.BUTTON_RIGHT:
		return camera.ButtonSecondary
	default:
		return camera.ButtonOther
	}
}
