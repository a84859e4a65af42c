package sim

import "strings"

// Arrow key names. They always drive the vehicle, whatever the bindings say.
const (
	KeyUp    = "UP"
	KeyDown  = "DOWN"
	KeyLeft  = "LEFT"
	KeyRight = "RIGHT"
)

// Input is the logical control state for one frame.
type Input struct {
	Forward, Backward, Left, Right bool
}

// Bindings are the user-configured key names for the four controls.
type Bindings struct {
	Forward  string
	Left     string
	Right    string
	Backward string
}

// DefaultBindings is WASD.
var DefaultBindings = Bindings{Forward: "W", Left: "A", Right: "D", Backward: "S"}

// KeyState reports whether the named key is held. Names are upper case
// ("W", "UP", "SPACE").
type KeyState func(name string) bool

// MapInput turns raw key state into logical controls.
func MapInput(pressed KeyState, b Bindings) Input {
	held := func(arrow, bound string) bool {
		if pressed(arrow) {
			return true
		}
		bound = strings.ToUpper(strings.TrimSpace(bound))
		return bound != "" && pressed(bound)
	}
	return Input{
		Forward:  held(KeyUp, b.Forward),
		Backward: held(KeyDown, b.Backward),
		Left:     held(KeyLeft, b.Left),
		Right:    held(KeyRight, b.Right),
	}
}

// Steering reports whether either turn control is held.
func (in Input) Steering() bool { return in.Left || in.Right }
