package game

import (
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"

	"racer/internal/sim"
)

// keyNames maps the upper-case names used by settings bindings to GLFW keys.
var keyNames = func() map[string]glfw.Key {
	m := map[string]glfw.Key{
		sim.KeyUp:    glfw.KeyUp,
		sim.KeyDown:  glfw.KeyDown,
		sim.KeyLeft:  glfw.KeyLeft,
		sim.KeyRight: glfw.KeyRight,
		"SPACE":      glfw.KeySpace,
		"TAB":        glfw.KeyTab,
		"ENTER":      glfw.KeyEnter,
		"LSHIFT":     glfw.KeyLeftShift,
		"RSHIFT":     glfw.KeyRightShift,
		"LCTRL":      glfw.KeyLeftControl,
		"RCTRL":      glfw.KeyRightControl,
		",":          glfw.KeyComma,
		".":          glfw.KeyPeriod,
		"/":          glfw.KeySlash,
		";":          glfw.KeySemicolon,
		"-":          glfw.KeyMinus,
		"=":          glfw.KeyEqual,
	}
	for c := 'A'; c <= 'Z'; c++ {
		m[string(c)] = glfw.KeyA + glfw.Key(c-'A')
	}
	for c := '0'; c <= '9'; c++ {
		m[string(c)] = glfw.Key0 + glfw.Key(c-'0')
	}
	return m
}()

// Input polls the window keyboard for the race.
type Input struct {
	window *glfw.Window
}

func NewInput(window *glfw.Window) *Input {
	return &Input{window: window}
}

// Pressed reports whether the named key is held. Unknown names are never held.
func (in *Input) Pressed(name string) bool {
	k, ok := keyNames[strings.ToUpper(name)]
	if !ok {
		return false
	}
	return in.window.GetKey(k) == glfw.Press
}

// KeyState adapts Pressed for sim.MapInput.
func (in *Input) KeyState() sim.KeyState { return in.Pressed }

// Quit reports a close request or Escape.
func (in *Input) Quit() bool {
	return in.window.ShouldClose() || in.window.GetKey(glfw.KeyEscape) == glfw.Press
}
