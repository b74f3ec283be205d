// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-glide/pkg/input"
)

// Button names registered with engo's input manager.
const (
	ButtonQuit = "quit"
)

// InputSystem mirrors engo's mouse into an input.State
type InputSystem struct {
	state   *input.State
	pressed bool

	mouse      func() engo.Mouse
	canvasSize func() (float32, float32)
	quit       func()
}

// NewInputSystem creates an input system writing to state
func NewInputSystem(state *input.State) *InputSystem {
	return &InputSystem{
		state:      state,
		mouse:      func() engo.Mouse { return engo.Input.Mouse },
		canvasSize: gameSize,
		quit:       engo.Exit,
	}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update reads the mouse and the quit button
func (is *InputSystem) Update(dt float32) {
	if engo.Input != nil && engo.Input.Button(ButtonQuit).JustPressed() {
		is.quit()
		return
	}
	w, h := is.canvasSize()
	is.apply(is.mouse(), w, h)
}

// apply updates the held state from one mouse sample. A pointer outside
// the canvas is reported as absent.
func (is *InputSystem) apply(m engo.Mouse, width, height float32) {
	if m.Button == engo.MouseButtonLeft {
		switch m.Action {
		case engo.Press:
			is.pressed = true
		case engo.Release:
			is.pressed = false
		}
	}

	if m.X < 0 || m.Y < 0 || (width > 0 && m.X > width) || (height > 0 && m.Y > height) {
		is.state.Clear()
		return
	}
	is.state.Set(input.Pointer{X: m.X, Y: m.Y, LeftPressed: is.pressed})
}

// Pressed reports whether the left button is held
func (is *InputSystem) Pressed() bool {
	return is.pressed
}

// SetupInputBindings sets up the key bindings for the scene
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonQuit, engo.KeyEscape, engo.KeyQ)
}
