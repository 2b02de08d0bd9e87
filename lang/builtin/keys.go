package builtin

import (
	"slices"
	"strconv"
)

// Class groups keys by how [Keyboard] combines them.
type Class int

const (
	ClassKey Class = iota
	ClassModifier
	ClassNumpad
)

// Key is one entry of the Keys object.
type Key struct {
	Name  string
	Value string
	Class Class
}

func key(name, value string) Key { return Key{Name: name, Value: value} }

func same(name string) Key { return key(name, name) }

func modifier(name, value string) Key {
	return Key{Name: name, Value: value, Class: ClassModifier}
}

var keys = func() []Key {
	ks := []Key{
		modifier("Shift", "SHIFT"),
		modifier("Ctrl", "CTRL"),
		modifier("Control", "CONTROL"),
		modifier("Alt", "ALT"),
		modifier("Windows", "WINDOWS"),
		modifier("Gui", "GUI"),
		modifier("CtrlAlt", "CTRL-ALT"),
		modifier("CtrlShift", "CTRL-SHIFT"),
		modifier("AltGui", "ALT-GUI"),
		modifier("GuiShift", "GUI-SHIFT"),
		modifier("GuiCtrl", "GUI-CTRL"),

		{Name: "AltChar", Value: "ALTCHAR", Class: ClassNumpad},
		{Name: "AltString", Value: "ALTSTRING", Class: ClassNumpad},
		{Name: "AltCode", Value: "ALTCODE", Class: ClassNumpad},

		key("ArrowDown", "ARROWDOWN"),
		key("ArrowLeft", "ARROWLEFT"),
		key("ArrowRight", "ARROWRIGHT"),
		key("ArrowUp", "ARROWUP"),
		key("Down", "DOWN"),
		key("Left", "LEFT"),
		key("Right", "RIGHT"),
		key("Up", "UP"),
		key("Enter", "ENTER"),
		key("Delete", "DELETE"),
		key("BackSpace", "BACKSPACE"),
		key("End", "END"),
		key("Home", "HOME"),
		key("Escape", "ESCAPE"),
		key("Esc", "ESC"),
		key("Insert", "INSERT"),
		key("PageUp", "PAGEUP"),
		key("PageDown", "PAGEDOWN"),
		key("CapsLock", "CAPSLOCK"),
		key("NumLock", "NUMLOCK"),
		key("ScrollLock", "SCROLLLOCK"),
		key("PrintScreen", "PRINTSCREEN"),
		key("Pause", "PAUSE"),
		key("Break", "BREAK"),
		key("Space", "SPACE"),
		key("Tab", "TAB"),
		key("Menu", "MENU"),
		key("App", "APP"),
	}

	for i := 1; i <= 12; i++ {
		ks = append(ks, same("F"+strconv.Itoa(i)))
	}

	for c := 'A'; c <= 'Z'; c++ {
		ks = append(ks, same(string(c)))
	}

	return append(ks, same("None"))
}()

// Keys returns every key in declaration order.
func Keys() []Key { return slices.Clone(keys) }

// classOf returns the class of the key whose instruction keyword is value.
func classOf(value string) Class {
	for _, k := range keys {
		if k.Value == value {
			return k.Class
		}
	}

	return ClassKey
}

// Combines reports whether value may prefix another key in a single
// instruction, as in "GUI R".
func Combines(value string) bool {
	c := classOf(value)

	return c == ClassModifier || c == ClassNumpad
}
