// Package lang compiles Pillar programs into keystroke injection scripts.
//
// A program is scanned, parsed, and evaluated. Calls to the native functions
// of the built-in libraries record instructions, which are then written one
// per line:
//
//	import Keyboard
//	import Process
//
//	Keyboard.press(Keys.Gui, Keys.R)
//	Process.wait(500)
//	Process.write("notepad")
//	Keyboard.press(Keys.Enter)
//
// compiles to
//
//	GUI R
//	DELAY 500
//	STRING notepad
//	ENTER
//
// # Pipeline
//
// [ParseString], [ParseReader], and [Load] normalize and parse source text.
// Parsed sources are cached by content, so a file imported from several
// places is parsed once. [Compile] evaluates a parsed source and returns its
// instructions together with every diagnostic reported along the way.
//
// # Defines
//
// Constants can be supplied from outside a program as NAME=EXPR pairs. Each
// expression is evaluated with expr-lang and may use the env() function to
// read the process environment:
//
//	user=env("USER")
//	delay=250 * 2
//
// The subpackages hold each stage: lexer, parser, and syntax for the front
// end; runtime, builtin, and eval for evaluation; emit for output; and diag
// for diagnostics.
package lang
