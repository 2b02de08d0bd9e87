// Package builtin provides the libraries a program can import by name.
//
// Process and Keyboard are objects of native functions that record
// instructions. Importing Keyboard also declares Keys, an object mapping
// friendly key names to their instruction keywords. Windows is written in
// Pillar itself and embedded as source; the evaluator runs it like any other
// imported file.
package builtin
