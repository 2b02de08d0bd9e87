// Package repl implements the interactive Pillar session.
//
// A [Session] accumulates input until every brace it opened is closed, then
// evaluates the chunk against an environment that persists for the life of
// the session and reports the instructions that chunk produced. Two
// frontends drive a session: a full-screen editor built on Bubble Tea, and a
// line editor used with --plain or when standard input is not a terminal.
//
// Besides Pillar source, a line may be one of the session commands:
//
//	exit   leave the session
//	clear  discard every binding and any pending input
//	edit   open $EDITOR on the session source and evaluate the result
//	help   list the commands
package repl
