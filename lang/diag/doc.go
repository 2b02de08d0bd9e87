// Package diag collects compiler diagnostics.
//
// Every pipeline stage owns a [Bag]. Stages never panic on malformed input;
// they record a [Diagnostic] at the offending [Location] and keep going.
// Bags merge upward so that the caller sees every message from lexing through
// evaluation in the order it was reported.
package diag
