// Package syntax defines the tokens and syntax tree of the Pillar language.
//
// Tokens carry the source text they were scanned from together with any
// whitespace, comments, and skipped characters around them ([Trivia]), so a
// token stream reproduces its source byte for byte. The tree built by the
// parser keeps every token it consumed and is not modified after parsing.
package syntax
