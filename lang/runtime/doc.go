// Package runtime defines the values a Pillar program computes and the
// lexical environments that bind them to names.
//
// [Value] is a closed sum type: every concrete value is one of the types in
// this package, and [Kind] enumerates them so that consumers can switch
// exhaustively.
package runtime
