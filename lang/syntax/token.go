package syntax

import (
	"strings"

	"github.com/ardnew/pillar/lang/diag"
)

// Trivia is source text that carries no meaning to the parser.
type Trivia struct {
	Text     string        `json:"text"     yaml:"text"`
	Location diag.Location `json:"location" yaml:"location"`
	Kind     Kind          `json:"kind"     yaml:"kind"`
}

// Token is a lexeme together with its surrounding trivia.
//
// Value holds the decoded literal: a float64 for numbers, the unquoted
// contents for strings, the spelling for identifiers and keywords, and the
// offending character for unknown tokens.
type Token struct {
	Value    any           `json:"value,omitempty"    yaml:"value,omitempty"`
	Text     string        `json:"text"               yaml:"text"`
	Leading  []Trivia      `json:"leading,omitempty"  yaml:"leading,omitempty"`
	Trailing []Trivia      `json:"trailing,omitempty" yaml:"trailing,omitempty"`
	Location diag.Location `json:"location"           yaml:"location"`
	Kind     Kind          `json:"kind"               yaml:"kind"`
}

// Missing reports whether the token was fabricated by the parser in place of
// one it expected but did not find.
func (t Token) Missing() bool { return t.Kind == UnknownToken && t.Text == "" }

// Full returns the token text with its leading and trailing trivia.
func (t Token) Full() string {
	var sb strings.Builder

	for _, tr := range t.Leading {
		sb.WriteString(tr.Text)
	}

	sb.WriteString(t.Text)

	for _, tr := range t.Trailing {
		sb.WriteString(tr.Text)
	}

	return sb.String()
}

// NodeKind implements [Node].
func (t Token) NodeKind() Kind { return t.Kind }

// Span implements [Node].
func (t Token) Span() diag.Location { return t.Location }

func (Token) fields() []field { return nil }
