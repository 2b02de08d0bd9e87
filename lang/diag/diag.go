package diag

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"slices"
	"strconv"
)

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Location identifies a span of source text.
//
// Start and End are byte offsets, End exclusive. Line and Column are 1-based
// and refer to Start.
type Location struct {
	Text   string `json:"text"   yaml:"text"`
	Start  int    `json:"start"  yaml:"start"`
	End    int    `json:"end"    yaml:"end"`
	Line   int    `json:"line"   yaml:"line"`
	Column int    `json:"column" yaml:"column"`
	Length int    `json:"length" yaml:"length"`
}

// Span returns the location of text beginning at start.
func Span(text string, start, line, column int) Location {
	return Location{
		Text:   text,
		Start:  start,
		End:    start + len(text),
		Line:   line,
		Column: column,
		Length: len(text),
	}
}

// String returns "line L, col C".
func (l Location) String() string {
	return "line " + strconv.Itoa(l.Line) + ", col " + strconv.Itoa(l.Column)
}

// LogValue implements slog.LogValuer.
func (l Location) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("line", l.Line),
		slog.Int("col", l.Column),
	)
}

// Diagnostic is a single message attached to a source location.
type Diagnostic struct {
	Message  string   `json:"message"  yaml:"message"`
	Location Location `json:"location" yaml:"location"`
	Severity Severity `json:"severity" yaml:"severity"`
}

// String renders the diagnostic the way [Bag.Print] writes it, without the
// final newline.
func (d Diagnostic) String() string {
	return "[" + d.Severity.String() + "] " + d.Message + " \n\tat " +
		d.Location.String()
}

// Bag is an ordered collection of diagnostics.
// The zero value is an empty bag ready for use.
type Bag struct {
	items []Diagnostic
}

// Report appends a diagnostic with the given severity.
func (b *Bag) Report(sev Severity, loc Location, msg string) {
	b.items = append(b.items, Diagnostic{
		Message:  msg,
		Location: loc,
		Severity: sev,
	})
}

// Errorf appends an error diagnostic.
func (b *Bag) Errorf(loc Location, format string, args ...any) {
	b.Report(SeverityError, loc, fmt.Sprintf(format, args...))
}

// Warnf appends a warning diagnostic.
func (b *Bag) Warnf(loc Location, format string, args ...any) {
	b.Report(SeverityWarning, loc, fmt.Sprintf(format, args...))
}

// Infof appends an informational diagnostic.
func (b *Bag) Infof(loc Location, format string, args ...any) {
	b.Report(SeverityInfo, loc, fmt.Sprintf(format, args...))
}

// Merge appends every diagnostic of other, preserving order.
func (b *Bag) Merge(other *Bag) {
	if other == nil || other == b {
		return
	}

	b.items = append(b.items, other.items...)
}

// Len returns the number of collected diagnostics.
func (b *Bag) Len() int {
	if b == nil {
		return 0
	}

	return len(b.items)
}

// HasErrors reports whether any diagnostic has [SeverityError].
func (b *Bag) HasErrors() bool {
	if b == nil {
		return false
	}

	return slices.ContainsFunc(b.items, func(d Diagnostic) bool {
		return d.Severity == SeverityError
	})
}

// All returns an iterator over the diagnostics in report order.
func (b *Bag) All() iter.Seq[Diagnostic] {
	return func(yield func(Diagnostic) bool) {
		if b == nil {
			return
		}

		for _, d := range b.items {
			if !yield(d) {
				return
			}
		}
	}
}

// Items returns a copy of the collected diagnostics.
func (b *Bag) Items() []Diagnostic {
	if b == nil {
		return nil
	}

	return slices.Clone(b.items)
}

// Reset discards all diagnostics.
func (b *Bag) Reset() { b.items = b.items[:0] }

// Print writes every diagnostic to w, one per entry:
//
//	[error] Undefined variable 'x'.
//		at line 3, col 7
func (b *Bag) Print(w io.Writer) error {
	for d := range b.All() {
		if _, err := io.WriteString(w, d.String()+"\n"); err != nil {
			return err
		}
	}

	return nil
}
