package lang

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
	"golang.org/x/text/unicode/norm"

	"github.com/ardnew/pillar/lang/diag"
	"github.com/ardnew/pillar/lang/parser"
	"github.com/ardnew/pillar/lang/syntax"
)

// globalCache stores parsed sources keyed by the hash of their normalized
// text. Entries are shared and must not be modified.
//
//nolint:gochecknoglobals
var globalCache sync.Map

// state parses a cached source exactly once.
type state struct {
	once sync.Once
	src  *Source
}

// Source is the parsed form of one source text.
type Source struct {
	diag   *diag.Bag
	Unit   *syntax.Unit
	Text   string
	Tokens []syntax.Token
}

// Diagnostics returns the problems found while scanning and parsing. The bag
// is shared by every reader of a cached source; merge it rather than modify
// it.
func (s *Source) Diagnostics() *diag.Bag { return s.diag }

// ParseReader reads all of r and parses it. Parse results are cached by
// content, so reading the same text again returns the same [Source].
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Source, error) {
	// Wrap reader with async read-ahead for concurrent I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return ParseString(ctx, string(data), opts...)
}

// ParseString parses text, using the cache when possible. Text is converted
// to Unicode normalization form C first.
func ParseString(ctx context.Context, text string, opts ...Option) (*Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	o := makeOptions(opts...)
	text = norm.NFC.String(text)

	hash := xxh3.HashString(text)
	key := strconv.FormatUint(hash, 36)

	value, hit := globalCache.LoadOrStore(key, new(state))

	entry, ok := value.(*state)
	if !ok {
		return parse(text), nil
	}

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(hash, 16)),
		slog.Int("source_bytes", len(text)),
		slog.Bool("cache_hit", hit),
	)

	entry.once.Do(func() { entry.src = parse(text) })

	// A hash collision falls back to an uncached parse.
	if entry.src.Text != text {
		o.logger.DebugContext(ctx, "cache collision",
			slog.String("source_hash", strconv.FormatUint(hash, 16)),
		)

		return parse(text), nil
	}

	return entry.src, nil
}

// Load reads and parses the file at path.
func Load(ctx context.Context, path string, opts ...Option) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	src, err := ParseReader(ctx, f, opts...)
	if err != nil {
		return nil, WrapError(err).With(slog.String("path", path))
	}

	return src, nil
}

func parse(text string) *Source {
	p := parser.New(text)
	unit, bag := p.Parse()

	return &Source{Text: text, Unit: unit, Tokens: p.Tokens(), diag: bag}
}

// ClearCache removes all cached sources.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.Clear()
}
