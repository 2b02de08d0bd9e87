package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/pillar/lang/builtin"
	"github.com/ardnew/pillar/lang/runtime"
	"github.com/ardnew/pillar/lang/syntax"
)

// commands are the words a line may consist of to control the session.
var commands = []string{"clear", "edit", "exit", "help"}

// isWordBoundary reports whether r separates completion words.
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t',
		'(', ')', '{', '}',
		'+', '-', '*', '/', '%',
		'<', '>', '=', '!',
		'&', '|', ',', ':', ';',
		'"', '\'':
		return true
	}

	return false
}

// wordBounds returns the word at the cursor and its byte boundaries within
// input. The word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// parentPath returns the member-access chain leading up to the word that
// starts at wordStart. For "x + Keys.En" and the word "En" it is "Keys".
func parentPath(input string, wordStart int) string {
	prefix := input[:wordStart]
	if !strings.HasSuffix(prefix, ".") {
		return ""
	}

	prefix = strings.TrimRight(prefix, ".")

	pos := len(prefix)

	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(prefix[:pos])
		if r != '.' && isWordBoundary(r) {
			break
		}

		pos -= size
	}

	return strings.TrimSpace(prefix[pos:])
}

// Candidates returns the names that may follow the member path parent. The
// top level offers keywords, libraries, session commands, and every bound
// name. A library that has not been imported still offers its members.
func (s *Session) Candidates(parent string) []string {
	if parent == "" {
		names := slices.Concat(
			syntax.Keywords(),
			builtin.Libraries(),
			[]string{builtin.KeysName},
			commands,
			s.env.Names(),
		)
		slices.Sort(names)

		return slices.Compact(names)
	}

	segs := strings.Split(parent, ".")

	v, ok := s.env.Resolve(segs[0])
	if !ok {
		if len(segs) == 1 {
			return builtin.Members(segs[0])
		}

		return nil
	}

	for _, seg := range segs[1:] {
		obj, ok := v.(*runtime.Object)
		if !ok {
			return nil
		}

		if v, ok = obj.Get(seg); !ok {
			return nil
		}
	}

	if obj, ok := v.(*runtime.Object); ok {
		return obj.Keys()
	}

	return nil
}

// Complete ranks the candidates for the word at cursor, best first, and
// returns the word's boundaries. An empty word offers nothing at the top
// level and every member after a dot.
func (s *Session) Complete(input string, cursor int) (fuzzy.Matches, int, int) {
	word, start, end := wordBounds(input, cursor)
	parent := parentPath(input, start)
	candidates := s.Candidates(parent)

	if len(candidates) == 0 {
		return nil, start, end
	}

	if word == "" {
		if parent == "" {
			return nil, start, end
		}

		matches := make(fuzzy.Matches, len(candidates))
		for i, c := range candidates {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches, start, end
	}

	return fuzzy.Find(word, candidates), start, end
}

// completeWord adapts [Session.Complete] to the line editor.
func (s *Session) completeWord(line string, pos int) (head string, completions []string, tail string) {
	matches, start, end := s.Complete(line, pos)

	for _, m := range matches {
		completions = append(completions, m.Str)
	}

	return line[:start], completions, line[end:]
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within width. The selected candidate is highlighted while tabbing.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched characters bold.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base := suggestionStyle
	highlight := suggestionStyle.Bold(true)

	if selected {
		base = selectedStyle
		highlight = selectedStyle.Bold(true)
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
