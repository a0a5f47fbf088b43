package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/equex/lang"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "vars", "report", "postfix", "edit", "clear", "quit"}

// isWordChar reports whether c can appear in a completable word: a
// variable name, a function name or a command.
func isWordChar(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// wordBounds returns the word at the cursor position and its byte
// boundaries within input. It returns an empty word when the cursor sits
// between two non-word characters.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor
	for start > 0 && isWordChar(input[start-1]) {
		start--
	}

	end = cursor
	for end < len(input) && isWordChar(input[end]) {
		end++
	}

	return input[start:end], start, end
}

// candidates returns the completion candidates for the given mode: command
// names in control mode, otherwise variable names followed by function names.
func candidates(mode inputMode, store *lang.Store) []string {
	if mode == modeCtrl {
		return ctrlCommands
	}

	return append(store.Names(), lang.FuncNames()...)
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor, ranked best-first, along with the word boundaries. A word starting
// with a digit is a number literal and never completes.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()
	mode, offset := m.modeOf(input)

	word, ws, we := wordBounds(input[offset:], m.input.Position()-offset)
	wordStart, wordEnd = ws+offset, we+offset

	if word == "" || ('0' <= word[0] && word[0] <= '9') {
		return nil, wordStart, wordEnd
	}

	// The postfix command takes an expression argument.
	if mode == modeCtrl && wordStart > offset {
		mode = modeEval
	}

	return fuzzy.Find(word, candidates(mode, m.exec.Store())), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. The selected candidate (when tabbing) uses
// the selected style.
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

		if i > 0 && i < len(matches)-1 && used+entryWidth+ellipsisWidth > width {
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

// renderCandidate renders a single candidate with matched characters
// highlighted. Functions are displayed with a "()" suffix.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle, highlightStyle := suggestionStyle, matchStyle
	if selected {
		baseStyle, highlightStyle = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	if _, ok := lang.LookupFunc(match.Str); ok {
		b.WriteString(baseStyle.Render("()"))
	}

	return b.String()
}
