// Package text provides the line and token normalization shared by term lists and books.
//
// Term files and book files pass through the same normalizer so that a term and a
// chapter token describing the same word always compare equal:
//
//	lines := text.CleanLines(text.SplitLines(raw))
//	joined := text.JoinLines(lines)
//	tokens := text.Tokenize(chapterBody)
package text

import (
	"strings"
	"unicode"
)

// SplitLines breaks raw file content into lines, tolerating CRLF line endings.
func SplitLines(content string) []string {
	if content == "" {
		return []string{}
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.Split(content, "\n")
}

// CleanLines returns the non-blank lines of the input, each trimmed of surrounding
// whitespace, in their original order. A line is blank when it is empty after trimming.
func CleanLines(lines []string) []string {
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, trimmed)
	}
	return cleaned
}

// JoinLines joins cleaned lines with a single space so that a chapter marker is
// never formed or destroyed across a line boundary.
func JoinLines(lines []string) string {
	return strings.Join(lines, " ")
}

// Tokenize splits a chapter body on single spaces and normalizes every piece.
// Pieces that normalize to the empty string are kept in place; positional scoring
// relies on indices matching the original space-separated sequence.
func Tokenize(body string) []string {
	parts := strings.Split(body, " ")
	tokens := make([]string, len(parts))
	for i, part := range parts {
		tokens[i] = NormalizeToken(part)
	}
	return tokens
}

// NormalizeToken removes every rune that is not a letter, digit or underscore and
// lowercases the rest. Applying it twice yields the same value as applying it once.
func NormalizeToken(token string) string {
	var b strings.Builder
	b.Grow(len(token))
	for _, r := range token {
		if isWordRune(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
