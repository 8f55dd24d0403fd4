// Package extract turns HTML book editions into the plain text lines that the
// chapter pipeline expects. Plain-text books pass through untouched.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// noiseSelector lists elements that never carry chapter text.
const noiseSelector = "head, script, style, nav, noscript, svg"

// IsHTML reports whether a book source holds HTML, judging first by file extension,
// then by content type, then by sniffing the leading bytes.
func IsHTML(name, contentType string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".htm", ".html", ".xhtml":
		return true
	case ".txt":
		return false
	}

	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return strings.HasPrefix(strings.ToLower(contentType), "text/html") ||
		strings.HasPrefix(strings.ToLower(contentType), "application/xhtml")
}

// ToText converts an HTML book to text with one block element per line. Heading
// markers, emphasis and link syntax are removed so that a heading such as
// <h2>CHAPTER 3</h2> survives as the line "CHAPTER 3".
func ToText(content io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	removed := doc.Find(noiseSelector).Remove()
	slog.Debug("Removed non-text HTML elements", "count", removed.Length())

	body := doc.Find("body")
	if body.Length() == 0 {
		body = doc.Selection
	}
	html, err := body.Html()
	if err != nil {
		return "", fmt.Errorf("failed to serialize HTML body: %w", err)
	}

	// escaping is off so the literal "*** END OF" banner reaches the segmenter
	converter := md.NewConverter("", true, &md.Options{
		HeadingStyle:    "atx",
		EmDelimiter:     "*",
		StrongDelimiter: "**",
		EscapeMode:      "disabled",
	})
	markdown, err := converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to text: %w", err)
	}

	return stripMarkdown(markdown), nil
}

// ToTextBytes is ToText for an in-memory document.
func ToTextBytes(data []byte) (string, error) {
	return ToText(bytes.NewReader(data))
}

// stripMarkdown removes the markup html-to-markdown adds while keeping line structure.
func stripMarkdown(markdown string) string {
	p := getPatterns()
	lines := strings.Split(markdown, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		if p.setextRule.MatchString(line) {
			continue
		}
		line = p.heading.ReplaceAllString(line, "")
		line = p.image.ReplaceAllString(line, "")
		line = p.link.ReplaceAllString(line, "$1")
		line = p.emphasis.ReplaceAllString(line, "$1")
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
