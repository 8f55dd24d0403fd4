package extract_test

import (
	"strings"
	"testing"

	"github.com/chriscorrea/warpeace/internal/extract"
)

const gutenbergHTML = `<!DOCTYPE html>
<html>
<head>
    <title>War and Peace</title>
    <style>body { font-family: serif; }</style>
</head>
<body>
    <nav><a href="#c1">Contents</a></nav>
    <script>var tracker = "battle";</script>
    <h2><a id="c1"></a>CHAPTER 1</h2>
    <p>The <strong>war</strong> began at <em>dawn</em>.</p>
    <p>See the <a href="https://example.com/map">map</a> of the front.</p>
    <h2>CHAPTER 2</h2>
    <p>Love and peace returned.</p>
    <p><img src="garden.png" alt="garden"></p>
    <hr>
    <p>*** END OF THE PROJECT GUTENBERG EBOOK WAR AND PEACE ***</p>
</body>
</html>`

func lines(t *testing.T, html string) []string {
	t.Helper()
	out, err := extract.ToText(strings.NewReader(html))
	if err != nil {
		t.Fatalf("ToText() unexpected error: %v", err)
	}
	var kept []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return kept
}

func TestToTextKeepsHeadingsAsLines(t *testing.T) {
	got := lines(t, gutenbergHTML)

	for _, want := range []string{"CHAPTER 1", "CHAPTER 2", "Love and peace returned."} {
		found := false
		for _, line := range got {
			if line == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("ToText() lines = %q, want a line %q", got, want)
		}
	}
}

func TestToTextStripsMarkup(t *testing.T) {
	joined := strings.Join(lines(t, gutenbergHTML), " ")

	tests := []struct {
		name    string
		present string
		absent  string
	}{
		{name: "emphasis removed", present: "The war began at dawn.", absent: "**war**"},
		{name: "link text kept", present: "See the map of the front.", absent: "https://example.com"},
		{name: "script dropped", absent: "tracker"},
		{name: "style dropped", absent: "font-family"},
		{name: "nav dropped", absent: "Contents"},
		{name: "images dropped", absent: "garden.png"},
		{name: "end banner survives", present: "*** END OF THE PROJECT GUTENBERG EBOOK WAR AND PEACE ***"},
		{name: "no escapes", absent: "\\"},
		{name: "no tags", absent: "<"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.present != "" && !strings.Contains(joined, tt.present) {
				t.Errorf("ToText() = %q, want it to contain %q", joined, tt.present)
			}
			if tt.absent != "" && strings.Contains(joined, tt.absent) {
				t.Errorf("ToText() = %q, want it not to contain %q", joined, tt.absent)
			}
		})
	}
}

func TestToTextBytes(t *testing.T) {
	out, err := extract.ToTextBytes([]byte("<p>CHAPTER 1 Peace.</p>"))
	if err != nil {
		t.Fatalf("ToTextBytes() unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "CHAPTER 1 Peace." {
		t.Errorf("ToTextBytes() = %q, want %q", out, "CHAPTER 1 Peace.")
	}
}

func TestIsHTML(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		contentType string
		data        string
		expected    bool
	}{
		{"html extension", "book.html", "", "CHAPTER 1", true},
		{"htm extension uppercase", "BOOK.HTM", "", "", true},
		{"txt extension wins over content", "book.txt", "", "<html><body></body></html>", false},
		{"content type header", "https://example.com/ebooks/2600", "text/html; charset=utf-8", "", true},
		{"plain content type", "https://example.com/ebooks/2600.txt.utf-8", "text/plain", "", false},
		{"sniffed html", "stdin", "", "<!DOCTYPE html><html><body>CHAPTER 1</body></html>", true},
		{"sniffed text", "stdin", "", "CHAPTER 1 It was a dark night.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extract.IsHTML(tt.source, tt.contentType, []byte(tt.data)); got != tt.expected {
				t.Errorf("IsHTML(%q, %q) = %v, want %v", tt.source, tt.contentType, got, tt.expected)
			}
		})
	}
}
