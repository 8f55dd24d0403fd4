package extract

import (
	"regexp"
	"sync"
)

// markdownPatterns holds compiled patterns for stripping converter output.
type markdownPatterns struct {
	heading    *regexp.Regexp
	setextRule *regexp.Regexp
	image      *regexp.Regexp
	link       *regexp.Regexp
	emphasis   *regexp.Regexp
}

var (
	patterns     *markdownPatterns
	patternsOnce sync.Once
)

// getPatterns returns the singleton instance of compiled markdown patterns
func getPatterns() *markdownPatterns {
	patternsOnce.Do(func() {
		patterns = &markdownPatterns{
			heading:    regexp.MustCompile(`^\s*#{1,6}\s+`),
			setextRule: regexp.MustCompile(`^\s*(?:={3,}|-{3,}|(?:\*\s*){3,})$`),
			image:      regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`),
			link:       regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`),
			emphasis:   regexp.MustCompile(`\*{1,2}([^*\s](?:[^*]*[^*\s])?)\*{1,2}`),
		}
	})
	return patterns
}
