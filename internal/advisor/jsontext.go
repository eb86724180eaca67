package advisor

import (
	"regexp"
	"strings"
)

var fenceRE = regexp.MustCompile("```json|```")

// StripFences removes Markdown code-fence markers anywhere in the text and
// trims surrounding whitespace. Generative replies frequently wrap the
// requested JSON in ```json fences despite instructions not to.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = fenceRE.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
