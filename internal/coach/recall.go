// ABOUTME: Detects "show me the last chat" style requests.
// ABOUTME: Recall requests are answered from history without the model.
package coach

import (
	"regexp"
	"strconv"
	"strings"
)

var recallPhrases = []string{
	"show last chat",
	"last chat",
	"what was our last conversation?",
	"i want a last chat",
}

var recallPattern = regexp.MustCompile(`last\s+(\d+)\s+chat`)

// ParseRecall reports whether q asks to replay past exchanges and how many.
func ParseRecall(q string) (int, bool) {
	q = strings.ToLower(strings.TrimSpace(q))

	for _, phrase := range recallPhrases {
		if q == phrase {
			return 1, true
		}
	}

	m := recallPattern.FindStringSubmatch(q)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
