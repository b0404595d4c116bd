package expression

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSimilarDistance bounds what counts as a near-duplicate.
const maxSimilarDistance = 2

// Similar lists expressions other than skipID whose decoded text is within a
// small edit distance of text. Exact matches come first.
func Similar(list []Expression, skipID, text string) []string {
	needle := strings.ToLower(strings.TrimSpace(Decode(text)))
	if needle == "" {
		return nil
	}
	var exact, near []string
	for _, e := range list {
		if e.ID == skipID {
			continue
		}
		other := strings.ToLower(Decode(e.Expression))
		if other == needle {
			exact = append(exact, e.Expression)
			continue
		}
		if len(needle) <= maxSimilarDistance || len(other) <= maxSimilarDistance {
			continue
		}
		if levenshtein.ComputeDistance(needle, other) <= maxSimilarDistance {
			near = append(near, e.Expression)
		}
	}
	return append(exact, near...)
}
