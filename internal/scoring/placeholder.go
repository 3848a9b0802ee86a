package scoring

import "strings"

// PlaceholderConfidence is the cheap deterministic estimate written into the
// record at finalize time, before the pipeline computes its own confidence.
// It buckets the total word count across all answers on a 0-10 scale.
func PlaceholderConfidence(answers []string) int {
	words := 0
	for _, answer := range answers {
		words += len(strings.Fields(answer))
	}

	switch {
	case words < 40:
		return 4
	case words < 80:
		return 6
	case words < 120:
		return 8
	default:
		return 9
	}
}
