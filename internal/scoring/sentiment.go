package scoring

import "strings"

// valence maps sentiment-bearing words to a weight in [-5, 5]. The list is
// small on purpose: answers are short transcripts and the polarity only
// feeds a coarse 0-100 confidence proxy.
var valence = map[string]int{
	"amazing":     4,
	"awesome":     4,
	"bad":         -3,
	"best":        3,
	"better":      2,
	"broken":      -3,
	"clear":       2,
	"clearly":     2,
	"comfortable": 2,
	"confident":   3,
	"confusing":   -2,
	"correct":     2,
	"difficult":   -2,
	"easy":        2,
	"efficient":   2,
	"enjoy":       2,
	"error":       -2,
	"excellent":   4,
	"fail":        -3,
	"fast":        2,
	"fine":        1,
	"good":        3,
	"great":       4,
	"happy":       3,
	"hard":        -2,
	"hate":        -4,
	"helpful":     2,
	"important":   2,
	"impossible":  -3,
	"interesting": 2,
	"like":        2,
	"love":        4,
	"nice":        2,
	"perfect":     4,
	"poor":        -3,
	"powerful":    2,
	"problem":     -2,
	"simple":      1,
	"slow":        -2,
	"strong":      2,
	"sure":        1,
	"terrible":    -4,
	"useful":      2,
	"weak":        -2,
	"well":        2,
	"worst":       -5,
	"wrong":       -3,
}

// Polarity estimates sentiment of free text as a value in [-1, 1], the
// average valence of the sentiment-bearing words it contains. Text with no
// scored words is neutral.
func Polarity(text string) float64 {
	sum := 0
	count := 0
	for _, token := range tokenize(text) {
		if v, ok := valence[token]; ok {
			sum += v
			count++
		}
	}
	if count == 0 {
		return 0
	}

	polarity := float64(sum) / float64(count*5)
	if polarity > 1 {
		return 1
	}
	if polarity < -1 {
		return -1
	}
	return polarity
}

// tokenize lowercases and splits text into letter-digit runs, dropping
// single-character tokens.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 1 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
