package scoring

import (
	"math"
	"strings"

	"github.com/novatech/interview-agent-go/internal/constants"
	"github.com/novatech/interview-agent-go/internal/domain"
	"github.com/novatech/interview-agent-go/internal/util"
	"go.uber.org/zap"
)

// idealKeywords is the fixed reference corpus a candidate's answers are
// compared against for the knowledge score.
var idealKeywords = []string{
	"array", "memory", "contiguous", "index", "list", "dynamic", "resize",
	"complexity", "time", "space", "big o", "notation", "linear", "constant",
	"java", "class", "object", "system",
}

// stopwords are dropped before vectorizing either side of the comparison.
var stopwords = map[string]struct{}{
	"am": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"been": {}, "but": {}, "by": {}, "can": {}, "could": {}, "did": {},
	"do": {}, "does": {}, "for": {}, "from": {}, "had": {}, "has": {},
	"have": {}, "he": {}, "her": {}, "his": {}, "how": {}, "if": {},
	"in": {}, "into": {}, "is": {}, "it": {}, "its": {}, "me": {},
	"my": {}, "no": {}, "not": {}, "of": {}, "on": {}, "or": {},
	"our": {}, "she": {}, "so": {}, "than": {}, "that": {}, "the": {},
	"their": {}, "them": {}, "then": {}, "there": {}, "these": {},
	"they": {}, "this": {}, "to": {}, "us": {}, "was": {}, "we": {},
	"were": {}, "what": {}, "when": {}, "which": {}, "who": {}, "will": {},
	"with": {}, "would": {}, "you": {}, "your": {},
}

// Engine computes the two post-interview scores from stored answer text.
// It never returns an error past its boundary: degenerate input degrades
// to the configured fallback.
type Engine struct {
	ideal  map[string]int
	logger *zap.Logger
}

func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{
		ideal:  termCounts(strings.Join(idealKeywords, " ")),
		logger: logger,
	}
}

// Score evaluates one record's concatenated answer text.
func (e *Engine) Score(text string) domain.Scorecard {
	card := domain.Scorecard{
		Confidence: e.ConfidenceScore(text),
		Knowledge:  e.KnowledgeScore(text),
	}

	e.logger.Debug("Scorecard computed",
		zap.Int("confidence", card.Confidence),
		zap.Int("knowledge", card.Knowledge),
	)

	return card
}

// ConfidenceScore rescales sentiment polarity from [-1, 1] to [0, 100].
func (e *Engine) ConfidenceScore(text string) int {
	score := int(math.Round((Polarity(text) + 1) * 50))
	return util.Clamp(score, 0, 100)
}

// KnowledgeScore measures bag-of-words cosine similarity between the answer
// text and the ideal-keyword corpus, scaled to 0-100 and amplified to
// compensate for the short reference corpus. Empty or stop-word-only text
// falls back to the fixed low score.
func (e *Engine) KnowledgeScore(text string) int {
	answer := termCounts(text)

	similarity, ok := cosine(e.ideal, answer)
	if !ok {
		e.logger.Debug("Knowledge scoring degenerate input, using fallback",
			zap.Int("fallback", constants.ScoringConfig.KnowledgeFallback),
		)
		return constants.ScoringConfig.KnowledgeFallback
	}

	score := int(similarity * 100)
	score *= constants.ScoringConfig.KnowledgeAmplification
	return util.Min(score, constants.ScoringConfig.KnowledgeCap)
}

// termCounts builds a bag-of-words vector, stopwords removed.
func termCounts(text string) map[string]int {
	counts := make(map[string]int)
	for _, token := range tokenize(text) {
		if _, skip := stopwords[token]; skip {
			continue
		}
		counts[token]++
	}
	return counts
}

// cosine returns the similarity of two count vectors. The second return is
// false when either vector is empty and no similarity is defined.
func cosine(a, b map[string]int) (float64, bool) {
	if len(a) == 0 || len(b) == 0 {
		return 0, false
	}

	dot := 0
	for term, av := range a {
		if bv, ok := b[term]; ok {
			dot += av * bv
		}
	}

	normA := 0.0
	for _, v := range a {
		normA += float64(v * v)
	}
	normB := 0.0
	for _, v := range b {
		normB += float64(v * v)
	}

	return float64(dot) / (math.Sqrt(normA) * math.Sqrt(normB)), true
}
