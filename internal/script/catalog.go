package script

import (
	"strings"

	"github.com/novatech/interview-agent-go/internal/domain"
	"github.com/novatech/interview-agent-go/internal/util"
)

// IdentitySeparator splits a connecting participant identity into segments.
// The second segment tags the question set, e.g. "candidate-backend-7f3a".
const IdentitySeparator = "-"

// Catalog is the immutable table of interview scripts, loaded once at
// startup. Selection is a pure lookup with an explicit default fallback.
type Catalog struct {
	sets  map[domain.QuestionSetID]*domain.QuestionSet
	tags  map[string]domain.QuestionSetID
	defID domain.QuestionSetID
}

// NewCatalog builds the fixed script table.
func NewCatalog() *Catalog {
	sets := map[domain.QuestionSetID]*domain.QuestionSet{
		domain.QuestionSetDefault: {
			ID:   domain.QuestionSetDefault,
			Role: "Java Software Engineer",
			Instructions: "You are Alex, an AI interviewer at NovaTech Solutions. " +
				"Greet the candidate, collect their full name and email, introduce the role, " +
				"ask each question in order, record every answer, then finalize.",
			Questions: []string{
				"What is an array?",
				"What is the difference between an Array and an ArrayList?",
				"What is time complexity?",
			},
			CollectEmail: true,
			Closing: "Interview completed. You will receive your detailed analysis via email shortly. " +
				"Thank you for interviewing with NovaTech Solutions.",
		},
		domain.QuestionSetVariantA: {
			ID:   domain.QuestionSetVariantA,
			Role: "Backend Engineer",
			Instructions: "You are Alex, an AI interviewer at NovaTech Solutions. " +
				"Greet the candidate, collect their full name and email, introduce the backend role, " +
				"ask each question in order, record every answer, then finalize.",
			Questions: []string{
				"What is a hash map and when would you use one?",
				"Explain the difference between a process and a thread.",
				"What does Big O notation describe?",
			},
			CollectEmail: true,
			Closing: "Interview completed. You will receive your detailed analysis via email shortly. " +
				"Thank you for interviewing with NovaTech Solutions.",
		},
		domain.QuestionSetVariantB: {
			ID:   domain.QuestionSetVariantB,
			Role: "Frontend Engineer",
			Instructions: "You are Alex, an AI interviewer at NovaTech Solutions. " +
				"Greet the candidate, collect their full name and email, introduce the frontend role, " +
				"ask each question in order, record every answer, then finalize.",
			Questions: []string{
				"What is the difference between a list and an array in JavaScript terms?",
				"What is memory layout and why does contiguous storage matter?",
				"How would you reason about the time complexity of a nested loop?",
			},
			CollectEmail: true,
			Closing: "Interview completed. You will receive your detailed analysis via email shortly. " +
				"Thank you for interviewing with NovaTech Solutions.",
		},
		// Practice rounds skip email collection: no address means no
		// report delivery downstream.
		domain.QuestionSetVariantC: {
			ID:   domain.QuestionSetVariantC,
			Role: "Practice Round",
			Instructions: "You are Alex, an AI interviewer at NovaTech Solutions running a practice round. " +
				"Greet the candidate, collect their full name, ask each question in order, " +
				"record every answer, then finalize. Do not ask for an email address.",
			Questions: []string{
				"What is an array?",
				"What is time complexity?",
			},
			CollectEmail: false,
			Closing:      "Practice round completed. Thank you for interviewing with NovaTech Solutions.",
		},
	}

	return &Catalog{
		sets: sets,
		tags: map[string]domain.QuestionSetID{
			"default":  domain.QuestionSetDefault,
			"java":     domain.QuestionSetDefault,
			"backend":  domain.QuestionSetVariantA,
			"frontend": domain.QuestionSetVariantB,
			"practice": domain.QuestionSetVariantC,
		},
		defID: domain.QuestionSetDefault,
	}
}

// Get returns the script for an id, falling back to the default set.
func (c *Catalog) Get(id domain.QuestionSetID) *domain.QuestionSet {
	if set, ok := c.sets[id]; ok {
		return set
	}
	return c.sets[c.defID]
}

// Default returns the baseline script.
func (c *Catalog) Default() *domain.QuestionSet {
	return c.sets[c.defID]
}

// SelectByIdentity resolves the script for a connecting participant
// identity. The identity is split on IdentitySeparator and the second
// segment keys the tag table; anything absent or unrecognized selects the
// default script.
func (c *Catalog) SelectByIdentity(identity string) *domain.QuestionSet {
	parts := strings.Split(identity, IdentitySeparator)
	if len(parts) < 2 {
		return c.Default()
	}

	tag := util.Normalize(parts[1])
	if id, ok := c.tags[tag]; ok {
		return c.sets[id]
	}
	return c.Default()
}
