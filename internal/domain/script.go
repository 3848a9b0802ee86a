package domain

// QuestionSetID names one of the fixed interview scripts.
type QuestionSetID string

const (
	QuestionSetDefault  QuestionSetID = "default"
	QuestionSetVariantA QuestionSetID = "variant-a"
	QuestionSetVariantB QuestionSetID = "variant-b"
	QuestionSetVariantC QuestionSetID = "variant-c"
)

// QuestionSet is one immutable interview script. The catalog is loaded at
// startup and never mutated; selection happens once per session.
type QuestionSet struct {
	ID           QuestionSetID
	Role         string
	Instructions string
	Questions    []string
	CollectEmail bool
	Closing      string
}
