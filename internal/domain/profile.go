package domain

// SessionState tracks where a candidate is in the slot-filling flow.
type SessionState string

const (
	StateAwaitingName      SessionState = "AWAITING_NAME"
	StateAwaitingEmail     SessionState = "AWAITING_EMAIL"
	StateCollectingAnswers SessionState = "COLLECTING_ANSWERS"
	StateFinalized         SessionState = "FINALIZED"
)

func (s SessionState) String() string {
	return string(s)
}

// InterviewProfile is the mutable per-session data owned by exactly one
// active session. Answers stays nil until the candidate name is captured;
// name capture initializes it to an empty slice.
type InterviewProfile struct {
	CandidateName  string
	CandidateEmail string
	Answers        []string
	QuestionSetID  QuestionSetID
}

// HasEmail reports whether an address was collected for this candidate.
// Question sets that skip email collection leave it empty.
func (p *InterviewProfile) HasEmail() bool {
	return p != nil && p.CandidateEmail != ""
}
