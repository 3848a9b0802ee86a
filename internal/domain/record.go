package domain

import (
	"strings"
	"time"
)

// AnswerDelimiter joins individual answers into the single answers column.
// The delimiter is not escaped: an answer containing the exact sequence
// makes reconstruction ambiguous (known fragility, kept for row
// compatibility with the original table layout).
const AnswerDelimiter = " | "

// InterviewRecord is the immutable row persisted when a session finalizes.
// ConfidenceScore holds the cheap word-count estimate written at finalize
// time; the post-interview pipeline computes its own richer confidence
// independently and the two are distinct values.
type InterviewRecord struct {
	ID              int64
	CandidateName   string
	CandidateEmail  string
	AnswersJoined   string
	ConfidenceScore int
	CreatedAt       time.Time
}

// HasEmail reports whether the record carries a deliverable address.
func (r *InterviewRecord) HasEmail() bool {
	return r != nil && strings.TrimSpace(r.CandidateEmail) != ""
}

// JoinAnswers renders an answer sequence into the stored column form.
func JoinAnswers(answers []string) string {
	return strings.Join(answers, AnswerDelimiter)
}

// SplitAnswers is the inverse of JoinAnswers, modulo the delimiter
// fragility documented on AnswerDelimiter.
func SplitAnswers(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, AnswerDelimiter)
}
