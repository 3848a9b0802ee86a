package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/novatech/interview-agent-go/internal/constants"
	"github.com/novatech/interview-agent-go/internal/domain"
	"github.com/novatech/interview-agent-go/internal/scoring"
	"github.com/novatech/interview-agent-go/internal/util"
	"github.com/novatech/interview-agent-go/pkg/errors"
	"go.uber.org/zap"
)

// RecordStore is the append-only persistence gateway a session writes its
// finished interview through.
type RecordStore interface {
	Append(ctx context.Context, record *domain.InterviewRecord) (int64, error)
}

// ReportTrigger kicks off the post-interview pipeline for a persisted
// record. Implementations own their failure domain: a trigger must never
// surface an error back into finalize.
type ReportTrigger interface {
	Dispatch(recordID int64)
}

// Session drives the ordered slot-filling flow for one candidate
// conversation: name, optional email, answers, finalize. It is mutated by
// sequential tool invocations from a single caller; there is no internal
// locking.
type Session struct {
	id      string
	state   domain.SessionState
	profile domain.InterviewProfile
	script  *domain.QuestionSet
	store   RecordStore
	trigger ReportTrigger
	logger  *zap.Logger
}

func NewSession(id string, script *domain.QuestionSet, store RecordStore, trigger ReportTrigger, logger *zap.Logger) *Session {
	return &Session{
		id:    id,
		state: domain.StateAwaitingName,
		profile: domain.InterviewProfile{
			QuestionSetID: script.ID,
		},
		script:  script,
		store:   store,
		trigger: trigger,
		logger:  logger.With(zap.String("session_id", id)),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) State() domain.SessionState {
	return s.state
}

// Script returns the immutable question set selected for this session.
func (s *Session) Script() *domain.QuestionSet {
	return s.script
}

// Profile returns a copy of the current slot values.
func (s *Session) Profile() domain.InterviewProfile {
	return s.profile
}

// SetCandidateName captures the candidate's name, initializes the answer
// sequence and advances to email collection (or straight to questions for
// scripts that skip email). The returned string is the verbatim next-turn
// prompt; it names the next required slot.
func (s *Session) SetCandidateName(ctx context.Context, name string) (string, error) {
	if s.state != domain.StateAwaitingName {
		return "", errors.NewStateError(
			fmt.Sprintf("candidate name is not expected in state %s", s.state),
			ToolSetCandidateName, s.state.String(),
		)
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", errors.NewValidationError("candidate name must not be empty", "name", name)
	}
	if len(trimmed) > constants.InputLimits.MaxNameLength {
		return "", errors.NewValidationError("candidate name is too long", "name", len(trimmed))
	}

	s.profile.CandidateName = trimmed
	s.profile.Answers = []string{}

	if s.script.CollectEmail {
		s.state = domain.StateAwaitingEmail
		s.logger.Info("Candidate name captured", zap.String("state", s.state.String()))
		return fmt.Sprintf("Thanks %s. Now, could you please state your email address for the results?", trimmed), nil
	}

	s.state = domain.StateCollectingAnswers
	s.logger.Info("Candidate name captured", zap.String("state", s.state.String()))
	return fmt.Sprintf("Thanks %s. Let's begin the interview.", trimmed), nil
}

// SetCandidateEmail normalizes and stores the spoken address, then opens
// answer collection. Normalization is best effort: malformed addresses are
// accepted silently.
func (s *Session) SetCandidateEmail(ctx context.Context, email string) (string, error) {
	if s.state != domain.StateAwaitingEmail {
		return "", errors.NewStateError(
			fmt.Sprintf("candidate email is not expected in state %s", s.state),
			ToolSetCandidateEmail, s.state.String(),
		)
	}

	normalized := util.NormalizeEmail(email)
	if normalized == "" {
		return "", errors.NewValidationError("candidate email must not be empty", "email", email)
	}

	s.profile.CandidateEmail = normalized
	s.state = domain.StateCollectingAnswers

	s.logger.Info("Candidate email captured", zap.String("email", normalized))
	return fmt.Sprintf("Email recorded as %s. Let's begin the interview.", normalized), nil
}

// RecordAnswer appends one spoken answer in order. The session does not
// bound the answer count; the driving script decides how many questions to
// ask.
func (s *Session) RecordAnswer(ctx context.Context, answer string) (string, error) {
	if s.state != domain.StateCollectingAnswers {
		return "", errors.NewStateError(
			fmt.Sprintf("answers are not expected in state %s", s.state),
			ToolRecordAnswer, s.state.String(),
		)
	}

	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return "", errors.NewValidationError("answer must not be empty", "answer", answer)
	}
	if len(trimmed) > constants.InputLimits.MaxAnswerLength {
		return "", errors.NewValidationError("answer is too long", "answer", len(trimmed))
	}

	if s.profile.Answers == nil {
		// Defensive: name capture initializes the slice, but a missed
		// transition must not lose an answer.
		s.profile.Answers = []string{}
	}
	s.profile.Answers = append(s.profile.Answers, trimmed)

	s.logger.Info("Answer recorded",
		zap.Int("answer_count", len(s.profile.Answers)),
		zap.String("preview", util.TruncateString(trimmed, 80)),
	)
	return "Answer recorded.", nil
}

// FinalizeInterview converts the profile into an immutable record, persists
// it and hands the record id to the report trigger. Persistence failure is
// the one error that propagates; the triggered pipeline cannot invalidate
// the already-persisted record. An empty answer list is accepted.
func (s *Session) FinalizeInterview(ctx context.Context) (string, error) {
	if s.state != domain.StateCollectingAnswers {
		return "", errors.NewStateError(
			fmt.Sprintf("finalize is not expected in state %s", s.state),
			ToolFinalizeInterview, s.state.String(),
		)
	}

	record := &domain.InterviewRecord{
		CandidateName:   s.profile.CandidateName,
		CandidateEmail:  s.profile.CandidateEmail,
		AnswersJoined:   domain.JoinAnswers(s.profile.Answers),
		ConfidenceScore: scoring.PlaceholderConfidence(s.profile.Answers),
	}

	id, err := s.store.Append(ctx, record)
	if err != nil {
		s.logger.Error("Failed to persist interview record", zap.Error(err))
		return "", errors.NewPersistenceError("failed to persist interview record", "append", err)
	}

	s.state = domain.StateFinalized
	s.logger.Info("Interview finalized",
		zap.Int64("record_id", id),
		zap.Int("answer_count", len(s.profile.Answers)),
		zap.Int("confidence_placeholder", record.ConfidenceScore),
	)

	if s.trigger != nil {
		s.trigger.Dispatch(id)
	}

	return s.script.Closing, nil
}
