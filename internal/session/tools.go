package session

import (
	"context"

	"github.com/novatech/interview-agent-go/pkg/errors"
)

func stringParam(params map[string]any, key string) (string, error) {
	raw, ok := params[key]
	if !ok {
		return "", errors.NewValidationError("missing parameter", key, nil)
	}
	value, ok := raw.(string)
	if !ok {
		return "", errors.NewValidationError("parameter must be a string", key, raw)
	}
	return value, nil
}

type setCandidateNameTool struct{}

func (t *setCandidateNameTool) Name() string { return ToolSetCandidateName }

func (t *setCandidateNameTool) Description() string {
	return "Stores the candidate's full name and starts the interview flow"
}

func (t *setCandidateNameTool) Invoke(ctx context.Context, sess *Session, params map[string]any) (string, error) {
	name, err := stringParam(params, "name")
	if err != nil {
		return "", err
	}
	return sess.SetCandidateName(ctx, name)
}

type setCandidateEmailTool struct{}

func (t *setCandidateEmailTool) Name() string { return ToolSetCandidateEmail }

func (t *setCandidateEmailTool) Description() string {
	return "Normalizes and stores the candidate's email address"
}

func (t *setCandidateEmailTool) Invoke(ctx context.Context, sess *Session, params map[string]any) (string, error) {
	email, err := stringParam(params, "email")
	if err != nil {
		return "", err
	}
	return sess.SetCandidateEmail(ctx, email)
}

type recordAnswerTool struct{}

func (t *recordAnswerTool) Name() string { return ToolRecordAnswer }

func (t *recordAnswerTool) Description() string {
	return "Appends one candidate answer in question order"
}

func (t *recordAnswerTool) Invoke(ctx context.Context, sess *Session, params map[string]any) (string, error) {
	answer, err := stringParam(params, "answer")
	if err != nil {
		return "", err
	}
	return sess.RecordAnswer(ctx, answer)
}

type finalizeInterviewTool struct{}

func (t *finalizeInterviewTool) Name() string { return ToolFinalizeInterview }

func (t *finalizeInterviewTool) Description() string {
	return "Persists the interview record and triggers the report pipeline"
}

func (t *finalizeInterviewTool) Invoke(ctx context.Context, sess *Session, _ map[string]any) (string, error) {
	return sess.FinalizeInterview(ctx)
}
