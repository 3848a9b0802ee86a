package session

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/novatech/interview-agent-go/internal/domain"
	"github.com/novatech/interview-agent-go/internal/script"
	"github.com/novatech/interview-agent-go/pkg/errors"
	"go.uber.org/zap"
)

type fakeStore struct {
	records []*domain.InterviewRecord
	nextID  int64
	err     error
}

func (f *fakeStore) Append(_ context.Context, record *domain.InterviewRecord) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	record.ID = f.nextID
	f.records = append(f.records, record)
	return f.nextID, nil
}

type fakeTrigger struct {
	dispatched []int64
}

func (f *fakeTrigger) Dispatch(recordID int64) {
	f.dispatched = append(f.dispatched, recordID)
}

func newTestSession(store *fakeStore, trigger *fakeTrigger) *Session {
	return NewSession("test-session", script.NewCatalog().Default(), store, trigger, zap.NewNop())
}

func TestSetCandidateNamePromptsForEmail(t *testing.T) {
	sess := newTestSession(&fakeStore{}, &fakeTrigger{})

	prompt, err := sess.SetCandidateName(context.Background(), "Jane Doe")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(prompt, "email") {
		t.Fatalf("prompt must name the next required slot, got %q", prompt)
	}
	if sess.State() != domain.StateAwaitingEmail {
		t.Fatalf("expected AWAITING_EMAIL, got %s", sess.State())
	}
	if sess.Profile().Answers == nil {
		t.Fatalf("name capture must initialize the answer sequence")
	}
}

func TestSetCandidateNameRejectsEmpty(t *testing.T) {
	sess := newTestSession(&fakeStore{}, &fakeTrigger{})

	_, err := sess.SetCandidateName(context.Background(), "   ")
	var validationErr *errors.ValidationError
	if !stderrors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if sess.State() != domain.StateAwaitingName {
		t.Fatalf("rejected input must not advance state, got %s", sess.State())
	}
}

func TestInputLengthLimits(t *testing.T) {
	sess := newTestSession(&fakeStore{}, &fakeTrigger{})
	ctx := context.Background()

	_, err := sess.SetCandidateName(ctx, strings.Repeat("x", 201))
	var validationErr *errors.ValidationError
	if !stderrors.As(err, &validationErr) {
		t.Fatalf("oversized name must be rejected, got %v", err)
	}

	mustAdvanceToAnswers(t, sess)

	_, err = sess.RecordAnswer(ctx, strings.Repeat("x", 4001))
	if !stderrors.As(err, &validationErr) {
		t.Fatalf("oversized answer must be rejected, got %v", err)
	}
	if len(sess.Profile().Answers) != 0 {
		t.Fatalf("rejected answer must not be stored")
	}
}

func TestSetCandidateEmailBeforeNameRejected(t *testing.T) {
	sess := newTestSession(&fakeStore{}, &fakeTrigger{})

	_, err := sess.SetCandidateEmail(context.Background(), "jane@example.com")
	var stateErr *errors.StateError
	if !stderrors.As(err, &stateErr) {
		t.Fatalf("expected StateError, got %v", err)
	}
	if sess.Profile().CandidateEmail != "" {
		t.Fatalf("email must not be stored out of order")
	}
}

func TestSetCandidateEmailNormalizesSpokenAddress(t *testing.T) {
	sess := newTestSession(&fakeStore{}, &fakeTrigger{})

	if _, err := sess.SetCandidateName(context.Background(), "Jane Doe"); err != nil {
		t.Fatalf("set name: %v", err)
	}

	prompt, err := sess.SetCandidateEmail(context.Background(), "Jane at Example dot com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := sess.Profile().CandidateEmail; got != "jane@exampledotcom" {
		t.Fatalf("unexpected normalized email: %q", got)
	}
	if !strings.Contains(prompt, "jane@exampledotcom") {
		t.Fatalf("prompt should echo the recorded address, got %q", prompt)
	}
	if sess.State() != domain.StateCollectingAnswers {
		t.Fatalf("expected COLLECTING_ANSWERS, got %s", sess.State())
	}
}

func TestRecordAnswerRequiresCollectingState(t *testing.T) {
	sess := newTestSession(&fakeStore{}, &fakeTrigger{})

	_, err := sess.RecordAnswer(context.Background(), "an array is a container")
	var stateErr *errors.StateError
	if !stderrors.As(err, &stateErr) {
		t.Fatalf("expected StateError before name capture, got %v", err)
	}
}

func TestRecordAnswerPreservesOrder(t *testing.T) {
	sess := newTestSession(&fakeStore{}, &fakeTrigger{})
	ctx := context.Background()

	mustAdvanceToAnswers(t, sess)

	for i := 1; i <= 3; i++ {
		prompt, err := sess.RecordAnswer(ctx, fmt.Sprintf("answer number %d", i))
		if err != nil {
			t.Fatalf("record answer %d: %v", i, err)
		}
		if prompt != "Answer recorded." {
			t.Fatalf("unexpected prompt: %q", prompt)
		}
	}

	answers := sess.Profile().Answers
	if len(answers) != 3 {
		t.Fatalf("expected 3 answers, got %d", len(answers))
	}
	for i, answer := range answers {
		want := fmt.Sprintf("answer number %d", i+1)
		if answer != want {
			t.Fatalf("answer %d out of order: got %q, want %q", i, answer, want)
		}
	}
}

func TestFinalizePersistsRecordAndTriggersPipeline(t *testing.T) {
	store := &fakeStore{}
	trigger := &fakeTrigger{}
	sess := newTestSession(store, trigger)
	ctx := context.Background()

	mustAdvanceToAnswers(t, sess)

	// Three answers totaling 50 words land in the second bucket.
	answers := []string{
		strings.Repeat("word ", 20),
		strings.Repeat("word ", 20),
		strings.Repeat("word ", 10),
	}
	for _, answer := range answers {
		if _, err := sess.RecordAnswer(ctx, answer); err != nil {
			t.Fatalf("record answer: %v", err)
		}
	}

	closing, err := sess.FinalizeInterview(ctx)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if !strings.Contains(closing, "NovaTech Solutions") {
		t.Fatalf("unexpected closing message: %q", closing)
	}
	if sess.State() != domain.StateFinalized {
		t.Fatalf("expected FINALIZED, got %s", sess.State())
	}

	if len(store.records) != 1 {
		t.Fatalf("expected one persisted record, got %d", len(store.records))
	}
	record := store.records[0]
	if record.CandidateName != "Jane Doe" {
		t.Fatalf("unexpected candidate name: %q", record.CandidateName)
	}
	if record.CandidateEmail != "jane@exampledotcom" {
		t.Fatalf("unexpected candidate email: %q", record.CandidateEmail)
	}
	if record.ConfidenceScore != 6 {
		t.Fatalf("expected placeholder confidence 6 for 50 words, got %d", record.ConfidenceScore)
	}
	if got := domain.SplitAnswers(record.AnswersJoined); len(got) != 3 {
		t.Fatalf("expected 3 reconstructed answers, got %d", len(got))
	}

	if len(trigger.dispatched) != 1 || trigger.dispatched[0] != record.ID {
		t.Fatalf("expected pipeline dispatched for record %d, got %v", record.ID, trigger.dispatched)
	}
}

func TestFinalizeAcceptsEmptyAnswers(t *testing.T) {
	store := &fakeStore{}
	sess := newTestSession(store, &fakeTrigger{})

	mustAdvanceToAnswers(t, sess)

	if _, err := sess.FinalizeInterview(context.Background()); err != nil {
		t.Fatalf("finalize with zero answers must succeed, got %v", err)
	}
	if store.records[0].AnswersJoined != "" {
		t.Fatalf("expected empty answers column, got %q", store.records[0].AnswersJoined)
	}
	if store.records[0].ConfidenceScore != 4 {
		t.Fatalf("expected lowest placeholder bucket, got %d", store.records[0].ConfidenceScore)
	}
}

func TestFinalizeTwiceRejected(t *testing.T) {
	store := &fakeStore{}
	sess := newTestSession(store, &fakeTrigger{})
	ctx := context.Background()

	mustAdvanceToAnswers(t, sess)
	if _, err := sess.FinalizeInterview(ctx); err != nil {
		t.Fatalf("first finalize: %v", err)
	}

	_, err := sess.FinalizeInterview(ctx)
	var stateErr *errors.StateError
	if !stderrors.As(err, &stateErr) {
		t.Fatalf("expected StateError on re-finalize, got %v", err)
	}
	if len(store.records) != 1 {
		t.Fatalf("re-finalize must not double-persist, got %d records", len(store.records))
	}
}

func TestFinalizePropagatesPersistenceFailure(t *testing.T) {
	store := &fakeStore{err: stderrors.New("connection refused")}
	trigger := &fakeTrigger{}
	sess := newTestSession(store, trigger)

	mustAdvanceToAnswers(t, sess)

	_, err := sess.FinalizeInterview(context.Background())
	var persistenceErr *errors.PersistenceError
	if !stderrors.As(err, &persistenceErr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if sess.State() != domain.StateCollectingAnswers {
		t.Fatalf("failed finalize must not transition, got %s", sess.State())
	}
	if len(trigger.dispatched) != 0 {
		t.Fatalf("pipeline must not run for unpersisted record")
	}
}

func TestPracticeScriptSkipsEmailCollection(t *testing.T) {
	catalog := script.NewCatalog()
	store := &fakeStore{}
	sess := NewSession("practice", catalog.Get(domain.QuestionSetVariantC), store, &fakeTrigger{}, zap.NewNop())

	prompt, err := sess.SetCandidateName(context.Background(), "Jane Doe")
	if err != nil {
		t.Fatalf("set name: %v", err)
	}
	if strings.Contains(prompt, "email") {
		t.Fatalf("practice script must not ask for an email, got %q", prompt)
	}
	if sess.State() != domain.StateCollectingAnswers {
		t.Fatalf("expected COLLECTING_ANSWERS, got %s", sess.State())
	}

	if _, err := sess.FinalizeInterview(context.Background()); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if store.records[0].HasEmail() {
		t.Fatalf("practice record must not carry an email")
	}
}

func mustAdvanceToAnswers(t *testing.T, sess *Session) {
	t.Helper()
	ctx := context.Background()

	if _, err := sess.SetCandidateName(ctx, "Jane Doe"); err != nil {
		t.Fatalf("set name: %v", err)
	}
	if sess.Script().CollectEmail {
		if _, err := sess.SetCandidateEmail(ctx, "jane at example dot com"); err != nil {
			t.Fatalf("set email: %v", err)
		}
	}
}
