package report

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/novatech/interview-agent-go/internal/domain"
	"github.com/novatech/interview-agent-go/internal/service/ai"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	text   string
	err    error
	prompt string
}

func (f *fakeGenerator) GenerateText(_ context.Context, prompt string, _ *ai.GenerateOptions) (string, *ai.GenerateMetadata, error) {
	f.prompt = prompt
	if f.err != nil {
		return "", nil, f.err
	}
	return f.text, &ai.GenerateMetadata{Provider: "fake", Model: "fake-model"}, nil
}

func testRecord() *domain.InterviewRecord {
	return &domain.InterviewRecord{
		ID:             7,
		CandidateName:  "Jane Doe",
		CandidateEmail: "jane@example.com",
		AnswersJoined:  "An array is a contiguous block of memory. | O(n) describes linear growth.",
	}
}

func TestComposeRendersDashboard(t *testing.T) {
	generator := &fakeGenerator{text: "<h3>🚀 Executive Summary</h3><p>Strong showing.</p>"}
	composer := NewComposer(generator, zap.NewNop())

	card := domain.Scorecard{Confidence: 80, Knowledge: 84}
	rep, err := composer.Compose(context.Background(), testRecord(), card)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	if rep.Recipient != "jane@example.com" {
		t.Fatalf("unexpected recipient: %q", rep.Recipient)
	}
	if rep.Subject != "🌟 Interview Result: Jane Doe (Score: 82%)" {
		t.Fatalf("unexpected subject: %q", rep.Subject)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rep.HTML))
	if err != nil {
		t.Fatalf("parse report html: %v", err)
	}

	badgeText := doc.Find("span").First().Text()
	if badgeText != "HIRE RECOMMENDED" {
		t.Fatalf("unexpected badge: %q", badgeText)
	}

	body := doc.Text()
	for _, want := range []string{"Technical Knowledge", "Communication Confidence", "84%", "80%", "Strong showing.", "NovaTech Solutions"} {
		if !strings.Contains(body, want) {
			t.Errorf("report body missing %q", want)
		}
	}

	if !strings.Contains(generator.prompt, "Jane Doe") {
		t.Fatalf("narrative prompt must carry the candidate name")
	}
	if !strings.Contains(generator.prompt, "Knowledge 84/100") {
		t.Fatalf("narrative prompt must carry the scores, got %q", generator.prompt)
	}
}

func TestComposeSubjectBands(t *testing.T) {
	composer := NewComposer(&fakeGenerator{text: "<p>ok</p>"}, zap.NewNop())
	ctx := context.Background()

	low, err := composer.Compose(ctx, testRecord(), domain.Scorecard{Confidence: 30, Knowledge: 40})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if !strings.HasPrefix(low.Subject, "📊") {
		t.Fatalf("low score must use the neutral emoji, got %q", low.Subject)
	}

	high, err := composer.Compose(ctx, testRecord(), domain.Scorecard{Confidence: 90, Knowledge: 90})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if !strings.HasPrefix(high.Subject, "🌟") {
		t.Fatalf("high score must use the star emoji, got %q", high.Subject)
	}
}

func TestComposeBadgeBands(t *testing.T) {
	composer := NewComposer(&fakeGenerator{text: "<p>ok</p>"}, zap.NewNop())
	ctx := context.Background()

	cases := []struct {
		card  domain.Scorecard
		badge string
	}{
		{domain.Scorecard{Confidence: 80, Knowledge: 70}, "HIRE RECOMMENDED"},
		{domain.Scorecard{Confidence: 50, Knowledge: 50}, "UNDER REVIEW"},
		{domain.Scorecard{Confidence: 20, Knowledge: 30}, "NEEDS IMPROVEMENT"},
	}

	for _, tc := range cases {
		rep, err := composer.Compose(ctx, testRecord(), tc.card)
		if err != nil {
			t.Fatalf("compose: %v", err)
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(rep.HTML))
		if err != nil {
			t.Fatalf("parse report html: %v", err)
		}
		if got := doc.Find("span").First().Text(); got != tc.badge {
			t.Errorf("average %d: badge %q, want %q", tc.card.Average(), got, tc.badge)
		}
	}
}

func TestComposeStripsCodeFences(t *testing.T) {
	generator := &fakeGenerator{text: "```html\n<p>Fenced feedback.</p>\n```"}
	composer := NewComposer(generator, zap.NewNop())

	rep, err := composer.Compose(context.Background(), testRecord(), domain.Scorecard{Confidence: 60, Knowledge: 60})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if strings.Contains(rep.HTML, "```") {
		t.Fatalf("fence markers must be stripped from the report body")
	}
	if !strings.Contains(rep.HTML, "<p>Fenced feedback.</p>") {
		t.Fatalf("fenced narrative content missing from report body")
	}
}

func TestComposeFallsBackOnGeneratorError(t *testing.T) {
	generator := &fakeGenerator{err: stderrors.New("quota exhausted")}
	composer := NewComposer(generator, zap.NewNop())

	rep, err := composer.Compose(context.Background(), testRecord(), domain.Scorecard{Confidence: 60, Knowledge: 60})
	if err != nil {
		t.Fatalf("narrative failure must not fail composition, got %v", err)
	}
	if !strings.Contains(rep.HTML, "AI Analysis unavailable.") {
		t.Fatalf("expected placeholder narrative in report body")
	}
}

func TestComposeWithoutGenerator(t *testing.T) {
	composer := NewComposer(nil, zap.NewNop())

	rep, err := composer.Compose(context.Background(), testRecord(), domain.Scorecard{Confidence: 60, Knowledge: 60})
	if err != nil {
		t.Fatalf("compose without generator: %v", err)
	}
	if !strings.Contains(rep.HTML, "AI Analysis unavailable.") {
		t.Fatalf("expected placeholder narrative when no generator is configured")
	}
}
