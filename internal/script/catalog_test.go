package script

import (
	"testing"

	"github.com/novatech/interview-agent-go/internal/domain"
)

func TestSelectByIdentity(t *testing.T) {
	catalog := NewCatalog()

	cases := []struct {
		identity string
		want     domain.QuestionSetID
	}{
		{"candidate-backend-7f3a", domain.QuestionSetVariantA},
		{"candidate-frontend-0001", domain.QuestionSetVariantB},
		{"candidate-practice", domain.QuestionSetVariantC},
		{"candidate-java-99", domain.QuestionSetDefault},
		{"candidate-BACKEND-7f3a", domain.QuestionSetVariantA},
		{"candidate-unknown-tag", domain.QuestionSetDefault},
		{"no_separator_here", domain.QuestionSetDefault},
		{"", domain.QuestionSetDefault},
	}

	for _, tc := range cases {
		got := catalog.SelectByIdentity(tc.identity)
		if got.ID != tc.want {
			t.Errorf("SelectByIdentity(%q) = %s, want %s", tc.identity, got.ID, tc.want)
		}
	}
}

func TestGetFallsBackToDefault(t *testing.T) {
	catalog := NewCatalog()

	got := catalog.Get(domain.QuestionSetID("does-not-exist"))
	if got.ID != domain.QuestionSetDefault {
		t.Fatalf("expected default fallback, got %s", got.ID)
	}
}

func TestScriptShapes(t *testing.T) {
	catalog := NewCatalog()

	def := catalog.Default()
	if def.ID != domain.QuestionSetDefault {
		t.Fatalf("unexpected default id: %s", def.ID)
	}
	if len(def.Questions) != 3 {
		t.Fatalf("default script must ask 3 questions, got %d", len(def.Questions))
	}
	if !def.CollectEmail {
		t.Fatalf("default script must collect an email")
	}

	practice := catalog.Get(domain.QuestionSetVariantC)
	if practice.CollectEmail {
		t.Fatalf("practice script must not collect an email")
	}
	if practice.Closing == "" {
		t.Fatalf("practice script must carry a closing message")
	}
}
