package course

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/types"
)

func testRepairer(t *testing.T) *Repairer {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return NewRepairer(log)
}

func TestRepairWellFormedPassThrough(t *testing.T) {
	raw := `{"title":"Learn Gin","steps":[{"id":1,"title":"Setup","content":"Install Go"},{"id":2,"title":"Routing","content":"Define handlers"}]}`
	got := testRepairer(t).Repair(raw, "https://github.com/gin-gonic/gin")
	want := types.CourseDraft{
		Title: "Learn Gin",
		Steps: []types.Step{
			{ID: 1, Title: "Setup", Content: "Install Go"},
			{ID: 2, Title: "Routing", Content: "Define handlers"},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("well-formed input should pass through unchanged:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestRepairExtractsWrappedJSON(t *testing.T) {
	raw := `Sure! Here is your course: {"title":"X","steps":[{"title":"S1"}]}`
	got := testRepairer(t).Repair(raw, "")
	if got.Title != "X" {
		t.Fatalf("title=%q, want X", got.Title)
	}
	if len(got.Steps) != 1 {
		t.Fatalf("steps=%d, want 1", len(got.Steps))
	}
	step := got.Steps[0]
	if step.ID != 1 || step.Title != "S1" || step.Content == "" {
		t.Fatalf("step not normalized: %+v", step)
	}
}

func TestRepairRenamesSingularStepKey(t *testing.T) {
	raw := `{"title":"X","step":[{"id":1,"title":"A","content":"c"}]}`
	got := testRepairer(t).Repair(raw, "")
	if len(got.Steps) != 1 || got.Steps[0].Title != "A" {
		t.Fatalf("singular step key not renamed: %+v", got)
	}
}

func TestRepairNeverDropsSteps(t *testing.T) {
	raw := `{"title":"X","steps":[{"id":3,"title":"Has ID"},{"content":"only content"},"bare string",{}]}`
	got := testRepairer(t).Repair(raw, "")
	if len(got.Steps) != 4 {
		t.Fatalf("steps=%d, want 4 (never drop)", len(got.Steps))
	}
	if got.Steps[0].ID != 3 {
		t.Fatalf("explicit id lost: %+v", got.Steps[0])
	}
	if got.Steps[1].ID != 2 || got.Steps[1].Title != "Step 2" {
		t.Fatalf("missing id/title not synthesized: %+v", got.Steps[1])
	}
	if got.Steps[2].Content != "bare string" {
		t.Fatalf("bare string step mishandled: %+v", got.Steps[2])
	}
	for i, step := range got.Steps {
		if step.ID <= 0 || step.Title == "" || step.Content == "" {
			t.Fatalf("step %d left incomplete: %+v", i, step)
		}
	}
}

func TestRepairXMLResponseSynthesizesExplainer(t *testing.T) {
	raw := `<?xml version="1.0"?><project><doc>not json at all</doc></project>`
	got := testRepairer(t).Repair(raw, "https://docs.example.com/llms.txt")
	if len(got.Steps) != 2 {
		t.Fatalf("XML response should produce a two-step explainer, got %d steps", len(got.Steps))
	}
	if got.Title == "" {
		t.Fatal("explainer draft needs a title")
	}
}

func TestRepairGarbageFallsBackToEmptyDraft(t *testing.T) {
	cases := []struct {
		name      string
		raw       string
		sourceURL string
		wantTitle string
	}{
		{name: "plain_prose", raw: "I am unable to help with that.", sourceURL: "https://github.com/acme/widget-maker", wantTitle: "Course: widget maker"},
		{name: "empty", raw: "", sourceURL: "", wantTitle: "Generated Course"},
		{name: "broken_json", raw: `{"title": "unterminated`, sourceURL: "", wantTitle: "Generated Course"},
	}
	r := testRepairer(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := r.Repair(tc.raw, tc.sourceURL)
			if got.Steps == nil {
				t.Fatal("steps must never be nil")
			}
			if len(got.Steps) != 0 {
				t.Fatalf("garbage input should yield empty steps, got %d", len(got.Steps))
			}
			if got.Title != tc.wantTitle {
				t.Fatalf("title=%q, want %q", got.Title, tc.wantTitle)
			}
		})
	}
}

func TestRepairNeverPanics(t *testing.T) {
	inputs := []string{
		`{"steps": "not an array"}`,
		`{"steps": [null, 42, true]}`,
		`[]`,
		`null`,
		`{"title": null, "steps": null}`,
		"{{{{",
	}
	r := testRepairer(t)
	for _, raw := range inputs {
		got := r.Repair(raw, "")
		if got.Steps == nil {
			t.Fatalf("Repair(%q) returned nil steps", raw)
		}
	}
}

func TestTruncateKeepsRuneBoundaries(t *testing.T) {
	cases := []struct {
		name  string
		input string
		limit int
	}{
		{name: "two_byte_rune_split", input: strings.Repeat("é", 10), limit: 11},
		{name: "three_byte_rune_split", input: strings.Repeat("語", 5), limit: 7},
		{name: "four_byte_rune_split", input: "ab\U0001F600cd", limit: 4},
		{name: "ascii_exact", input: "abcdef", limit: 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := truncate(tc.input, tc.limit)
			if !utf8.ValidString(got) {
				t.Fatalf("truncate(%q, %d) produced invalid UTF-8: %q", tc.input, tc.limit, got)
			}
			if len(got) > tc.limit {
				t.Fatalf("len=%d exceeds limit %d", len(got), tc.limit)
			}
			if !strings.HasPrefix(tc.input, got) {
				t.Fatalf("%q is not a prefix of %q", got, tc.input)
			}
		})
	}
}

func TestRepairXMLExplainerIsValidUTF8(t *testing.T) {
	raw := `<?xml version="1.0"?><doc>` + strings.Repeat("日本語ドキュメント ", 200) + `</doc>`
	r := testRepairer(t)
	got := r.Repair(raw, "https://docs.example.com")
	if len(got.Steps) == 0 {
		t.Fatal("XML input should synthesize explainer steps")
	}
	for i, step := range got.Steps {
		if !utf8.ValidString(step.Content) {
			t.Fatalf("step %d content is invalid UTF-8", i)
		}
	}
}
