package course

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/source"
	"github.com/repotutor/repotutor-backend/internal/types"
)

// Repairer coerces raw model output into a schema-valid course draft.
// It never fails: a partially broken response is still more useful to
// the caller than an aborted request, so every strategy degrades into
// the next one and the last resort is an empty-steps draft.
type Repairer struct {
	log *logger.Logger
}

func NewRepairer(log *logger.Logger) *Repairer {
	return &Repairer{log: log.With("service", "Repairer")}
}

var jsonBlockRe = regexp.MustCompile(`\{[\s\S]*\}`)

// Repair runs the ordered strategy chain:
// strict parse, brace extraction, step-key rename, synthesis,
// step normalization, final validation with fallback.
func (r *Repairer) Repair(raw, sourceURL string) types.CourseDraft {
	obj, ok := parseStrict(raw)
	if !ok {
		obj, ok = extractJSONBlock(raw)
	}
	if ok {
		obj = renameStepKey(obj)
	}
	if !ok || !hasStepsArray(obj) {
		r.log.Warn("model output had no usable steps array, synthesizing draft",
			"source_url", sourceURL,
			"output_len", len(raw),
		)
		return synthesize(raw, sourceURL)
	}

	draft := normalizeSteps(obj)
	draft.Title = fallbackTitle(draft.Title, sourceURL)
	if err := validateDraft(draft); err != nil {
		r.log.Warn("normalized draft failed validation, degrading", "error", err)
		return types.CourseDraft{Title: fallbackTitle(draft.Title, sourceURL), Steps: []types.Step{}}
	}
	return draft
}

// parseStrict accepts only a full-text JSON object.
func parseStrict(raw string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &obj); err != nil {
		return nil, false
	}
	return obj, obj != nil
}

// extractJSONBlock pulls the first {...} span out of surrounding prose
// ("Sure! Here is your course: {...}") and parses that.
func extractJSONBlock(raw string) (map[string]any, bool) {
	match := jsonBlockRe.FindString(raw)
	if match == "" {
		return nil, false
	}
	return parseStrict(match)
}

// renameStepKey fixes the most common shape deviation: a singular
// "step" key where "steps" was asked for.
func renameStepKey(obj map[string]any) map[string]any {
	if obj == nil {
		return obj
	}
	if _, hasSteps := obj["steps"]; hasSteps {
		return obj
	}
	if step, hasStep := obj["step"]; hasStep {
		obj["steps"] = step
		delete(obj, "step")
	}
	return obj
}

func hasStepsArray(obj map[string]any) bool {
	steps, ok := obj["steps"].([]any)
	return ok && steps != nil
}

// synthesize builds a draft from nothing usable. XML-flavored output
// gets a short explanatory course; anything else gets an empty-steps
// draft titled from the source.
func synthesize(raw, sourceURL string) types.CourseDraft {
	if source.LooksLikeXML(raw) {
		return types.CourseDraft{
			Title: "Understanding This XML-Formatted Source",
			Steps: []types.Step{
				{
					ID:      1,
					Title:   "XML Format Detected",
					Content: "The source returned XML-structured data instead of the requested course content. The sections below summarize what could be read from it.\n\n" + truncate(raw, 2000),
				},
				{
					ID:      2,
					Title:   "Next Steps",
					Content: "Review the extracted sections above, then regenerate the course with a more specific context or a different source URL for better results.",
				},
			},
		}
	}
	return types.CourseDraft{
		Title: fallbackTitle("", sourceURL),
		Steps: []types.Step{},
	}
}

// normalizeSteps fills in whatever fields each step is missing rather
// than dropping the step.
func normalizeSteps(obj map[string]any) types.CourseDraft {
	draft := types.CourseDraft{Steps: []types.Step{}}
	if title, ok := obj["title"].(string); ok {
		draft.Title = strings.TrimSpace(title)
	}

	rawSteps, _ := obj["steps"].([]any)
	for i, rawStep := range rawSteps {
		step := types.Step{ID: i + 1}
		if m, ok := rawStep.(map[string]any); ok {
			if id, ok := m["id"].(float64); ok && int(id) > 0 {
				step.ID = int(id)
			}
			if title, ok := m["title"].(string); ok {
				step.Title = strings.TrimSpace(title)
			}
			if content, ok := m["content"].(string); ok {
				step.Content = strings.TrimSpace(content)
			}
		} else if s, ok := rawStep.(string); ok {
			step.Content = strings.TrimSpace(s)
		}
		if step.Title == "" {
			step.Title = fmt.Sprintf("Step %d", i+1)
		}
		if step.Content == "" {
			step.Content = "No content was generated for this step."
		}
		draft.Steps = append(draft.Steps, step)
	}
	return draft
}

// validateDraft is the final schema check. Normalization should make
// this pass; the fallback exists for shapes nobody anticipated.
func validateDraft(draft types.CourseDraft) error {
	if strings.TrimSpace(draft.Title) == "" {
		return fmt.Errorf("draft title is empty")
	}
	if draft.Steps == nil {
		return fmt.Errorf("draft steps is nil")
	}
	for i, step := range draft.Steps {
		if step.ID <= 0 || step.Title == "" || step.Content == "" {
			return fmt.Errorf("step %d incomplete", i)
		}
	}
	return nil
}

func fallbackTitle(current, sourceURL string) string {
	if strings.TrimSpace(current) != "" {
		return strings.TrimSpace(current)
	}
	if name := sourceName(sourceURL); name != "" {
		return "Course: " + name
	}
	return "Generated Course"
}

// sourceName derives a readable name from the source URL's last path
// segment (or host, for bare domains).
func sourceName(sourceURL string) string {
	trimmed := strings.TrimSpace(sourceURL)
	if trimmed == "" {
		return ""
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return ""
	}
	segment := path.Base(strings.TrimRight(parsed.Path, "/"))
	if segment == "" || segment == "." || segment == "/" {
		segment = parsed.Host
	}
	segment = strings.TrimSuffix(segment, path.Ext(segment))
	segment = strings.NewReplacer("-", " ", "_", " ").Replace(segment)
	return strings.TrimSpace(segment)
}

// truncate cuts at a rune boundary so multi-byte characters never end
// up split.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
