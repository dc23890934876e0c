package types

import "fmt"

// SourceKind identifies what kind of artifact a course is generated from.
type SourceKind string

const (
	SourceKindGitHub  SourceKind = "github"
	SourceKindLlmsTxt SourceKind = "llms-txt"
)

func ParseSourceKind(raw string) (SourceKind, error) {
	switch SourceKind(raw) {
	case SourceKindGitHub:
		return SourceKindGitHub, nil
	case SourceKindLlmsTxt:
		return SourceKindLlmsTxt, nil
	default:
		return "", fmt.Errorf("unsupported source type: %q", raw)
	}
}
