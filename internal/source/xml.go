package source

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// XMLExtractor converts XML-flavored llms.txt bodies into plain prose.
// The llms.txt ecosystem is inconsistent: some publishers serve
// markdown, others XML. The prompt builder needs prose either way.
type XMLExtractor interface {
	Extract(xmlContent string) string
}

// contentTags are the section tags commonly seen in XML llms.txt files,
// in the order their sections should appear in the output.
var contentTags = []struct {
	tag   string
	label string
}{
	{"title", "Title"},
	{"description", "Description"},
	{"summary", "Summary"},
	{"overview", "Overview"},
	{"features", "Features"},
	{"capabilities", "Capabilities"},
	{"usage", "Usage"},
	{"instructions", "Instructions"},
	{"examples", "Examples"},
	{"api", "API Information"},
	{"endpoints", "Endpoints"},
	{"parameters", "Parameters"},
	{"documentation", "Documentation"},
}

var (
	xmlDeclRe   = regexp.MustCompile(`(?i)<\?xml[^>]*\?>`)
	xmlCommentRe = regexp.MustCompile(`<!--[\s\S]*?-->`)
	anyTagRe    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// GoqueryExtractor walks the document with goquery, which tolerates the
// loose, not-quite-valid XML these files tend to be.
type GoqueryExtractor struct{}

func NewGoqueryExtractor() *GoqueryExtractor {
	return &GoqueryExtractor{}
}

func (ge *GoqueryExtractor) Extract(xmlContent string) string {
	clean := xmlDeclRe.ReplaceAllString(xmlContent, "")
	clean = xmlCommentRe.ReplaceAllString(clean, "")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(clean))
	if err != nil {
		return stripTags(clean)
	}

	var sections []string

	// Project-level title/summary attributes, e.g.
	// <project title="X" summary="Y">...</project>
	doc.Find("project").Each(func(_ int, s *goquery.Selection) {
		if title, ok := s.Attr("title"); ok && strings.TrimSpace(title) != "" {
			sections = append(sections, "Title: "+strings.TrimSpace(title))
		}
		if summary, ok := s.Attr("summary"); ok && strings.TrimSpace(summary) != "" {
			sections = append(sections, "Summary: "+strings.TrimSpace(summary))
		}
	})

	// Titled doc sections: <doc title="A" desc="B">text</doc>
	doc.Find("doc").Each(func(_ int, s *goquery.Selection) {
		title := strings.TrimSpace(s.AttrOr("title", ""))
		desc := strings.TrimSpace(s.AttrOr("desc", ""))
		body := strings.TrimSpace(s.Text())
		if title == "" && desc == "" && body == "" {
			return
		}
		var b strings.Builder
		if title != "" {
			b.WriteString(title + ":")
		} else {
			b.WriteString("Section:")
		}
		if desc != "" {
			b.WriteString("\n" + desc)
		}
		if body != "" {
			b.WriteString("\n" + body)
		}
		sections = append(sections, b.String())
	})

	// Well-known content tags.
	for _, entry := range contentTags {
		doc.Find(entry.tag).Each(func(_ int, s *goquery.Selection) {
			body := strings.TrimSpace(s.Text())
			if body == "" {
				return
			}
			sections = append(sections, entry.label+":\n"+body)
		})
	}

	if len(sections) == 0 {
		text := stripTags(clean)
		if text == "" {
			return "XML file structure detected but no readable content extracted."
		}
		return "Content:\n" + text
	}
	return strings.Join(sections, "\n\n")
}

func stripTags(content string) string {
	text := anyTagRe.ReplaceAllString(content, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// LooksLikeXML reports whether a response body is XML-flavored.
func LooksLikeXML(content string) bool {
	trimmed := strings.TrimSpace(content)
	return strings.Contains(content, "<?xml") || strings.HasPrefix(trimmed, "<")
}
