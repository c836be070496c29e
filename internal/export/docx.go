package export

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet  = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
)

// writeDocx renders the summary as styled markdown followed by the
// transcript as plain paragraphs.
func writeDocx(doc Document, path string) error {
	d, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	title := doc.Name
	if strings.TrimSpace(title) == "" {
		title = DefaultName
	}
	addStyledRun(d.AddParagraph(""), title, true, 16)
	addStyledRun(d.AddParagraph(""), doc.CreatedAt.Format("January 2, 2006 15:04"), false, fontSize)

	addStyledRun(d.AddParagraph(""), "Summary", true, 15)
	addMarkdown(d.AddParagraph, doc.Summary)

	if strings.TrimSpace(doc.Transcript) != "" {
		addStyledRun(d.AddParagraph(""), "Transcript", true, 15)
		for _, para := range strings.Split(doc.Transcript, "\n") {
			if para = strings.TrimSpace(para); para != "" {
				d.AddParagraph("").AddText(para).Font(fontName).Size(fontSize).Color("000000")
			}
		}
	}

	return d.SaveTo(path)
}

func addMarkdown(newParagraph func(string) *docx.Paragraph, markdown string) {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}

		switch {
		case reHeading.MatchString(trimmed):
			m := reHeading.FindStringSubmatch(trimmed)
			addStyledRun(newParagraph(""), m[2], true, headingSize(len(m[1])))
		case reBullet.MatchString(trimmed):
			m := reBullet.FindStringSubmatch(trimmed)
			addRichText(newParagraph(""), "• "+m[1])
		default:
			addRichText(newParagraph(""), trimmed)
		}
	}
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(cleanMarkdownInline(text)).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanMarkdownInline(part)).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			p.AddText(cleanMarkdownInline(matches[i][1])).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
