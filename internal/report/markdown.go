package report

import (
	"html/template"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

var markdownEscaper = strings.NewReplacer(
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
	"|", `\|`,
)

// Markdown renders the header as a heading, conclusions in bold and every
// other line as its own paragraph. User-supplied column names are escaped
// and line breaks inside them flattened, so every line stays one block.
func (r Report) Markdown() string {
	var b strings.Builder
	for i, line := range r.Lines {
		if i > 0 {
			b.WriteString("\n\n")
		}
		text := markdownEscaper.Replace(line.Text)
		switch line.Kind {
		case LineHeader:
			b.WriteString("### " + text)
		case LineConclusion:
			b.WriteString("**" + text + "**")
		case LineError:
			b.WriteString("> " + text)
		default:
			b.WriteString(text)
		}
	}
	return b.String()
}

// HTML converts the Markdown rendering for the results panel
func (r Report) HTML() template.HTML {
	if r.Empty() {
		return ""
	}
	p := parser.NewWithExtensions(parser.NoIntraEmphasis | parser.SpaceHeadings)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.SkipHTML})
	out := markdown.ToHTML([]byte(r.Markdown()), p, renderer)
	return template.HTML(out)
}
