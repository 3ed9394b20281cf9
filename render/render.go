// Package render turns assistant markdown into HTML for the chat panel.
// It covers the subset providers actually emit: fenced code blocks, inline
// styling, headings, lists, blockquotes and links. Code content is escaped
// exactly once, when the block is lifted out of the document.
package render

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var (
	fencePattern      = regexp.MustCompile("(?s)```([a-zA-Z0-9+#-]*)\n?(.*?)```")
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	boldPattern       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicPattern     = regexp.MustCompile(`\*([^*]+)\*`)
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	imagePattern      = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	orderedPattern    = regexp.MustCompile(`^\d+\.\s+(.*)`)
	unorderedPattern  = regexp.MustCompile(`^[-*]\s+(.*)`)
	headingPattern    = regexp.MustCompile(`^(#{1,6})\s+(.*)`)
)

// Render converts markdown text to HTML.
func Render(markdown string) string {
	blocks := make([]string, 0, 4)

	// Lift code fences out first so nothing else touches their content.
	text := fencePattern.ReplaceAllStringFunc(markdown, func(m string) string {
		sub := fencePattern.FindStringSubmatch(m)
		lang := sub[1]
		if lang == "" {
			lang = "plaintext"
		}
		code := strings.TrimSuffix(sub[2], "\n")
		blocks = append(blocks, codeBlockHTML(lang, code))
		return fmt.Sprintf("\x00block%d\x00", len(blocks)-1)
	})

	out := renderLines(text)

	for i, block := range blocks {
		out = strings.Replace(out, fmt.Sprintf("\x00block%d\x00", i), block, 1)
	}
	return out
}

func codeBlockHTML(lang, code string) string {
	var b strings.Builder
	b.WriteString(`<div class="code-block-container">`)
	b.WriteString(`<div class="code-block-header">`)
	fmt.Fprintf(&b, `<span class="code-language">%s</span>`, html.EscapeString(lang))
	b.WriteString(`<div class="code-actions">`)
	b.WriteString(`<button class="code-action-btn copy-code-btn" title="Copy code">Copy</button>`)
	b.WriteString(`<button class="code-action-btn insert-code-btn" title="Insert into editor">Insert</button>`)
	b.WriteString(`</div></div>`)
	fmt.Fprintf(&b, `<pre><code class="language-%s">%s</code></pre>`, html.EscapeString(lang), html.EscapeString(code))
	b.WriteString(`</div>`)
	return b.String()
}

// renderLines handles everything outside code fences, grouping consecutive
// list items and blockquote lines into single elements.
func renderLines(text string) string {
	lines := strings.Split(text, "\n")
	var out []string

	for i := 0; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], " \t")
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			continue

		case trimmed == "---" || trimmed == "***":
			out = append(out, "<hr>")

		case headingPattern.MatchString(trimmed):
			m := headingPattern.FindStringSubmatch(trimmed)
			level := len(m[1])
			out = append(out, fmt.Sprintf("<h%d>%s</h%d>", level, renderInline(m[2]), level))

		case strings.HasPrefix(trimmed, ">"):
			var quoted []string
			for i < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i]), ">") {
				q := strings.TrimSpace(lines[i])
				quoted = append(quoted, renderInline(strings.TrimSpace(strings.TrimPrefix(q, ">"))))
				i++
			}
			i--
			out = append(out, "<blockquote>"+strings.Join(quoted, "<br>")+"</blockquote>")

		case orderedPattern.MatchString(trimmed):
			var items []string
			for i < len(lines) {
				m := orderedPattern.FindStringSubmatch(strings.TrimSpace(lines[i]))
				if m == nil {
					break
				}
				items = append(items, "<li>"+renderInline(m[1])+"</li>")
				i++
			}
			i--
			out = append(out, "<ol>"+strings.Join(items, "")+"</ol>")

		case unorderedPattern.MatchString(trimmed):
			var items []string
			for i < len(lines) {
				m := unorderedPattern.FindStringSubmatch(strings.TrimSpace(lines[i]))
				if m == nil {
					break
				}
				items = append(items, "<li>"+renderInline(m[1])+"</li>")
				i++
			}
			i--
			out = append(out, "<ul>"+strings.Join(items, "")+"</ul>")

		case strings.HasPrefix(trimmed, "\x00block") && strings.HasSuffix(trimmed, "\x00"):
			// Code block placeholder stands alone, no paragraph wrap.
			out = append(out, trimmed)

		default:
			out = append(out, "<p>"+renderInline(trimmed)+"</p>")
		}
	}
	return strings.Join(out, "\n")
}

func renderInline(s string) string {
	s = html.EscapeString(s)
	s = inlineCodePattern.ReplaceAllString(s, "<code>$1</code>")
	s = imagePattern.ReplaceAllString(s, `<img src="$2" alt="$1">`)
	s = linkPattern.ReplaceAllString(s, `<a href="$2" target="_blank" rel="noopener">$1</a>`)
	s = boldPattern.ReplaceAllString(s, "<strong>$1</strong>")
	s = italicPattern.ReplaceAllString(s, "<em>$1</em>")
	return s
}
