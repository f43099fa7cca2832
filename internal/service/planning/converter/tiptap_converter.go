package converter

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"planforge/internal/domain"
	planningSvc "planforge/internal/domain/services/planning"
)

// tiptapConverter converts a TipTap (ProseMirror) JSON document to markdown.
// Unknown node types are skipped.
type tiptapConverter struct{}

// NewTipTapConverter creates a new TipTap JSON converter.
func NewTipTapConverter() planningSvc.ContentConverter {
	return &tiptapConverter{}
}

func (c *tiptapConverter) Format() planningSvc.ContentFormat {
	return planningSvc.FormatTipTap
}

func (c *tiptapConverter) Convert(ctx context.Context, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	if !gjson.Valid(input) {
		return "", fmt.Errorf("%w: content is not valid TipTap JSON", domain.ErrValidation)
	}

	var b strings.Builder
	for _, node := range gjson.Get(input, "content").Array() {
		writeNode(&b, node)
	}
	return strings.TrimSpace(b.String()), nil
}

func writeNode(b *strings.Builder, node gjson.Result) {
	switch node.Get("type").String() {
	case "heading":
		level := int(node.Get("attrs.level").Int())
		if level < 1 {
			level = 1
		}
		b.WriteString(strings.Repeat("#", level) + " ")
		writeInline(b, node.Get("content"))
		b.WriteString("\n\n")
	case "paragraph":
		writeInline(b, node.Get("content"))
		b.WriteString("\n\n")
	case "bulletList":
		for _, item := range node.Get("content").Array() {
			b.WriteString("- ")
			writeListItem(b, item)
		}
		b.WriteString("\n")
	case "orderedList":
		for i, item := range node.Get("content").Array() {
			fmt.Fprintf(b, "%d. ", i+1)
			writeListItem(b, item)
		}
		b.WriteString("\n")
	case "codeBlock":
		b.WriteString("```" + node.Get("attrs.language").String() + "\n")
		for _, child := range node.Get("content").Array() {
			b.WriteString(child.Get("text").String())
		}
		b.WriteString("\n```\n\n")
	case "blockquote":
		for _, child := range node.Get("content").Array() {
			b.WriteString("> ")
			writeNode(b, child)
		}
	case "horizontalRule":
		b.WriteString("---\n\n")
	}
}

func writeListItem(b *strings.Builder, item gjson.Result) {
	for _, child := range item.Get("content").Array() {
		if child.Get("type").String() == "paragraph" {
			writeInline(b, child.Get("content"))
			b.WriteString("\n")
			continue
		}
		writeNode(b, child)
	}
}

func writeInline(b *strings.Builder, content gjson.Result) {
	for _, node := range content.Array() {
		switch node.Get("type").String() {
		case "text":
			b.WriteString(applyMarks(node.Get("text").String(), node.Get("marks")))
		case "hardBreak":
			b.WriteString("  \n")
		}
	}
}

func applyMarks(text string, marks gjson.Result) string {
	for _, mark := range marks.Array() {
		var wrapper string
		switch mark.Get("type").String() {
		case "bold":
			wrapper = "**"
		case "italic":
			wrapper = "*"
		case "code":
			wrapper = "`"
		case "strike":
			wrapper = "~~"
		case "link":
			text = fmt.Sprintf("[%s](%s)", text, mark.Get("attrs.href").String())
			continue
		}
		text = wrapper + text + wrapper
	}
	return text
}
