// Package blocks converts between a flat post draft and the server's
// ordered block list. A draft is plain text with inline image tokens of
// the form ![caption](url); every contiguous run of non-image text
// becomes one text block and every token one image block, in document
// order.
package blocks

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jxhee99/HappyMeal/internal/model"
)

var imageToken = regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`)

// Parse splits content into ordered blocks. Text runs are trimmed and
// empty runs dropped; orderIndex is assigned sequentially from 0.
func Parse(content string) []model.Block {
	var out []model.Block
	order := 0
	last := 0
	for _, m := range imageToken.FindAllStringSubmatchIndex(content, -1) {
		if text := strings.TrimSpace(content[last:m[0]]); text != "" {
			out = append(out, model.Block{OrderIndex: order, BlockType: model.BlockText, ContentText: text})
			order++
		}
		out = append(out, model.Block{
			OrderIndex:   order,
			BlockType:    model.BlockImage,
			ImageCaption: content[m[2]:m[3]],
			ImageURL:     content[m[4]:m[5]],
		})
		order++
		last = m[1]
	}
	if text := strings.TrimSpace(content[last:]); text != "" {
		out = append(out, model.Block{OrderIndex: order, BlockType: model.BlockText, ContentText: text})
	}
	return out
}

// Render reassembles blocks into draft markdown, blocks sorted by the
// order they arrive in and separated by blank lines. Render∘Parse is
// the identity on canonical drafts, so editing a fetched post starts
// from the exact text the author submitted.
func Render(bs []model.Block) string {
	parts := make([]string, 0, len(bs))
	for _, b := range bs {
		switch b.BlockType {
		case model.BlockImage:
			parts = append(parts, fmt.Sprintf("![%s](%s)", b.ImageCaption, b.ImageURL))
		default:
			if text := strings.TrimSpace(b.ContentText); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, "\n\n")
}
