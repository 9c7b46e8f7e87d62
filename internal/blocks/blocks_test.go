package blocks

import (
	"testing"

	"github.com/jxhee99/HappyMeal/internal/model"
)

func TestParseSplitsTextAndImages(t *testing.T) {
	content := "오늘의 샐러드 후기\n\n![점심 샐러드](https://img.example.com/a.jpg)\n\n맛있었습니다"
	bs := Parse(content)
	if len(bs) != 3 {
		t.Fatalf("expected 3 blocks, got %d: %+v", len(bs), bs)
	}
	if bs[0].BlockType != model.BlockText || bs[0].ContentText != "오늘의 샐러드 후기" {
		t.Fatalf("unexpected first block: %+v", bs[0])
	}
	if bs[1].BlockType != model.BlockImage || bs[1].ImageURL != "https://img.example.com/a.jpg" || bs[1].ImageCaption != "점심 샐러드" {
		t.Fatalf("unexpected image block: %+v", bs[1])
	}
	if bs[2].BlockType != model.BlockText || bs[2].ContentText != "맛있었습니다" {
		t.Fatalf("unexpected last block: %+v", bs[2])
	}
	for i, b := range bs {
		if b.OrderIndex != i {
			t.Fatalf("expected orderIndex %d, got %d", i, b.OrderIndex)
		}
	}
}

func TestParseImageOnly(t *testing.T) {
	bs := Parse("![a](u)")
	if len(bs) != 1 || bs[0].BlockType != model.BlockImage {
		t.Fatalf("expected a single image block, got %+v", bs)
	}
}

func TestParseEmptyContent(t *testing.T) {
	if bs := Parse("   \n  "); len(bs) != 0 {
		t.Fatalf("expected no blocks for blank content, got %+v", bs)
	}
}

func TestParseAdjacentImages(t *testing.T) {
	bs := Parse("![one](u1)![two](u2)")
	if len(bs) != 2 {
		t.Fatalf("expected 2 image blocks, got %d", len(bs))
	}
	if bs[0].ImageCaption != "one" || bs[1].ImageCaption != "two" {
		t.Fatalf("unexpected captions: %+v", bs)
	}
}

func TestRoundTripIsIdempotent(t *testing.T) {
	content := "첫 문단\n\n![사진](https://img.example.com/1.png)\n\n둘째 문단\n\n![한 장 더](https://img.example.com/2.png)"
	first := Parse(content)
	rendered := Render(first)
	if rendered != content {
		t.Fatalf("render changed canonical content:\nwant %q\ngot  %q", content, rendered)
	}
	second := Parse(rendered)
	if len(second) != len(first) {
		t.Fatalf("reparse produced %d blocks, want %d", len(second), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("block %d changed after round trip:\nwant %+v\ngot  %+v", i, first[i], second[i])
		}
	}
}

func TestRenderDropsEmptyTextBlocks(t *testing.T) {
	bs := []model.Block{
		{OrderIndex: 0, BlockType: model.BlockText, ContentText: "  "},
		{OrderIndex: 1, BlockType: model.BlockImage, ImageURL: "u", ImageCaption: "c"},
	}
	if got := Render(bs); got != "![c](u)" {
		t.Fatalf("unexpected render: %q", got)
	}
}
