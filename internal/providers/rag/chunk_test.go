package rag

import (
	"strings"
	"testing"
)

func TestChunkText_Empty(t *testing.T) {
	if got := ChunkText("", DefaultChunkerConfig()); got != nil {
		t.Errorf("expected nil chunks for empty input, got %d", len(got))
	}
	if got := ChunkText("   \n\n  ", DefaultChunkerConfig()); got != nil {
		t.Errorf("expected nil chunks for blank input, got %d", len(got))
	}
}

func TestChunkText_ShortTextSingleChunk(t *testing.T) {
	text := "A strike costs one action. A stride also costs one action."

	chunks := ChunkText(text, DefaultChunkerConfig())
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != text {
		t.Errorf("chunk text changed: %q", chunks[0].Text)
	}
	if chunks[0].Index != 0 {
		t.Errorf("chunk index = %d, want 0", chunks[0].Index)
	}
	if chunks[0].TokenCount != CountTokens(text) {
		t.Errorf("token count mismatch: %d vs %d", chunks[0].TokenCount, CountTokens(text))
	}
}

func TestChunkText_LongTextSplitsWithOverlap(t *testing.T) {
	sentence := "The rules for grappling involve an athletics check against the target's fortitude DC. "
	text := strings.Repeat(sentence, 60)

	cfg := ChunkerConfig{MaxTokens: 100, OverlapTokens: 20}
	chunks := ChunkText(text, cfg)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.TokenCount > cfg.MaxTokens {
			t.Errorf("chunk %d has %d tokens, exceeds max %d", i, c.TokenCount, cfg.MaxTokens)
		}
		if c.Index != i {
			t.Errorf("chunk %d index = %d", i, c.Index)
		}
		if c.Text == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}

	// Overlap means the tail of one chunk reappears at the head of the next.
	tail := chunks[0].Text[len(chunks[0].Text)-20:]
	if !strings.Contains(chunks[1].Text, strings.TrimSpace(tail)) {
		t.Errorf("chunk 1 does not overlap with chunk 0 tail %q", tail)
	}
}

func TestChunkText_NormalizesSoftWraps(t *testing.T) {
	text := "First line\nsoft wrapped.\n\nSecond paragraph."

	chunks := ChunkText(text, DefaultChunkerConfig())
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if !strings.Contains(chunks[0].Text, "First line soft wrapped.") {
		t.Errorf("soft wrap not collapsed: %q", chunks[0].Text)
	}
	if !strings.Contains(chunks[0].Text, "\n\nSecond paragraph.") {
		t.Errorf("paragraph break lost: %q", chunks[0].Text)
	}
}
