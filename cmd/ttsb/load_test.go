package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Zuo-Peng/ttsb/internal/manifest"
	"github.com/rs/zerolog"
)

func TestFindSummary(t *testing.T) {
	summaries := []manifest.Summary{{ConversationID: "a"}, {ConversationID: "b", NumTurns: 3}}

	s, err := findSummary(summaries, "b")
	if err != nil {
		t.Fatalf("findSummary: %v", err)
	}
	if s.NumTurns != 3 {
		t.Errorf("got %+v", s)
	}

	if _, err := findSummary(summaries, "zzz"); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestLoadSummariesMissingManifest(t *testing.T) {
	_, err := loadSummaries(filepath.Join(t.TempDir(), "nope.jsonl"), zerolog.Nop())
	if !errors.Is(err, manifest.ErrManifestNotFound) {
		t.Fatalf("expected ErrManifestNotFound, got %v", err)
	}
}

func TestLoadSummaries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.jsonl")
	data := `{"conversation_id":"c1","metadata_path":"c1.json","num_turns":4,"total_duration":12.5}` + "\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	summaries, err := loadSummaries(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("loadSummaries: %v", err)
	}
	if len(summaries) != 1 || summaries[0].ConversationID != "c1" {
		t.Fatalf("got %+v", summaries)
	}
}
