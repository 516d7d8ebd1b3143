package check

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zuo-Peng/ttsb/internal/manifest"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.wav"), "12345678")
	write(t, filepath.Join(dir, "a_0.wav"), "1234")
	write(t, filepath.Join(dir, "a.json"), `{"turns":[
		{"speaker":"USER","utterance":"hi","audio_filepath":"a_0.wav"},
		{"speaker":"AGENT","utterance":"hello","audio_filepath":"a_1.wav"}
	]}`)
	write(t, filepath.Join(dir, "b.json"), `{"turns":[{"speaker":"USER","utterance":"only"}]}`)

	summaries := []manifest.Summary{
		{ConversationID: "a", MetadataPath: filepath.Join(dir, "a.json"), WavPath: filepath.Join(dir, "a.wav"), NumTurns: 2},
		{ConversationID: "b", MetadataPath: filepath.Join(dir, "b.json"), WavPath: filepath.Join(dir, "b.wav"), NumTurns: 3},
		{ConversationID: "c", MetadataPath: filepath.Join(dir, "c.json"), NumTurns: 1},
	}

	r := Run(summaries)
	if r.Conversations != 3 {
		t.Fatalf("conversations = %d", r.Conversations)
	}
	if len(r.DetailMissing) != 1 || r.DetailMissing[0] != "c" {
		t.Fatalf("detail missing = %v", r.DetailMissing)
	}
	if len(r.TurnMismatch) != 1 || r.TurnMismatch[0] != "b" {
		t.Fatalf("turn mismatch = %v", r.TurnMismatch)
	}
	if r.WavPresent != 1 || r.WavMissing != 1 {
		t.Fatalf("wav present/missing = %d/%d", r.WavPresent, r.WavMissing)
	}
	if r.TurnAudio != 2 || r.TurnAudioGone != 1 {
		t.Fatalf("turn audio = %d, gone = %d", r.TurnAudio, r.TurnAudioGone)
	}
	if r.AudioBytes != 12 {
		t.Fatalf("audio bytes = %d, want 12", r.AudioBytes)
	}
	if r.OK() {
		t.Fatal("report with missing files must not be OK")
	}
	if s := r.String(); !strings.Contains(s, "conversations=3") || !strings.Contains(s, "12 B") {
		t.Fatalf("unexpected summary line: %s", s)
	}
}

func TestRunEmpty(t *testing.T) {
	r := Run(nil)
	if !r.OK() || r.Conversations != 0 {
		t.Fatalf("empty collection should be OK: %+v", r)
	}
}
