package play

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestPlayerArgs(t *testing.T) {
	cases := []struct {
		player string
		want   []string
	}{
		{"ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet", "a.wav"}},
		{"/usr/bin/ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet", "a.wav"}},
		{"mpv", []string{"--no-video", "--really-quiet", "a.wav"}},
		{"cvlc", []string{"--intf", "dummy", "--play-and-exit", "a.wav"}},
		{"aplay", []string{"a.wav"}},
	}
	for _, tc := range cases {
		if got := playerArgs(tc.player, "a.wav"); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("playerArgs(%q) = %v, want %v", tc.player, got, tc.want)
		}
	}
}

func TestCommandAudioUnavailable(t *testing.T) {
	ctx := context.Background()
	if _, err := Command(ctx, "aplay", ""); !errors.Is(err, ErrAudioUnavailable) {
		t.Fatalf("empty path: expected ErrAudioUnavailable, got %v", err)
	}
	missing := filepath.Join(t.TempDir(), "missing.wav")
	if _, err := Command(ctx, "aplay", missing); !errors.Is(err, ErrAudioUnavailable) {
		t.Fatalf("missing file: expected ErrAudioUnavailable, got %v", err)
	}
}

func TestCommandBlankPlayer(t *testing.T) {
	audio := filepath.Join(t.TempDir(), "a.wav")
	if err := os.WriteFile(audio, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", t.TempDir())

	if _, err := Command(context.Background(), "   ", audio); !errors.Is(err, ErrNoPlayer) {
		t.Fatalf("expected ErrNoPlayer for blank player, got %v", err)
	}
}

func TestCommandKeepsPlayerFlags(t *testing.T) {
	audio := filepath.Join(t.TempDir(), "a.wav")
	if err := os.WriteFile(audio, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}
	cmd, err := Command(context.Background(), "aplay -q", audio)
	if err != nil {
		t.Fatalf("Command: %v", err)
	}
	if want := []string{"aplay", "-q", audio}; !reflect.DeepEqual(cmd.Args, want) {
		t.Fatalf("args = %v, want %v", cmd.Args, want)
	}
}

// fakePlayer writes a shell script that sleeps, standing in for a real player.
func fakePlayer(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	path := filepath.Join(t.TempDir(), "fakeplay")
	if err := os.WriteFile(path, []byte("#!/bin/sh\nsleep 5\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPlayerStop(t *testing.T) {
	audio := filepath.Join(t.TempDir(), "a.wav")
	if err := os.WriteFile(audio, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := &Player{Name: fakePlayer(t)}
	wait, err := p.Start(context.Background(), audio)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- wait() }()

	p.Stop()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected stopped playback to report nil, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("playback did not stop")
	}
}

func TestPlayerStartMissingAudio(t *testing.T) {
	p := &Player{Name: "aplay"}
	if _, err := p.Start(context.Background(), ""); !errors.Is(err, ErrAudioUnavailable) {
		t.Fatalf("expected ErrAudioUnavailable, got %v", err)
	}
}
