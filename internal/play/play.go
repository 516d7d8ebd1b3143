// Package play hands audio files to an external player process.
package play

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

var (
	// ErrAudioUnavailable means the audio reference is empty or the file is
	// missing. Callers omit the playback control rather than failing.
	ErrAudioUnavailable = errors.New("audio unavailable")
	ErrNoPlayer         = errors.New("no audio player found")
)

// candidates are tried in order when no player is configured.
var candidates = []string{"ffplay", "mpv", "afplay", "paplay", "aplay"}

// Detect returns the configured player, or the first candidate on $PATH.
func Detect(player string) (string, error) {
	if player = strings.TrimSpace(player); player != "" {
		return player, nil
	}
	for _, c := range candidates {
		if p, err := exec.LookPath(c); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w (tried %s; set player in config)", ErrNoPlayer, strings.Join(candidates, ", "))
}

// Command builds the player invocation for path without starting it.
func Command(ctx context.Context, player, path string) (*exec.Cmd, error) {
	if path == "" {
		return nil, ErrAudioUnavailable
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAudioUnavailable, path)
	}

	player, err := Detect(player)
	if err != nil {
		return nil, err
	}

	fields := strings.Fields(player)
	if len(fields) == 0 {
		return nil, ErrNoPlayer
	}
	args := append(fields[1:], playerArgs(fields[0], path)...)
	return exec.CommandContext(ctx, fields[0], args...), nil
}

func playerArgs(player, path string) []string {
	switch base := filepath.Base(player); {
	case strings.Contains(base, "ffplay"):
		return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", path}
	case strings.Contains(base, "mpv"):
		return []string{"--no-video", "--really-quiet", path}
	case strings.Contains(base, "vlc"):
		return []string{"--intf", "dummy", "--play-and-exit", path}
	default:
		return []string{path}
	}
}

// Run plays path in the foreground with the terminal attached.
func Run(ctx context.Context, player, path string) error {
	cmd, err := Command(ctx, player, path)
	if err != nil {
		return err
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Player runs at most one background playback at a time.
type Player struct {
	Name string // configured player, "" = auto-detect

	mu     sync.Mutex
	cancel context.CancelFunc
}

// Start stops any current playback and starts path. The returned wait func
// blocks until playback ends; a playback ended by Stop reports nil.
func (p *Player) Start(ctx context.Context, path string) (func() error, error) {
	p.Stop()

	ctx, cancel := context.WithCancel(ctx)
	cmd, err := Command(ctx, p.Name, path)
	if err != nil {
		cancel()
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("start player: %w", err)
	}

	p.mu.Lock()
	p.cancel = cancel
	p.mu.Unlock()

	return func() error {
		err := cmd.Wait()
		stopped := ctx.Err() != nil
		cancel()
		if stopped {
			return nil
		}
		return err
	}, nil
}

// Stop cancels the current playback, if any.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}
