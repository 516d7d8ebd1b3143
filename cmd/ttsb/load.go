package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Zuo-Peng/ttsb/internal/config"
	"github.com/Zuo-Peng/ttsb/internal/logging"
	"github.com/Zuo-Peng/ttsb/internal/manifest"
	"github.com/rs/zerolog"
)

// newLogger logs to stderr for plain commands and to the log file while the
// terminal UI owns the screen.
func newLogger(cfg *config.Config, interactive bool) (zerolog.Logger, func()) {
	if !interactive {
		return logging.New(logging.Options{Level: cfg.LogLevel, Pretty: true, Output: os.Stderr}), func() {}
	}

	var out io.Writer = io.Discard
	closeFn := func() {}
	if f, err := logging.OpenFile(cfg.LogFile); err == nil {
		out = f
		closeFn = func() { f.Close() }
	} else {
		fmt.Fprintf(os.Stderr, "WARN: %v (logging disabled)\n", err)
	}
	return logging.New(logging.Options{Level: cfg.LogLevel, Output: out}), closeFn
}

func loadSummaries(path string, log zerolog.Logger) ([]manifest.Summary, error) {
	summaries, err := manifest.LoadSummaries(path, log)
	if err != nil {
		return nil, err
	}
	log.Info().Str("manifest", path).Int("conversations", len(summaries)).Msg("manifest loaded")
	return summaries, nil
}

func findSummary(summaries []manifest.Summary, id string) (manifest.Summary, error) {
	for _, s := range summaries {
		if s.ConversationID == id {
			return s, nil
		}
	}
	return manifest.Summary{}, fmt.Errorf("conversation not found: %s", id)
}
