// Package check verifies that every file a manifest references exists.
package check

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/ttsb/internal/manifest"
	"github.com/dustin/go-humanize"
)

// Report counts what a manifest references and what is missing on disk.
type Report struct {
	Conversations int
	DetailMissing []string // conversation ids whose detail file failed to load
	TurnMismatch  []string // ids whose num_turns differs from the detail file
	WavPresent    int
	WavMissing    int
	TurnAudio     int
	TurnAudioGone int
	AudioBytes    int64
}

func (r Report) String() string {
	return fmt.Sprintf("conversations=%d details_missing=%d turn_mismatch=%d wav=%d/%d turn_audio=%d/%d audio=%s",
		r.Conversations, len(r.DetailMissing), len(r.TurnMismatch),
		r.WavPresent, r.WavPresent+r.WavMissing,
		r.TurnAudio-r.TurnAudioGone, r.TurnAudio,
		humanize.Bytes(uint64(r.AudioBytes)))
}

// OK reports whether nothing referenced was missing.
func (r Report) OK() bool {
	return len(r.DetailMissing) == 0 && r.WavMissing == 0 && r.TurnAudioGone == 0
}

// Run loads every detail file in turn. Unlike browsing it touches the whole
// collection, so it is only used by the doctor command.
func Run(summaries []manifest.Summary) Report {
	var r Report
	r.Conversations = len(summaries)

	for _, s := range summaries {
		if s.HasAudio() {
			if size, ok := fileSize(s.WavPath); ok {
				r.WavPresent++
				r.AudioBytes += size
			} else {
				r.WavMissing++
			}
		}

		d, err := manifest.LoadDetail(s)
		if err != nil {
			r.DetailMissing = append(r.DetailMissing, s.ConversationID)
			continue
		}
		if len(d.Turns) != s.NumTurns {
			r.TurnMismatch = append(r.TurnMismatch, s.ConversationID)
		}

		for _, t := range d.Turns {
			if !t.HasAudio() {
				continue
			}
			r.TurnAudio++
			if size, ok := fileSize(t.AudioPath); ok {
				r.AudioBytes += size
			} else {
				r.TurnAudioGone++
			}
		}
	}
	return r
}

func fileSize(path string) (int64, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return 0, false
	}
	return info.Size(), true
}
