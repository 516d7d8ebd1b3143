package manifest

import "strings"

// Summary is one line of the meta-manifest. Paths are resolved against the
// manifest directory at load time.
type Summary struct {
	ConversationID string
	MetadataPath   string
	WavPath        string // "" when the manifest has no whole-dialogue audio
	NumTurns       int
	TotalDuration  float64 // seconds
	AgentSpeaker   string
	UserSpeaker    string
	Line           int // line number in the manifest file
}

// HasAudio reports whether the summary references whole-dialogue audio.
func (s Summary) HasAudio() bool {
	return s.WavPath != ""
}

// Field is a turn attribute that is not otherwise modelled, kept for the
// metadata view.
type Field struct {
	Key   string
	Value string
}

// Turn is one utterance of a conversation detail file.
type Turn struct {
	Speaker   string
	Text      string
	AudioPath string  // "" when the turn has no audio snippet
	StartTime float64 // seconds, 0 when absent
	Extra     []Field // sorted by key
}

// HasAudio reports whether the turn references an audio snippet.
func (t Turn) HasAudio() bool {
	return t.AudioPath != ""
}

// IsUser reports whether the turn was spoken by the user side.
func (t Turn) IsUser() bool {
	return strings.EqualFold(t.Speaker, "USER")
}

// Detail is the lazily loaded content of one conversation.
type Detail struct {
	Summary Summary
	Turns   []Turn
}
