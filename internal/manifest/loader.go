package manifest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/rs/zerolog"
)

const maxLineSize = 10 * 1024 * 1024 // 10MB

const (
	defaultAgentSpeaker = "AGENT"
	defaultUserSpeaker  = "USER"
)

type summaryRecord struct {
	MetadataPath   string   `json:"metadata_path"`
	WavPath        string   `json:"wav_path"`
	ConversationID string   `json:"conversation_id"`
	NumTurns       *int     `json:"num_turns"`
	TotalDuration  *float64 `json:"total_duration"`
	AgentSpeaker   string   `json:"agent_speaker"`
	UserSpeaker    string   `json:"user_speaker"`
}

// LoadSummaries reads a JSON-lines meta-manifest. Malformed lines are logged
// as warnings and skipped; only an unreadable file is an error.
func LoadSummaries(path string, log zerolog.Logger) ([]Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrManifestNotFound, path, err)
	}
	defer f.Close()

	baseDir := filepath.Dir(path)
	seen := make(map[string]int)

	r := bufio.NewReaderSize(f, 64*1024)

	var summaries []Summary
	lineNum := 0
	for {
		raw, tooLong, readErr := readLine(r)
		if readErr == io.EOF && len(raw) == 0 && !tooLong {
			break
		}
		lineNum++

		var s Summary
		var err error
		line := bytes.TrimSpace(raw)
		switch {
		case tooLong:
			err = fmt.Errorf("line longer than %d bytes", maxLineSize)
		case len(line) == 0:
		default:
			s, err = parseSummary(line, baseDir)
			if err == nil {
				if first, dup := seen[s.ConversationID]; dup {
					err = fmt.Errorf("duplicate conversation_id %q (first on line %d)", s.ConversationID, first)
				}
			}
		}

		if err != nil {
			log.Warn().
				Err(&LineError{Line: lineNum, Err: err}).
				Int("line", lineNum).
				Str("manifest", path).
				Msg("skipping manifest line")
		} else if len(line) > 0 {
			s.Line = lineNum
			seen[s.ConversationID] = lineNum
			summaries = append(summaries, s)
		}

		if readErr != nil {
			if readErr != io.EOF {
				// keep what was read so far
				log.Warn().Err(readErr).Int("line", lineNum).Str("manifest", path).Msg("manifest read stopped early")
			}
			break
		}
	}

	return summaries, nil
}

// readLine returns the next line including its newline. Lines longer than
// maxLineSize are consumed to the end and reported as tooLong.
func readLine(r *bufio.Reader) (line []byte, tooLong bool, err error) {
	n := 0
	for {
		var chunk []byte
		chunk, err = r.ReadSlice('\n')
		n += len(chunk)
		if n <= maxLineSize+1 {
			line = append(line, chunk...)
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if len(chunk) > 0 && chunk[len(chunk)-1] == '\n' {
			n--
		}
		return line, n > maxLineSize, err
	}
}

func parseSummary(line []byte, baseDir string) (Summary, error) {
	var rec summaryRecord
	if err := json.Unmarshal(line, &rec); err != nil {
		return Summary{}, err
	}

	switch {
	case rec.ConversationID == "":
		return Summary{}, errors.New("missing conversation_id")
	case rec.NumTurns == nil:
		return Summary{}, errors.New("missing num_turns")
	case rec.TotalDuration == nil:
		return Summary{}, errors.New("missing total_duration")
	case *rec.NumTurns < 0:
		return Summary{}, fmt.Errorf("negative num_turns %d", *rec.NumTurns)
	case *rec.TotalDuration < 0:
		return Summary{}, fmt.Errorf("negative total_duration %g", *rec.TotalDuration)
	}

	s := Summary{
		ConversationID: rec.ConversationID,
		MetadataPath:   resolvePath(baseDir, rec.MetadataPath),
		WavPath:        resolvePath(baseDir, rec.WavPath),
		NumTurns:       *rec.NumTurns,
		TotalDuration:  *rec.TotalDuration,
		AgentSpeaker:   rec.AgentSpeaker,
		UserSpeaker:    rec.UserSpeaker,
	}
	if s.AgentSpeaker == "" {
		s.AgentSpeaker = defaultAgentSpeaker
	}
	if s.UserSpeaker == "" {
		s.UserSpeaker = defaultUserSpeaker
	}
	return s, nil
}

type detailRecord struct {
	Turns []map[string]json.RawMessage `json:"turns"`
}

// LoadDetail reads the per-conversation detail file referenced by s.
func LoadDetail(s Summary) (*Detail, error) {
	if s.MetadataPath == "" {
		return nil, fmt.Errorf("%w: %s has no metadata_path", ErrDetailNotFound, s.ConversationID)
	}

	data, err := os.ReadFile(s.MetadataPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDetailNotFound, err)
	}

	var rec detailRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrDetailNotFound, s.MetadataPath, err)
	}
	if rec.Turns == nil {
		return nil, fmt.Errorf("%w: %s has no turns array", ErrDetailNotFound, s.MetadataPath)
	}

	dir := filepath.Dir(s.MetadataPath)
	d := &Detail{Summary: s, Turns: make([]Turn, 0, len(rec.Turns))}
	for _, raw := range rec.Turns {
		d.Turns = append(d.Turns, parseTurn(raw, dir))
	}
	return d, nil
}

func parseTurn(raw map[string]json.RawMessage, dir string) Turn {
	var t Turn
	textKey := "utterance"
	if _, ok := raw[textKey]; !ok {
		textKey = "text"
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := raw[k]
		switch k {
		case "speaker":
			t.Speaker = valueString(v)
			continue
		case textKey:
			t.Text = valueString(v)
			continue
		case "audio_filepath":
			t.AudioPath = resolvePath(dir, valueString(v))
			t.Extra = append(t.Extra, Field{Key: k, Value: t.AudioPath})
			continue
		case "start_time":
			if f, ok := valueFloat(v); ok {
				t.StartTime = f
			}
		}
		t.Extra = append(t.Extra, Field{Key: k, Value: valueString(v)})
	}
	return t
}

// valueString renders a raw JSON value for display: strings unquoted, null
// as empty, anything else as compact JSON.
func valueString(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, v); err != nil {
		return string(v)
	}
	return buf.String()
}

func valueFloat(v json.RawMessage) (float64, bool) {
	var f float64
	if err := json.Unmarshal(v, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
