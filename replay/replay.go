// Package replay stores finished or partial games as self-contained JSON
// documents: the initial state, the action log and the outcome.
package replay

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"garden/game"
	"garden/meta"
)

var (
	ErrInvalidFormat   = errors.New("invalid replay format: missing required fields")
	ErrInvalidMetadata = errors.New("invalid replay metadata")
	ErrHashMismatch    = errors.New("replayed state does not match expected hash")
	ErrWinnerMismatch  = errors.New("replayed outcome does not match recorded winner")
)

type Metadata struct {
	ID         string    `json:"id,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	Difficulty string    `json:"difficulty"`
	Version    string    `json:"version"`
}

type Document struct {
	Metadata     Metadata        `json:"metadata"`
	InitialState *game.GameState `json:"initialState"`
	Actions      []game.Action   `json:"actions"`
	Winner       *game.PlayerID  `json:"winner"`
	EndReason    string          `json:"endReason,omitempty"`
}

// New builds a document stamped with the current time and format version.
func New(initial *game.GameState, actions []game.Action, winner *game.PlayerID, difficulty, endReason string) Document {
	doc := Document{
		Metadata: Metadata{
			CreatedAt:  time.Now().UTC(),
			Difficulty: difficulty,
			Version:    meta.REPLAY_VERSION,
		},
		InitialState: initial.Copy(),
		Actions:      append([]game.Action{}, actions...),
		EndReason:    endReason,
	}
	if winner != nil {
		w := *winner
		doc.Winner = &w
	}
	return doc
}

// Final replays the action log over the initial state.
func (d Document) Final() *game.GameState {
	return game.Replay(d.InitialState, d.Actions)
}

func Encode(w io.Writer, doc Document) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	return nil
}

// Decode reads and validates a document. Malformed input is reported as an
// error, never a panic.
func Decode(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read replay: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if !present(raw["metadata"]) || !present(raw["initialState"]) || !isArray(raw["actions"]) {
		return Document{}, ErrInvalidFormat
	}

	var rawMeta struct {
		CreatedAt  string `json:"createdAt"`
		Difficulty string `json:"difficulty"`
		Version    string `json:"version"`
	}
	if err := json.Unmarshal(raw["metadata"], &rawMeta); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrInvalidMetadata, err)
	}
	if rawMeta.CreatedAt == "" || rawMeta.Difficulty == "" || rawMeta.Version == "" {
		return Document{}, ErrInvalidMetadata
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("failed to parse replay: %w", err)
	}
	if err := doc.InitialState.Validate(); err != nil {
		return Document{}, fmt.Errorf("invalid initial state: %w", err)
	}
	return doc, nil
}

func present(msg json.RawMessage) bool {
	trimmed := bytes.TrimSpace(msg)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func isArray(msg json.RawMessage) bool {
	trimmed := bytes.TrimSpace(msg)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// Verify replays the document and checks the outcome against the recorded
// winner and, when wantHash is not empty, against game.HashState.
func Verify(doc Document, wantHash string) (*game.GameState, error) {
	final := doc.Final()
	if wantHash != "" && game.HashState(final) != wantHash {
		return final, ErrHashMismatch
	}

	end := game.CheckEnd(final)
	switch {
	case doc.Winner == nil && end.Ended:
		return final, fmt.Errorf("%w: replay ends with winner %d", ErrWinnerMismatch, *end.Winner)
	case doc.Winner != nil && !end.Ended:
		return final, fmt.Errorf("%w: replay has not ended", ErrWinnerMismatch)
	case doc.Winner != nil && *doc.Winner != *end.Winner:
		return final, fmt.Errorf("%w: replay ends with winner %d", ErrWinnerMismatch, *end.Winner)
	}
	return final, nil
}

func WriteFile(path string, doc Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create replay file: %w", err)
	}
	defer f.Close()

	return Encode(f, doc)
}

func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to open replay file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}
