package internal

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// Session records what an organize run did as an append-only JSONL manifest
// under <destination>/.organizer/<session-id>/. The manifest is an audit log
// only; it is never read back to make duplicate decisions.
type Session struct {
	ID       string
	manifest afero.File
}

// SessionEvent is a single line in the manifest log
type SessionEvent struct {
	Event    string `json:"event"`
	Ts       string `json:"ts"`
	Src      string `json:"src,omitempty"`
	Dest     string `json:"dest,omitempty"`
	Hash     string `json:"hash,omitempty"`
	Existing string `json:"existing,omitempty"`
	Error    string `json:"error,omitempty"`
	Category string `json:"error_category,omitempty"`

	// Session start/end fields
	Sources         []string `json:"sources,omitempty"`
	Processed       int      `json:"processed,omitempty"`
	Duplicates      int      `json:"duplicates,omitempty"`
	AlreadyPresent  int      `json:"already_present,omitempty"`
	Skipped         int      `json:"skipped,omitempty"`
	Errors          int      `json:"errors,omitempty"`
	SidecarsRemoved int      `json:"sidecars_removed,omitempty"`
}

// NewSession opens a manifest file for a new organize run. The session
// directory is dot-prefixed so the classifier never picks it up.
func NewSession(fs afero.Fs, destRoot string) (*Session, error) {
	id := time.Now().Format("2006-01-02-150405")
	sessionDir := filepath.Join(destRoot, ".organizer", id)
	if err := fs.MkdirAll(sessionDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	manifest, err := fs.Create(filepath.Join(sessionDir, "manifest.jsonl"))
	if err != nil {
		return nil, fmt.Errorf("failed to create manifest file: %w", err)
	}

	return &Session{ID: id, manifest: manifest}, nil
}

func (s *Session) LogStart(sources []string) error {
	return s.writeEvent(SessionEvent{Event: "session_start", Ts: timestamp(), Sources: sources})
}

func (s *Session) LogCopied(src, dest, hash string) error {
	return s.writeEvent(SessionEvent{Event: "copied", Ts: timestamp(), Src: src, Dest: dest, Hash: hash})
}

func (s *Session) LogDuplicate(src, dest, hash, firstSeen string) error {
	return s.writeEvent(SessionEvent{
		Event: "duplicate", Ts: timestamp(),
		Src: src, Dest: dest, Hash: hash, Existing: firstSeen,
	})
}

func (s *Session) LogSkippedIdentical(src, existing, hash string) error {
	return s.writeEvent(SessionEvent{
		Event: "skipped_identical", Ts: timestamp(),
		Src: src, Existing: existing, Hash: hash,
	})
}

func (s *Session) LogError(procErr *ProcessError) error {
	return s.writeEvent(SessionEvent{
		Event: "error", Ts: timestamp(),
		Src:      procErr.FilePath,
		Error:    procErr.OriginalErr.Error(),
		Category: string(procErr.Category),
	})
}

func (s *Session) LogEnd(stats RunStats) error {
	return s.writeEvent(SessionEvent{
		Event: "session_end", Ts: timestamp(),
		Processed:       stats.Processed,
		Duplicates:      stats.Duplicates,
		AlreadyPresent:  stats.AlreadyPresent,
		Skipped:         stats.Skipped,
		Errors:          stats.Errors,
		SidecarsRemoved: stats.SidecarsRemoved,
	})
}

func (s *Session) Close() error {
	if s.manifest != nil {
		return s.manifest.Close()
	}
	return nil
}

// writeEvent appends an event as one JSON line and flushes it
func (s *Session) writeEvent(event SessionEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if _, err := s.manifest.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write to manifest: %w", err)
	}
	return s.manifest.Sync()
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
