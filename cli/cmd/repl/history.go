package repl

import (
	"bufio"
	"os"
	"slices"
	"strings"
	"sync"
)

// HistoryEntry is one submitted line and the mode it was entered in.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

// History is the input history of the REPL, persisted to a UTF-8 file with
// one mode-prefixed entry per line. A History with an empty path is kept in
// memory only.
type History struct {
	path    string
	entries []HistoryEntry
	mu      sync.RWMutex
}

// NewHistory returns an empty History backed by the file at path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load replaces the entries of h with those read from its file. A missing
// file is not an error.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.path == "" {
		return nil
	}

	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}
	defer file.Close()

	h.entries = nil

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		h.entries = append(h.entries, parseHistoryLine(line))
	}

	return scanner.Err()
}

// parseHistoryLine decodes a mode-prefixed line. Lines without a known
// prefix are expressions.
func parseHistoryLine(line string) HistoryEntry {
	for _, mode := range []inputMode{modeEval, modeCtrl} {
		if s, ok := strings.CutPrefix(line, mode.prefix()); ok {
			return HistoryEntry{Line: s, Mode: mode}
		}
	}

	return HistoryEntry{Line: line, Mode: modeEval}
}

// Add appends line to the history. An earlier identical entry in the same
// mode is moved to the end instead of duplicated.
func (h *History) Add(line string, mode inputMode) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	entry := HistoryEntry{Line: line, Mode: mode}

	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return nil
	}

	i := slices.Index(h.entries, entry)
	if i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
	}

	h.entries = append(h.entries, entry)

	if h.path == "" {
		return nil
	}

	if i >= 0 {
		return h.rewrite()
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(mode.prefix() + line + "\n")

	return err
}

// Entry returns the entry at index i, where index 0 is the oldest.
func (h *History) Entry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}

// rewrite truncates the history file and writes every entry.
// Must be called with h.mu held.
func (h *History) rewrite() error {
	file, err := os.OpenFile(h.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	for _, entry := range h.entries {
		if _, err := w.WriteString(entry.Mode.prefix() + entry.Line + "\n"); err != nil {
			return err
		}
	}

	return w.Flush()
}
