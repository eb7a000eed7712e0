package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// fileState matches the on-disk layout: {"articles": [...]}. The file may be
// edited by hand to un-publish something; it is reloaded only at startup.
type fileState struct {
	Articles []Entry `json:"articles"`
}

// FileLedger keeps the ledger in a single JSON file. Writes rewrite the file
// through a temp-file rename so a killed run cannot leave a torn state.
type FileLedger struct {
	path string

	mu    sync.Mutex
	state fileState
	urls  map[string]bool
}

func NewFileLedger(path string) (*FileLedger, error) {
	l := &FileLedger{
		path: path,
		urls: make(map[string]bool),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("failed to read ledger file: %w", err)
	}

	if err := json.Unmarshal(data, &l.state); err != nil {
		return nil, fmt.Errorf("failed to parse ledger file: %w", err)
	}

	for _, entry := range l.state.Articles {
		l.urls[entry.SourceURL] = true
	}

	return l, nil
}

func (l *FileLedger) Contains(_ context.Context, url string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.urls[url], nil
}

func (l *FileLedger) Add(_ context.Context, entry Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.urls[entry.SourceURL] {
		return nil
	}

	l.state.Articles = append(l.state.Articles, entry)
	if err := l.flush(); err != nil {
		l.state.Articles = l.state.Articles[:len(l.state.Articles)-1]
		return err
	}

	l.urls[entry.SourceURL] = true
	return nil
}

func (l *FileLedger) Len(_ context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.state.Articles), nil
}

func (l *FileLedger) flush() error {
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create ledger dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(&l.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}

	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		return fmt.Errorf("failed to replace ledger: %w", err)
	}

	return nil
}
