package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/GregMSThompson/gwamegi-riders/internal/errs"
	"github.com/GregMSThompson/gwamegi-riders/internal/models"
	"github.com/GregMSThompson/gwamegi-riders/pkg/logger"
)

// fileContentStore serves content from a YAML file and keeps the last good
// snapshot when an edit fails to parse or validate.
type fileContentStore struct {
	path string

	mu      sync.RWMutex
	current models.ClubContent
}

func NewFileContentStore(path string) (*fileContentStore, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(dir, filepath.Base(abs))
	}
	s := &fileContentStore{path: abs}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileContentStore) GetContent(_ context.Context) (models.ClubContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, nil
}

func (s *fileContentStore) SaveContent(_ context.Context, _ models.ClubContent) error {
	return errs.NewReadOnlyError(fmt.Sprintf("content is read from %s; edit the file instead", filepath.Base(s.path)))
}

func (s *fileContentStore) Reload() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read content file: %w", err)
	}

	var content models.ClubContent
	if err := yaml.Unmarshal(raw, &content); err != nil {
		return fmt.Errorf("parse content file: %w", err)
	}
	if err := content.Validate(); err != nil {
		return fmt.Errorf("invalid content file: %w", err)
	}

	s.mu.Lock()
	s.current = content
	s.mu.Unlock()
	return nil
}

// Watch reloads the file whenever it changes until ctx is done. The parent
// directory is watched so editors that replace the file are picked up too.
func (s *fileContentStore) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		w.Close()
		return err
	}

	log := logger.FromContext(ctx).With("content_file", s.path)
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != s.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if err := s.Reload(); err != nil {
					log.Warn("content reload failed, keeping previous content", "error", err)
					continue
				}
				log.Info("content reloaded")
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Error("content watcher error", "error", err)
			}
		}
	}()
	return nil
}
