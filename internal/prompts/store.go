package prompts

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/types"
)

// Store holds the current system prompt per source kind. It is owned by
// the app and injected; there is no package-level instance. Readers get
// a string copy, so an admin write never tears an in-flight request.
type Store struct {
	mu       sync.RWMutex
	prompts  map[types.SourceKind]string
	defaults map[types.SourceKind]string
	log      *logger.Logger
}

func NewStore(log *logger.Logger) *Store {
	defaults := Defaults()
	current := make(map[types.SourceKind]string, len(defaults))
	for kind, prompt := range defaults {
		current[kind] = prompt
	}
	return &Store{
		prompts:  current,
		defaults: defaults,
		log:      log.With("service", "PromptStore"),
	}
}

// LoadFile overrides the seeded defaults from a YAML file mapping
// source kind to prompt text. A missing path is not an error.
func (s *Store) LoadFile(path string) error {
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Debug("prompt seed file not found, using built-in defaults", "path", path)
			return nil
		}
		return fmt.Errorf("read prompt seed file: %w", err)
	}
	var seeded map[string]string
	if err := yaml.Unmarshal(raw, &seeded); err != nil {
		return fmt.Errorf("parse prompt seed file: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for rawKind, prompt := range seeded {
		kind, err := types.ParseSourceKind(rawKind)
		if err != nil {
			s.log.Warn("ignoring unknown source kind in prompt seed file", "kind", rawKind)
			continue
		}
		if prompt != "" {
			s.prompts[kind] = prompt
		}
	}
	s.log.Info("system prompts seeded from file", "path", path)
	return nil
}

func (s *Store) Get(kind types.SourceKind) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	prompt, ok := s.prompts[kind]
	if !ok {
		return "", fmt.Errorf("no system prompt for source kind %q", kind)
	}
	return prompt, nil
}

func (s *Store) Set(kind types.SourceKind, prompt string) error {
	if prompt == "" {
		return fmt.Errorf("system prompt must not be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.defaults[kind]; !ok {
		return fmt.Errorf("no system prompt for source kind %q", kind)
	}
	s.prompts[kind] = prompt
	return nil
}

// Reset restores the built-in default and returns it.
func (s *Store) Reset(kind types.SourceKind) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	def, ok := s.defaults[kind]
	if !ok {
		return "", fmt.Errorf("no system prompt for source kind %q", kind)
	}
	s.prompts[kind] = def
	return def, nil
}

func (s *Store) All() map[types.SourceKind]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[types.SourceKind]string, len(s.prompts))
	for kind, prompt := range s.prompts {
		out[kind] = prompt
	}
	return out
}
