// Package settings persists which services of a stack are enabled.
//
// All stacks share one JSON file keyed by the set of compose files that make
// up the stack:
//
//	{
//	  "composeFiles": {
//	    "/src/shop/docker-compose.yml": {"services": {"web": true, "db": false}}
//	  },
//	  "version": "1.2.0"
//	}
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/sys/atomicwriter"
	"github.com/peauc/dcv/pkg/compose"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
	"github.com/spkg/bom"
)

// StackKey identifies a stack by its ordered list of absolute compose file paths.
type StackKey string

// NewStackKey builds the key for the given compose files.
func NewStackKey(paths []string) StackKey {
	return StackKey(strings.Join(paths, ","))
}

// PersistenceError reports a settings file that could not be read or written.
type PersistenceError struct {
	Path string
	Op   string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s settings %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// StackSettings is the persisted record for one stack.
type StackSettings struct {
	Services compose.EnablementMap `json:"services"`
}

type settingsFile struct {
	ComposeFiles map[StackKey]*StackSettings `json:"composeFiles"`
	Version      string                      `json:"version"`
}

// Store reads and writes the settings file. Every mutation rewrites the whole
// file before returning.
type Store struct {
	Log *logrus.Entry

	path    string
	version string
	mutex   deadlock.Mutex
}

// NewStore returns a store backed by path. The file and its directory are
// created on first access.
func NewStore(log *logrus.Entry, path string, version string) *Store {
	return &Store{Log: log, path: path, version: version}
}

// Path returns the location of the settings file.
func (s *Store) Path() string {
	return s.path
}

// Get returns the selection for the stack, or an empty map if there is none.
func (s *Store) Get(key StackKey) (compose.EnablementMap, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	file, err := s.read()
	if err != nil {
		return nil, err
	}
	return file.services(key).Clone(), nil
}

// Toggle flips each named service; a service seen for the first time becomes
// enabled. The updated selection is written out before it is returned.
func (s *Store) Toggle(key StackKey, names ...string) (compose.EnablementMap, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	file, err := s.read()
	if err != nil {
		return nil, err
	}

	services := file.services(key).Clone()
	for _, name := range names {
		enabled, seen := services[name]
		services[name] = !seen || !enabled
	}
	file.ComposeFiles[key] = &StackSettings{Services: services}

	if err := s.write(file); err != nil {
		return nil, err
	}

	s.Log.WithField("stack", key).Debugf("toggled %s", strings.Join(names, ", "))
	return services.Clone(), nil
}

// EnsureEnabled enables every given service when the stack has no stored
// selection yet, so a stack starts out fully enabled the first time it is seen.
func (s *Store) EnsureEnabled(key StackKey, names []string) (compose.EnablementMap, error) {
	current, err := s.Get(key)
	if err != nil {
		return nil, err
	}
	if len(current) > 0 {
		return current, nil
	}
	return s.Toggle(key, names...)
}

func (f *settingsFile) services(key StackKey) compose.EnablementMap {
	if stack, ok := f.ComposeFiles[key]; ok && stack != nil && stack.Services != nil {
		return stack.Services
	}
	return compose.EnablementMap{}
}

func (s *Store) read() (*settingsFile, error) {
	if err := s.ensureExists(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &PersistenceError{Path: s.path, Op: "read", Err: err}
	}

	file := &settingsFile{}
	if err := json.Unmarshal(bom.Clean(content), file); err != nil {
		return nil, &PersistenceError{Path: s.path, Op: "decode", Err: err}
	}
	if file.ComposeFiles == nil {
		file.ComposeFiles = map[StackKey]*StackSettings{}
	}
	return file, nil
}

func (s *Store) ensureExists() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return &PersistenceError{Path: s.path, Op: "stat", Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &PersistenceError{Path: s.path, Op: "create", Err: err}
	}

	s.Log.Infof("creating settings file %s", s.path)
	return s.write(&settingsFile{ComposeFiles: map[StackKey]*StackSettings{}})
}

func (s *Store) write(file *settingsFile) error {
	file.Version = s.version

	content, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return &PersistenceError{Path: s.path, Op: "encode", Err: err}
	}

	if err := atomicwriter.WriteFile(s.path, content, 0o644); err != nil {
		return &PersistenceError{Path: s.path, Op: "write", Err: err}
	}
	return nil
}
