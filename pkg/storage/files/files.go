// Copyright 2026 The parley Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const partialSuffix = ".part"

// ErrInvalidName is returned when a received file name can not be placed in the store.
var ErrInvalidName = errors.New("files: invalid file name")

// Config contains file store configuration.
type Config struct {
	// Dir is the directory received files are written to.
	Dir string `fig:"dir" default:"downloads" yaml:"dir"`
}

// Store reads files to be sent and writes received ones into a directory.
type Store struct {
	dir string
}

// New returns a Store rooted at cfg.Dir.
func New(cfg Config) *Store {
	return &Store{dir: cfg.Dir}
}

// Open opens a file to be sent.
func (s *Store) Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if fi.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("files: %s is a directory", path)
	}
	return &Source{File: f, name: fi.Name(), size: fi.Size()}, nil
}

// Create returns a sink for a received file named name.
// Data is written to a partial file that only becomes visible under its final name on Commit.
func (s *Store) Create(name string) (*Sink, error) {
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." || strings.HasPrefix(base, ".") {
		return nil, ErrInvalidName
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(s.dir, base+".*"+partialSuffix)
	if err != nil {
		return nil, err
	}
	return &Sink{f: f, dir: s.dir, name: base}, nil
}

// Source is a file being sent.
type Source struct {
	*os.File
	name string
	size int64
}

// Name returns the file base name.
func (s *Source) Name() string { return s.name }

// Size returns the file size in bytes.
func (s *Source) Size() int64 { return s.size }

// Sink is a file being received.
type Sink struct {
	f    *os.File
	dir  string
	name string
	path string
}

// Write satisfies io.Writer interface.
func (s *Sink) Write(p []byte) (int, error) {
	return s.f.Write(p)
}

// Commit moves the partial file to its final location. A numeric suffix is added
// if a file with the same name already exists.
func (s *Sink) Commit() error {
	if err := s.f.Sync(); err != nil {
		return err
	}
	if err := s.f.Close(); err != nil {
		return err
	}
	ext := filepath.Ext(s.name)
	stem := strings.TrimSuffix(s.name, ext)

	for i := 0; ; i++ {
		candidate := s.name
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}
		path := filepath.Join(s.dir, candidate)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return err
		}
		if err := os.Rename(s.f.Name(), path); err != nil {
			return err
		}
		s.path = path
		return nil
	}
}

// Abort discards the partial file.
func (s *Sink) Abort() error {
	_ = s.f.Close()
	err := os.Remove(s.f.Name())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Path returns the final file path once committed.
func (s *Sink) Path() string { return s.path }
