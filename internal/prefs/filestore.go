/*
 * File-backed preference store.
 *
 * Copyright 2026 Marco Confalonieri.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// fileContent is the on-disk YAML layout.
type fileContent struct {
	Provider   string `yaml:"provider,omitempty"`
	Credential string `yaml:"credential,omitempty"`
	PageSize   int    `yaml:"page_size,omitempty"`
}

// FileStore persists preferences to a YAML file. Writes replace the whole
// file; the content is three keys, so there is nothing to merge.
type FileStore struct {
	m       sync.Mutex
	path    string
	content fileContent
}

// NewFileStore loads (or initializes) the preference file at path.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read preference file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s.content); err != nil {
		return nil, fmt.Errorf("cannot parse preference file: %w", err)
	}
	return s, nil
}

// flush writes the current content back to disk. Callers hold the lock.
func (s *FileStore) flush() error {
	data, err := yaml.Marshal(s.content)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Provider returns the persisted provider identifier, if any.
func (s *FileStore) Provider() (string, bool) {
	s.m.Lock()
	defer s.m.Unlock()
	return s.content.Provider, s.content.Provider != ""
}

// SetProvider persists the provider identifier.
func (s *FileStore) SetProvider(provider string) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.content.Provider = provider
	return s.flush()
}

// Credential returns the persisted credential scope, if any.
func (s *FileStore) Credential() (string, bool) {
	s.m.Lock()
	defer s.m.Unlock()
	return s.content.Credential, s.content.Credential != ""
}

// SetCredential persists the credential scope.
func (s *FileStore) SetCredential(scope string) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.content.Credential = scope
	return s.flush()
}

// ClearSelection removes both selection keys.
func (s *FileStore) ClearSelection() error {
	s.m.Lock()
	defer s.m.Unlock()
	s.content.Provider = ""
	s.content.Credential = ""
	return s.flush()
}

// PageSize returns the persisted page-size preference, if any.
func (s *FileStore) PageSize() (int, bool) {
	s.m.Lock()
	defer s.m.Unlock()
	return s.content.PageSize, s.content.PageSize != 0
}

// SetPageSize persists the page-size preference.
func (s *FileStore) SetPageSize(size int) error {
	if size < MinPageSize {
		return fmt.Errorf("page size %d below minimum %d", size, MinPageSize)
	}
	s.m.Lock()
	defer s.m.Unlock()
	s.content.PageSize = size
	return s.flush()
}
