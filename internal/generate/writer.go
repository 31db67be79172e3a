// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Zodgen Authors

package generate

import (
	"os"
	"path/filepath"
)

// Writer is the file-emission collaborator: it receives rendered units
// addressed by slash-separated relative paths.
type Writer interface {
	Write(relPath string, data []byte) error
}

// DirWriter writes units under a root directory, creating intermediate
// directories as needed.
type DirWriter struct {
	Root string
}

// Write stores data at root/relPath.
func (w DirWriter) Write(relPath string, data []byte) error {
	target := filepath.Join(w.Root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o600)
}
