//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"
	"strings"
)

var countries = []string{"Canada", "United States", "Mexico", "Japan", "China", "United Kingdom"}

// CreateTestWorkspace creates a temporary directory the app runs in
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// WriteFile writes a file into the workspace and returns its path
func (tf *TUITestFramework) WriteFile(name, content string) (string, error) {
	path := filepath.Join(tf.workspace, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	return path, os.WriteFile(path, []byte(content), 0644)
}

// CreateItemsFile writes one item per line
func (tf *TUITestFramework) CreateItemsFile(name string, values ...string) (string, error) {
	if len(values) == 0 {
		values = countries
	}
	return tf.WriteFile(name, strings.Join(values, "\n")+"\n")
}
