// Package items reads candidate lists from files.
package items

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for file extensions Load cannot read
var ErrUnsupportedFormat = errors.New("unsupported items format")

// Load reads raw items from path. The format follows the extension:
//   - .txt or none: one item per non-blank line
//   - .json: an array, or an object with an "items" array; objects stay gjson.Result
//   - .yaml/.yml: a sequence, or a mapping with an "items" sequence
//   - .toml: an "items" array
func Load(path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}

	var items []any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "", ".txt", ".lst":
		items, err = parseLines(data)
	case ".json":
		items, err = parseJSON(data)
	case ".yaml", ".yml":
		items, err = parseYAML(data)
	case ".toml":
		items, err = parseTOML(data)
	default:
		return nil, fmt.Errorf("%s: %w", ext, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return items, nil
}

func parseLines(data []byte) ([]any, error) {
	var items []any
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		items = append(items, line)
	}
	return items, scanner.Err()
}

func parseJSON(data []byte) ([]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid json")
	}

	root := gjson.ParseBytes(data)
	if root.IsObject() {
		root = root.Get("items")
	}
	if !root.IsArray() {
		return nil, errors.New("expected an array of items")
	}

	var items []any
	root.ForEach(func(_, value gjson.Result) bool {
		if value.Type == gjson.String {
			items = append(items, value.String())
		} else {
			items = append(items, value)
		}
		return true
	})
	return items, nil
}

func parseYAML(data []byte) ([]any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if m, ok := doc.(map[string]any); ok {
		doc = m["items"]
	}
	items, ok := doc.([]any)
	if !ok {
		return nil, errors.New("expected a sequence of items")
	}
	return items, nil
}

func parseTOML(data []byte) ([]any, error) {
	var doc struct {
		Items []any `toml:"items"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Items, nil
}
