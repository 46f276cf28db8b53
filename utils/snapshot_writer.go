package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/satish1373/automation-pipeline-demo/context_analyzer/models"
	"gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"

	// StdoutPath makes SaveSnapshot print instead of writing a file.
	StdoutPath = "-"
)

// FormatFromPath guesses the snapshot format from the output file name.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// MarshalSnapshot serializes the snapshot as 2-space indented JSON or YAML.
func MarshalSnapshot(snapshot *models.ProjectContext, format string) ([]byte, error) {
	var buffer bytes.Buffer
	if err := WriteSnapshot(&buffer, snapshot, format); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// WriteSnapshot writes the serialized snapshot to w.
func WriteSnapshot(w io.Writer, snapshot *models.ProjectContext, format string) error {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		if err := encoder.Encode(snapshot); err != nil {
			return fmt.Errorf("failed to encode snapshot as json: %w", err)
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(snapshot); err != nil {
			return fmt.Errorf("failed to encode snapshot as yaml: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to encode snapshot as yaml: %w", err)
		}
	default:
		return fmt.Errorf("unsupported snapshot format %q", format)
	}
	return nil
}

// SaveSnapshot writes the snapshot to path, replacing any previous file.
// With path "-" it goes to stdout, highlighted when stdout is a terminal.
func SaveSnapshot(path string, snapshot *models.ProjectContext, format string, theme string) error {
	if format == "" {
		format = FormatFromPath(path)
	}

	data, err := MarshalSnapshot(snapshot, format)
	if err != nil {
		return err
	}

	if path == StdoutPath {
		if IsTerminal(os.Stdout) {
			return RenderHighlighted(os.Stdout, string(data), format, theme)
		}
		_, err := os.Stdout.Write(data)
		return err
	}

	return writeFileAtomic(path, data)
}

// writeFileAtomic writes through a temp file in the target directory so a
// reader never sees a half-written snapshot.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
