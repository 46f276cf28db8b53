package utils

import (
	"bytes"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
)

// RenderHighlighted writes content to w with terminal syntax highlighting.
// If the lexer or style is unknown chroma falls back to plain text.
func RenderHighlighted(w io.Writer, content string, language string, theme string) error {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, content, language, "terminal256", theme); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
