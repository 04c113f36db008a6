package battlelog

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
)

// writeFile writes body to path, gzipping it first when configured.
// An existing file is truncated so re-runs stay idempotent.
func (arc *Archiver) writeFile(path string, body []byte) error {
	if arc.UseGzip {
		path += ".gz"

		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		if _, err := gz.Write(body); err != nil {
			return err
		}
		if err := gz.Close(); err != nil {
			return err
		}
		body = buf.Bytes()
	}

	if err := os.WriteFile(path, body, 0600); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}

	return nil
}

// isNullBody reports whether a response body carries no report data.
// Battlelog returns the literal string "null" for reports it will not
// serve.
func isNullBody(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
