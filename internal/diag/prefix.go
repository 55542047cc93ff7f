package diag

import (
	"bytes"
	"io"
)

// prefixWriter inserts a fixed prefix at the start of every line it
// forwards. Partial lines across Write calls are handled; the prefix is
// only emitted once per line.
type prefixWriter struct {
	w       io.Writer
	prefix  []byte
	midline bool
}

func newPrefixWriter(w io.Writer, prefix string) io.Writer {
	if prefix == "" {
		return w
	}
	return &prefixWriter{w: w, prefix: []byte(prefix)}
}

func (pw *prefixWriter) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		if !pw.midline {
			if _, err := pw.w.Write(pw.prefix); err != nil {
				return written, err
			}
			pw.midline = true
		}

		chunk := p
		if i := bytes.IndexByte(p, '\n'); i >= 0 {
			chunk = p[:i+1]
		}
		n, err := pw.w.Write(chunk)
		written += n
		if err != nil {
			return written, err
		}
		if chunk[len(chunk)-1] == '\n' {
			pw.midline = false
		}
		p = p[len(chunk):]
	}
	return written, nil
}
