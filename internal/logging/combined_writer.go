package logging

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter duplicates every write to all of its writers. A failing
// writer does not stop the others; the failures are merged.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{Writers: writers}
}

func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var err error
	for _, w := range cw.Writers {
		if _, werr := w.Write(p); werr != nil {
			err = multierr.Append(err, werr)
		}
	}
	if err != nil {
		return 0, err
	}
	return len(p), nil
}
