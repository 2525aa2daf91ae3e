package pkg

import (
	"io"
	"sync"

	"go.uber.org/multierr"
)

// CombinedWriter fans every write out to all of its writers. A failing writer
// does not stop the others; all failures are combined into the returned error.
type CombinedWriter struct {
	mu      sync.Mutex
	writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	cw := &CombinedWriter{}
	for _, w := range writers {
		if w != nil {
			cw.writers = append(cw.writers, w)
		}
	}
	return cw
}

func (cw *CombinedWriter) Len() int {
	return len(cw.writers)
}

// Write reports len(p) when at least one writer accepted the whole payload,
// so logrus does not treat a broken secondary sink as a short write.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	var (
		err      error
		accepted bool
	)
	for _, w := range cw.writers {
		n, werr := w.Write(p)
		if werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		if n == len(p) {
			accepted = true
		}
	}
	if !accepted {
		return 0, err
	}
	return len(p), err
}
