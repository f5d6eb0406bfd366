package multiwritercloser

import (
	"io"
)

// New duplicates writes to every outlet, like io.MultiWriter.
func New(outlets ...io.Writer) *MultiWriterCloser {
	mwc := &MultiWriterCloser{Writer: io.MultiWriter(outlets...)}

	seen := make(map[io.Closer]bool, len(outlets))
	for _, w := range outlets {
		c, ok := w.(io.Closer)
		if !ok || seen[c] {
			continue
		}

		seen[c] = true
		mwc.cs = append(mwc.cs, c)
	}

	return mwc
}

// Close closes the outlets in order and returns the first error. Calling
// Close again is a no-op.
func (mwc *MultiWriterCloser) Close() (err error) {
	mwc.closeOnce.Do(func() {
		for _, c := range mwc.cs {
			if closeErr := c.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
		}
	})

	return err
}
