package multiwritercloser

import (
	"io"
	"sync"
)

var _ io.Writer = (*MultiWriterCloser)(nil)
var _ io.Closer = (*MultiWriterCloser)(nil)

// MultiWriterCloser is a wrapper around io.MultiWriter that also closes
// every outlet implementing io.Closer. An outlet that appears more than
// once is closed once.
type MultiWriterCloser struct {
	io.Writer

	closeOnce sync.Once
	cs        []io.Closer
}
