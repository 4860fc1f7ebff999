// internal/source/reader.go
package source

import (
	"io"
	"os"
	"sync"
)

const (
	readerQueueLen = 8192
	pumpChunk      = 512
)

// Reader adapts a plain io.Reader (stdin, a capture file, a test buffer).
// A pump goroutine moves bytes into a bounded queue; Read only drains
// that queue, so it never waits on the underlying reader.
// The pump stalls while the queue is full, so nothing is dropped.
type Reader struct {
	c io.Closer
	q *queue

	mu   sync.Mutex
	done bool
	err  error
}

// FromReader wraps r. If r is also an io.Closer, Close closes it.
func FromReader(r io.Reader) *Reader {
	c, _ := r.(io.Closer)
	return startReader(r, c)
}

// Stdin reads the process standard input.
func Stdin() *Reader {
	// stdin is never closed by the poller
	return startReader(os.Stdin, nil)
}

func startReader(r io.Reader, c io.Closer) *Reader {
	rd := &Reader{c: c, q: newQueue(readerQueueLen)}
	go rd.pump(r)
	return rd
}

func (r *Reader) pump(src io.Reader) {
	buf := make([]byte, pumpChunk)
	for {
		n, err := src.Read(buf)
		if n > 0 && !r.q.pushWait(buf[:n]) {
			return // closed
		}
		if err != nil {
			r.mu.Lock()
			r.done, r.err = true, err
			r.mu.Unlock()
			return
		}
	}
}

// Read returns queued bytes, (0, nil) when idle, and the reader's
// terminal error (io.EOF for a clean end) once the queue is drained.
func (r *Reader) Read(b []byte) (int, error) {
	if n := r.q.read(b); n > 0 {
		return n, nil
	}

	r.mu.Lock()
	done, err := r.done, r.err
	r.mu.Unlock()
	if !done {
		return 0, nil
	}
	// the pump may have queued a last chunk before finishing
	if n := r.q.read(b); n > 0 {
		return n, nil
	}
	return 0, err
}

func (r *Reader) Close() error {
	r.q.close()
	if r.c == nil {
		return nil
	}
	return r.c.Close()
}
