package diag

import (
	"errors"
	"io"
	"time"
)

// DefaultTimeout bounds a fetch when the caller does not supply a limit.
// It is short on purpose: a fetch can block behind the remote process, and
// blocking the dump caller for long can deadlock the host.
const DefaultTimeout = 2 * time.Second

// ErrTimeout reports that the remote side did not finish streaming within
// the allowed window. It is distinct from any transport failure the source
// itself returns.
var ErrTimeout = errors.New("diag: timed out waiting for diagnostics")

// Source streams extended diagnostic output into dst and returns a
// transport failure, if any. It is typically a bound method of the owning
// process.
type Source func(dst io.Writer) error

// Fetch runs src against an in-process pipe and copies its output to dst
// with prefix applied at the start of every line. The copy is abandoned
// once timeout elapses; src is unblocked by failing its writes.
//
// Fetch returns nil when the stream completed, ErrTimeout when the window
// expired, and the source's own error for a transport failure.
func Fetch(dst io.Writer, src Source, prefix string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	pr, pw := io.Pipe()
	go func() {
		// CloseWithError(nil) closes cleanly, so a successful stream ends
		// the copy below with io.EOF.
		pw.CloseWithError(src(pw))
	}()

	done := make(chan error, 1)
	go func() {
		_, err := io.Copy(newPrefixWriter(dst, prefix), pr)
		done <- err
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
		// Fail the pipe so both goroutines unwind; the source's next write
		// returns ErrTimeout.
		pr.CloseWithError(ErrTimeout)
		return ErrTimeout
	}
}
