// Package rangestream implements a seekable, read-only byte stream backed by
// lazy HTTP Range requests against the upstream client — grounded on
// decypharr's pkg/webdav.File (Read/Seek/lazy-reopen) and, further back, the
// original dav_provider.py's _SeekableRDStream this gateway was distilled
// from.
package rangestream

import (
	"context"
	"fmt"
	"io"

	"github.com/dbytex91/plexdav/internal/apperr"
)

const chunkSize = 64 * 1024

// opener opens a byte range of one resource; internal/upstream.Client
// satisfies this via its OpenRange method, kept as an interface here so
// tests can fake it without a real HTTP server.
type opener interface {
	OpenRange(ctx context.Context, href string, offset, length int64) (io.ReadCloser, int64, error)
}

// Stream is a seekable view over one upstream resource, backed by exactly
// one in-flight HTTP response at a time.
type Stream struct {
	ctx    context.Context
	client opener
	href   string
	size   int64

	pos         int64
	reader      io.ReadCloser
	seekPending bool
	leftover    []byte
}

// New returns a Stream over href, whose total size is size.
func New(ctx context.Context, client opener, href string, size int64) *Stream {
	return &Stream{ctx: ctx, client: client, href: href, size: size}
}

// Tell reports the current read position.
func (s *Stream) Tell() int64 { return s.pos }

// Size reports the resource's total size.
func (s *Stream) Size() int64 { return s.size }

// Seek whence is io.SeekStart/io.SeekCurrent/io.SeekEnd. The resulting
// position is clamped into [0, size]. A seek that doesn't change pos is a
// no-op; one that does defers reopening the upstream response until the
// next Read.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	newPos := s.pos
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos += offset
	case io.SeekEnd:
		newPos = s.size + offset
	default:
		return 0, fmt.Errorf("rangestream: invalid whence %d", whence)
	}

	if newPos < 0 {
		newPos = 0
	}
	if newPos > s.size {
		newPos = s.size
	}

	if newPos != s.pos {
		s.pos = newPos
		s.seekPending = true
		s.leftover = nil
	}

	return s.pos, nil
}

// Read copies into p, opening (or reopening, after a seek) the upstream
// Range response lazily. It serves the in-memory leftover buffer first;
// otherwise it pulls one upstream chunk (up to 64 KiB) and keeps whatever
// does not fit in p as the new leftover. Each call returns data from one
// of those two sources only, so it may return fewer than len(p) bytes
// before the end of the resource.
func (s *Stream) Read(p []byte) (int, error) {
	if s.pos >= s.size {
		return 0, io.EOF
	}

	if s.reader == nil || s.seekPending {
		if s.reader != nil {
			_ = s.reader.Close()
			s.reader = nil
		}

		reader, _, err := s.client.OpenRange(s.ctx, s.href, s.pos, 0)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", apperr.ErrUpstreamUnavailable, err)
		}
		s.reader = reader
		s.seekPending = false
	}

	if len(s.leftover) > 0 {
		n := copy(p, s.leftover)
		s.leftover = s.leftover[n:]
		s.pos += int64(n)
		return n, nil
	}

	buf := make([]byte, chunkSize)
	n, err := s.reader.Read(buf)
	if n > 0 {
		copied := copy(p, buf[:n])
		if copied < n {
			s.leftover = append(s.leftover, buf[copied:n]...)
		}
		s.pos += int64(copied)
		return copied, nil
	}

	if err != nil {
		_ = s.reader.Close()
		s.reader = nil
		if err == io.EOF {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("%w: %v", apperr.ErrIOAborted, err)
	}

	return 0, nil
}

// Close releases the underlying HTTP response, if any.
func (s *Stream) Close() error {
	if s.reader == nil {
		return nil
	}
	err := s.reader.Close()
	s.reader = nil
	return err
}
