package rangestream

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeOpener serves byte ranges out of an in-memory buffer, counting how
// many times a range GET was actually issued.
type fakeOpener struct {
	data  []byte
	opens int
}

func (f *fakeOpener) OpenRange(_ context.Context, _ string, offset, length int64) (io.ReadCloser, int64, error) {
	f.opens++
	end := int64(len(f.data))
	if length > 0 && offset+length < end {
		end = offset + length
	}
	return io.NopCloser(bytes.NewReader(f.data[offset:end])), end - offset, nil
}

func TestStreamReadComposition(t *testing.T) {
	data := bytes.Repeat([]byte("abcdefghij"), 10) // 100 bytes
	opener := &fakeOpener{data: data}

	whole := New(context.Background(), opener, "/x", int64(len(data)))
	wholeBuf, err := io.ReadAll(whole)
	require.NoError(t, err)

	opener2 := &fakeOpener{data: data}
	split := New(context.Background(), opener2, "/x", int64(len(data)))
	first := make([]byte, 40)
	n, err := io.ReadFull(split, first)
	require.NoError(t, err)
	require.Equal(t, 40, n)

	rest, err := io.ReadAll(split)
	require.NoError(t, err)

	require.Equal(t, wholeBuf, append(first, rest...))
}

func TestStreamSeekClampsWithinBounds(t *testing.T) {
	opener := &fakeOpener{data: []byte("0123456789")}
	s := New(context.Background(), opener, "/x", 10)

	pos, err := s.Seek(-5, io.SeekStart)
	require.NoError(t, err)
	require.EqualValues(t, 0, pos)

	pos, err = s.Seek(1000, io.SeekStart)
	require.NoError(t, err)
	require.EqualValues(t, 10, pos)

	pos, err = s.Seek(-3, io.SeekEnd)
	require.NoError(t, err)
	require.EqualValues(t, 7, pos)
}

func TestStreamSeekDefersReopenUntilRead(t *testing.T) {
	opener := &fakeOpener{data: []byte("0123456789")}
	s := New(context.Background(), opener, "/x", 10)

	_, _ = s.Seek(5, io.SeekStart)
	require.Equal(t, 0, opener.opens)

	buf := make([]byte, 1)
	_, err := s.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 1, opener.opens)
	require.Equal(t, byte('5'), buf[0])
}

func TestStreamReadAtEOFReturnsEOF(t *testing.T) {
	opener := &fakeOpener{data: []byte("abc")}
	s := New(context.Background(), opener, "/x", 3)
	_, _ = s.Seek(3, io.SeekStart)

	buf := make([]byte, 4)
	n, err := s.Read(buf)
	require.Equal(t, 0, n)
	require.Equal(t, io.EOF, err)
}
