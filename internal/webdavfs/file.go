package webdavfs

import (
	"context"
	"io"
	"os"

	"github.com/dbytex91/plexdav/internal/model"
	"github.com/dbytex91/plexdav/internal/rangestream"
	"github.com/dbytex91/plexdav/internal/upstream"
)

// dirHandle is the webdav.File returned for a directory: it only supports
// Stat/Readdir/Close, exactly like decypharr's directory-mode File with
// metadataOnly set.
type dirHandle struct {
	info     os.FileInfo
	children []os.FileInfo
}

func newDirHandle(dir *model.VirtualDir) *dirHandle {
	children := make([]os.FileInfo, 0, len(dir.Children))
	for _, child := range dir.Children {
		children = append(children, statOf(child))
	}
	return &dirHandle{info: statOf(dir), children: children}
}

func (d *dirHandle) Close() error               { return nil }
func (d *dirHandle) Read([]byte) (int, error)   { return 0, os.ErrInvalid }
func (d *dirHandle) Write([]byte) (int, error)  { return 0, os.ErrPermission }
func (d *dirHandle) Seek(int64, int) (int64, error) {
	return 0, os.ErrInvalid
}
func (d *dirHandle) Stat() (os.FileInfo, error) { return d.info, nil }

func (d *dirHandle) Readdir(count int) ([]os.FileInfo, error) {
	if count <= 0 {
		out := d.children
		d.children = nil
		return out, nil
	}
	if len(d.children) == 0 {
		return nil, io.EOF
	}
	if count > len(d.children) {
		count = len(d.children)
	}
	out := d.children[:count]
	d.children = d.children[count:]
	return out, nil
}

// fileHandle is the webdav.File returned for a leaf: reads are proxied to a
// lazily-opened rangestream.Stream.
type fileHandle struct {
	info   os.FileInfo
	stream *rangestream.Stream
}

func newFileHandle(ctx context.Context, client *upstream.Client, f *model.VirtualFile) *fileHandle {
	return &fileHandle{
		info:   statOf(f),
		stream: rangestream.New(ctx, client, f.RDHref, f.Size),
	}
}

func (f *fileHandle) Close() error                  { return f.stream.Close() }
func (f *fileHandle) Read(p []byte) (int, error)    { return f.stream.Read(p) }
func (f *fileHandle) Seek(off int64, whence int) (int64, error) {
	return f.stream.Seek(off, whence)
}
func (f *fileHandle) Write([]byte) (int, error) { return 0, os.ErrPermission }
func (f *fileHandle) Stat() (os.FileInfo, error) { return f.info, nil }
func (f *fileHandle) Readdir(int) ([]os.FileInfo, error) {
	return nil, os.ErrInvalid
}
