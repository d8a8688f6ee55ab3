package webdavfs

import (
	"context"
	"fmt"
	"hash/fnv"
	"os"
	"time"

	"github.com/dbytex91/plexdav/internal/model"
)

// fileInfo implements os.FileInfo over one model.Node, the same narrow
// struct decypharr's pkg/webdav.FileInfo uses to bridge its tree into
// golang.org/x/net/webdav's expected shape. It additionally implements the
// package's optional ETag/ContentType interfaces so the handler advertises
// both without needing a second lookup against the tree.
type fileInfo struct {
	name    string
	href    string
	size    int64
	isDir   bool
	modTime time.Time
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return fi.size }
func (fi *fileInfo) ModTime() time.Time { return fi.modTime }
func (fi *fileInfo) IsDir() bool        { return fi.isDir }
func (fi *fileInfo) Sys() any           { return nil }

func (fi *fileInfo) Mode() os.FileMode {
	if fi.isDir {
		return 0555 | os.ModeDir
	}
	return 0444
}

// ETag satisfies golang.org/x/net/webdav's optional per-file ETag hook.
func (fi *fileInfo) ETag(context.Context) (string, error) {
	if fi.isDir {
		return "", nil
	}
	return etag(fi.href, fi.size), nil
}

// ContentType satisfies golang.org/x/net/webdav's optional per-file
// Content-Type hook.
func (fi *fileInfo) ContentType(context.Context) (string, error) {
	if fi.isDir {
		return "inode/directory", nil
	}
	return contentType(fi.name), nil
}

func statOf(n model.Node) os.FileInfo {
	switch v := n.(type) {
	case *model.VirtualDir:
		return &fileInfo{name: v.Name, isDir: true, modTime: v.MTime}
	case *model.VirtualFile:
		return &fileInfo{name: v.Name, href: v.RDHref, size: v.Size, modTime: v.MTime}
	default:
		return nil
	}
}

// etag is `"<hash(href)>-<size>"`, a quoted opaque validator per RFC 7232,
// derived from the upstream href rather than file content, since this
// gateway never reads a whole file up front just to checksum it.
func etag(href string, size int64) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(href))
	return fmt.Sprintf("\"%x-%d\"", h.Sum64(), size)
}
