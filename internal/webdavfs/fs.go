// Package webdavfs bridges the projection engine (internal/vfs) and the
// range stream (internal/rangestream) into golang.org/x/net/webdav's
// FileSystem/File contracts — the downstream WebDAV protocol framing this
// gateway consumes rather than reimplements, the same way rclone's
// cmd/serve/webdav and decypharr's pkg/webdav each mount a custom
// FileSystem behind that package's Handler.
package webdavfs

import (
	"context"
	"os"

	"golang.org/x/net/webdav"

	"github.com/dbytex91/plexdav/internal/apperr"
	"github.com/dbytex91/plexdav/internal/model"
	"github.com/dbytex91/plexdav/internal/upstream"
	"github.com/dbytex91/plexdav/internal/vfs"
)

// FS is a read-only golang.org/x/net/webdav.FileSystem over the current
// tree snapshot. Every mutating method fails with os.ErrPermission, which
// webdav.Handler reports to clients as 403 Forbidden.
type FS struct {
	engine *vfs.Engine
	client *upstream.Client
}

var _ webdav.FileSystem = (*FS)(nil)

// New wires engine (tree + freshness) and client (range reads) into a
// webdav.FileSystem ready to hand to webdav.Handler.
func New(engine *vfs.Engine, client *upstream.Client) *FS {
	return &FS{engine: engine, client: client}
}

func (fs *FS) Mkdir(context.Context, string, os.FileMode) error {
	return os.ErrPermission
}

func (fs *FS) RemoveAll(context.Context, string) error {
	return os.ErrPermission
}

func (fs *FS) Rename(context.Context, string, string) error {
	return os.ErrPermission
}

func (fs *FS) Stat(ctx context.Context, name string) (os.FileInfo, error) {
	node := fs.engine.Resolve(ctx, name)
	if node == nil {
		return nil, os.ErrNotExist
	}
	return statOf(node), nil
}

func (fs *FS) OpenFile(ctx context.Context, name string, flag int, _ os.FileMode) (webdav.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE) != 0 {
		return nil, os.ErrPermission
	}

	node := fs.engine.Resolve(ctx, name)
	if node == nil {
		return nil, os.ErrNotExist
	}

	switch v := node.(type) {
	case *model.VirtualDir:
		return newDirHandle(v), nil
	case *model.VirtualFile:
		return newFileHandle(ctx, fs.client, v), nil
	default:
		return nil, apperr.ErrNotFound
	}
}

