package webdavfs

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dbytex91/plexdav/internal/metadata"
	"github.com/dbytex91/plexdav/internal/upstream"
	"github.com/dbytex91/plexdav/internal/vfs"
)

func newTestFS() *FS {
	client := upstream.New("http://127.0.0.1:0", "u", "p", time.Minute)
	engine := vfs.New(client, metadata.NewResolver())
	return New(engine, client)
}

func TestFSMutationsAreForbidden(t *testing.T) {
	fs := newTestFS()
	ctx := context.Background()

	require.ErrorIs(t, fs.Mkdir(ctx, "/Movies/New", 0755), os.ErrPermission)
	require.ErrorIs(t, fs.RemoveAll(ctx, "/Movies"), os.ErrPermission)
	require.ErrorIs(t, fs.Rename(ctx, "/Movies/A", "/Movies/B"), os.ErrPermission)
}

func TestFSOpenFileRejectsWriteFlags(t *testing.T) {
	fs := newTestFS()
	ctx := context.Background()

	_, err := fs.OpenFile(ctx, "/Movies/Whatever.mkv", os.O_WRONLY, 0)
	require.ErrorIs(t, err, os.ErrPermission)

	_, err = fs.OpenFile(ctx, "/Movies/Whatever.mkv", os.O_RDWR, 0)
	require.ErrorIs(t, err, os.ErrPermission)

	_, err = fs.OpenFile(ctx, "/Movies/Whatever.mkv", os.O_CREATE, 0)
	require.ErrorIs(t, err, os.ErrPermission)
}
