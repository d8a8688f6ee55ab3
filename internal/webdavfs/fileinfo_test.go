package webdavfs

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dbytex91/plexdav/internal/model"
)

func TestStatOfDirectory(t *testing.T) {
	dir := model.NewDir("Movies", time.Now())
	info := statOf(dir)
	require.True(t, info.IsDir())
	require.Equal(t, "Movies", info.Name())

	ct, err := info.(interface {
		ContentType(context.Context) (string, error)
	}).ContentType(context.Background())
	require.NoError(t, err)
	require.Equal(t, "inode/directory", ct)
}

func TestStatOfFileExposesETagAndContentType(t *testing.T) {
	f := &model.VirtualFile{Name: "Gen.V.S01E01.mkv", Size: 12345, RDHref: "/torrents/a/1"}
	info := statOf(f)
	require.False(t, info.IsDir())
	require.EqualValues(t, 12345, info.Size())

	withETag, ok := info.(interface {
		ETag(context.Context) (string, error)
	})
	require.True(t, ok)
	tag, err := withETag.ETag(context.Background())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(tag, `"`) && strings.HasSuffix(tag, `"`))

	withType := info.(interface {
		ContentType(context.Context) (string, error)
	})
	ct, err := withType.ContentType(context.Background())
	require.NoError(t, err)
	require.Equal(t, "video/x-matroska", ct)
}

func TestETagStableForSameInput(t *testing.T) {
	require.Equal(t, etag("/a/b", 100), etag("/a/b", 100))
	require.NotEqual(t, etag("/a/b", 100), etag("/a/b", 200))
}

func TestETagIsQuotedPerRFC7232(t *testing.T) {
	tag := etag("/a/b", 100)
	require.True(t, strings.HasPrefix(tag, `"`))
	require.True(t, strings.HasSuffix(tag, `"`))
	require.Regexp(t, `^"[0-9a-f]+-100"$`, tag)
}
