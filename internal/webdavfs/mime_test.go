package webdavfs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContentTypeKnownExtensions(t *testing.T) {
	require.Equal(t, "video/x-matroska", contentType("Gen.V.S01E01.mkv"))
	require.Equal(t, "text/plain", contentType("Gen.V.S01E01.srt"))
	require.Equal(t, "video/mp4", contentType("Movie.MP4"))
}

func TestContentTypeUnknownExtensionFallsBackToOctetStream(t *testing.T) {
	require.Equal(t, "application/octet-stream", contentType("README"))
	require.Equal(t, "application/octet-stream", contentType("file.nfo"))
}
