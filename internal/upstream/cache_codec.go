package upstream

import (
	"encoding/json"

	"github.com/dbytex91/plexdav/internal/model"
)

// encodeEntries/decodeEntries round-trip a listing through freecache's
// []byte values via JSON, so a cached directory listing survives a Get/Set
// round trip without a custom binary format.
func encodeEntries(entries []model.RawEntry) []byte {
	b, _ := json.Marshal(entries)
	return b
}

func decodeEntries(raw []byte) ([]model.RawEntry, error) {
	var entries []model.RawEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
