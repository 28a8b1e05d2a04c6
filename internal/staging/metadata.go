package staging

import (
	"encoding/json"
	"errors"
	"regexp"
)

var (
	ErrNotStaged   = errors.New("nothing staged under name")
	ErrInvalidName = errors.New("invalid staging name")
)

const sidecarExt = ".json"

var nameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidName reports whether name can be used as a staging handle. Valid
// names never contain separators or dots, so they stay inside the staging
// directory and never collide with a sidecar.
func ValidName(name string) bool {
	return len(name) <= 255 && nameRe.MatchString(name)
}

// Metadata is what the client reported about an upload. It is stored next
// to the staged bytes as <name>.json. MimeType and Size are nil when unknown.
type Metadata struct {
	OriginalName string  `json:"originalName"`
	MimeType     *string `json:"mimeType"`
	Size         *int64  `json:"size"`
}

// decodeMetadata reads a sidecar key by key. A key that is missing or has a
// value of the wrong type stays unknown without affecting the others; a
// missing original name falls back to fallbackName.
func decodeMetadata(b []byte, fallbackName string) Metadata {
	var raw map[string]json.RawMessage
	_ = json.Unmarshal(b, &raw)

	var m Metadata
	if v, ok := raw["originalName"]; ok {
		_ = json.Unmarshal(v, &m.OriginalName)
	}
	if v, ok := raw["mimeType"]; ok {
		var mt *string
		if json.Unmarshal(v, &mt) == nil {
			m.MimeType = mt
		}
	}
	if v, ok := raw["size"]; ok {
		var size *int64
		if json.Unmarshal(v, &size) == nil {
			m.Size = size
		}
	}

	if m.OriginalName == "" {
		m.OriginalName = fallbackName
	}
	return m
}

func (m Metadata) clone() Metadata {
	c := Metadata{OriginalName: m.OriginalName}
	if m.MimeType != nil {
		v := *m.MimeType
		c.MimeType = &v
	}
	if m.Size != nil {
		v := *m.Size
		c.Size = &v
	}
	return c
}
