package web

import (
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/dmitrijs2005/reform/internal/staging"
)

// splitKey turns an input name such as "profile[avatar][file]" into its
// path segments. Names with unbalanced or empty brackets are rejected.
func splitKey(key string) ([]string, bool) {
	head, rest, nested := strings.Cut(key, "[")
	if head == "" {
		return nil, false
	}
	path := []string{head}
	if !nested {
		return path, true
	}

	rest = "[" + rest
	for rest != "" {
		if rest[0] != '[' {
			return nil, false
		}
		seg, tail, ok := strings.Cut(rest[1:], "]")
		if !ok || seg == "" {
			return nil, false
		}
		path = append(path, seg)
		rest = tail
	}
	return path, true
}

// put stores v at path inside m, creating intermediate maps. A path that
// runs through a value that is not a map is dropped.
func put(m map[string]any, path []string, v any) {
	for _, seg := range path[:len(path)-1] {
		next, ok := m[seg].(map[string]any)
		if !ok {
			if _, taken := m[seg]; taken {
				return
			}
			next = make(map[string]any)
			m[seg] = next
		}
		m = next
	}
	m[path[len(path)-1]] = v
}

// decodePayload converts a parsed multipart form into the nested payload a
// form tree submits. Each file part is handed to spool; the spooled files are
// returned so the caller can discard those that were never staged.
func decodePayload(mf *multipart.Form, spool func(*multipart.FileHeader) (*staging.File, error)) (map[string]any, []*staging.File, error) {
	payload := make(map[string]any)
	if mf == nil {
		return payload, nil, nil
	}

	for key, values := range mf.Value {
		path, ok := splitKey(key)
		if !ok {
			continue
		}
		switch len(values) {
		case 0:
		case 1:
			put(payload, path, values[0])
		default:
			put(payload, path, values)
		}
	}

	var spooled []*staging.File
	for key, headers := range mf.File {
		path, ok := splitKey(key)
		if !ok || len(headers) == 0 {
			continue
		}
		f, err := spool(headers[0])
		if err != nil {
			return nil, spooled, fmt.Errorf("field %s: %w", key, err)
		}
		spooled = append(spooled, f)
		put(payload, path, f)
	}

	return payload, spooled, nil
}
