package wire

import (
	"fmt"
	"sort"
	"strings"
)

// PathError is returned by Lookup when a key is missing.
type PathError struct {
	Path    string
	Key     string
	At      string
	Valid   []string
	NotDict string
}

func (e *PathError) Error() string {
	valid := fmt.Sprintf("%q", e.Valid)
	if e.NotDict != "" {
		valid = e.NotDict
	}
	return fmt.Sprintf("Unable to find key %q in path %q\n  Valid keys at %q:\n  %s",
		e.Key, e.Path, e.At, valid)
}

// Lookup walks obj along a "/" separated path of map keys.
func Lookup(obj any, path string) (any, error) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	value := obj
	for i, key := range parts {
		m, ok := value.(map[string]any)
		if ok {
			if next, found := m[key]; found {
				value = next
				continue
			}
		}

		e := &PathError{Path: path, Key: key, At: strings.Join(parts[:i], "/")}
		if ok {
			for k := range m {
				e.Valid = append(e.Valid, k)
			}
			sort.Strings(e.Valid)
		} else {
			name := "document"
			if i > 0 {
				name = parts[i-1]
			}
			e.NotDict = fmt.Sprintf("NONE: key %q is %T, not a map.", name, value)
		}
		return nil, e
	}
	return value, nil
}
