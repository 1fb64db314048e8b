package bids

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidIntent = errors.New("invalid IntendedFor value")

// FolderRef names one folder a fieldmap is intended for.
type FolderRef struct {
	Folder string `json:"Folder" yaml:"Folder"`
}

// Intent is the IntendedFor value of a BIDS record. A nil Intent means the
// field is unset; a non-nil empty Intent is an explicit empty list.
type Intent []FolderRef

// IntentFor builds an Intent from folder names.
func IntentFor(folders ...string) Intent {
	in := make(Intent, 0, len(folders))
	for _, f := range folders {
		in = append(in, FolderRef{Folder: f})
	}
	return in
}

// Folders returns the folder names in order.
func (in Intent) Folders() []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		out = append(out, r.Folder)
	}
	return out
}

// Has reports whether folder is one of the intended folders.
func (in Intent) Has(folder string) bool {
	for _, r := range in {
		if r.Folder == folder {
			return true
		}
	}
	return false
}

// Value encodes the intent for platform metadata: "" when unset, otherwise a
// list of {"Folder": name} objects.
func (in Intent) Value() any {
	if in == nil {
		return ""
	}
	out := make([]any, 0, len(in))
	for _, r := range in {
		out = append(out, map[string]any{"Folder": r.Folder})
	}
	return out
}

// ParseIntent decodes an IntendedFor value as found in platform metadata.
//
// Accepted shapes: nil or "" (unset), a list of {"Folder": name} objects or
// folder-name strings, a JSON-encoded list, or the single-quoted literal
// form ("[{'Folder': 'dwi'}]") written by earlier curation tools.
func ParseIntent(v any) (Intent, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case Intent:
		return t, nil
	case []FolderRef:
		return Intent(t), nil
	case string:
		return parseIntentString(t)
	case []string:
		return IntentFor(t...), nil
	case []map[string]any:
		in := make(Intent, 0, len(t))
		for _, m := range t {
			r, err := folderRefFromMap(m)
			if err != nil {
				return nil, err
			}
			in = append(in, r)
		}
		return in, nil
	case []any:
		in := make(Intent, 0, len(t))
		for _, item := range t {
			switch it := item.(type) {
			case string:
				in = append(in, FolderRef{Folder: it})
			case map[string]any:
				r, err := folderRefFromMap(it)
				if err != nil {
					return nil, err
				}
				in = append(in, r)
			default:
				return nil, fmt.Errorf("%w: unexpected item %T", ErrInvalidIntent, item)
			}
		}
		return in, nil
	default:
		return nil, fmt.Errorf("%w: unexpected type %T", ErrInvalidIntent, v)
	}
}

func folderRefFromMap(m map[string]any) (FolderRef, error) {
	for k, v := range m {
		if !strings.EqualFold(k, "Folder") {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return FolderRef{}, fmt.Errorf("%w: Folder is %T", ErrInvalidIntent, v)
		}
		return FolderRef{Folder: s}, nil
	}
	return FolderRef{}, fmt.Errorf("%w: missing Folder key", ErrInvalidIntent)
}

func parseIntentString(s string) (Intent, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var refs []FolderRef
	if err := json.Unmarshal([]byte(s), &refs); err == nil {
		return Intent(refs), nil
	}

	// single-quoted literal; folder names never contain quotes
	if err := json.Unmarshal([]byte(strings.ReplaceAll(s, "'", `"`)), &refs); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIntent, s)
	}
	return Intent(refs), nil
}
