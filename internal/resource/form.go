package resource

import (
	"net/url"
	"strings"
)

// FormValue returns the trimmed value posted under key.
func FormValue(form url.Values, key string) string {
	return strings.TrimSpace(form.Get(key))
}

// FormList returns the non-blank values posted under key, de-duplicated
// and in submission order. The result is never nil.
func FormList(form url.Values, key string) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, v := range form[key] {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// FormBool reports whether a checkbox was ticked.
func FormBool(form url.Values, key string) bool {
	switch strings.ToLower(FormValue(form, key)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
