package pipeline

import (
	"regexp"
	"strings"
)

// CleanJSON strips markdown code fences from a model response so the
// remainder can be fed to json.Unmarshal. Models wrap JSON in fences
// despite instructions often enough that every stage runs this.
func CleanJSON(s string) string {
	s = strings.TrimSpace(s)

	if !strings.Contains(s, "```") {
		return s
	}

	var jsonLines []string
	in := false
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			in = !in
			continue
		}
		if in {
			jsonLines = append(jsonLines, line)
		}
	}
	if len(jsonLines) > 0 {
		return strings.Join(jsonLines, "\n")
	}

	// Fences present but nothing captured; cut everything outside the
	// outermost braces instead.
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}

// MetadataField pulls one FIELD: value entry out of a scene metadata
// block. Values may span lines up to the next FIELD_NAME: marker.
func MetadataField(text, field string) string {
	pattern := regexp.MustCompile(`(?is)` + regexp.QuoteMeta(field) + `:\s*(.+?)(?:\n[A-Z_]+:|$)`)
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	value := strings.TrimSpace(m[1])
	value = strings.TrimPrefix(value, "[")
	value = strings.TrimSuffix(value, "]")
	return strings.TrimSpace(value)
}

// SplitList splits a metadata list value on the given separator and
// drops empty entries.
func SplitList(value, sep string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(value, sep) {
		item = strings.TrimSpace(item)
		if item != "" && !strings.EqualFold(item, "none") {
			out = append(out, item)
		}
	}
	return out
}
