package pipeline

import "strings"

const maxExcerptChars = 8000

// Excerpt trims a source text down to maxChars for prompt inclusion,
// cutting on paragraph boundaries so the model never sees a sentence
// sliced mid-word.
func Excerpt(content string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = maxExcerptChars
	}
	if len(content) <= maxChars {
		return content
	}

	var sb strings.Builder
	for _, para := range strings.Split(content, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if sb.Len()+len(para)+2 > maxChars {
			break
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(para)
	}

	// One giant paragraph; fall back to a hard cut on the last space.
	if sb.Len() == 0 {
		cut := content[:maxChars]
		if i := strings.LastIndex(cut, " "); i > 0 {
			cut = cut[:i]
		}
		return cut
	}

	return sb.String()
}
