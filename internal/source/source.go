// Package source loads narrative source texts from disk.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const previewLength = 500

// Narrative represents a loaded source text
type Narrative struct {
	Content  string
	Preview  string
	Metadata Metadata
}

// Metadata contains source file metadata
type Metadata struct {
	Title         string    `json:"title"`
	SourcePath    string    `json:"source_path"`
	SourceFormat  string    `json:"source_format"`
	FileSizeBytes int64     `json:"file_size_bytes"`
	WordCount     int       `json:"word_count"`
	LoadedAt      time.Time `json:"loaded_at"`
}

// FileSizeHuman returns human-readable file size
func (m Metadata) FileSizeHuman() string {
	bytes := m.FileSizeBytes
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}
	if bytes < 1024*1024 {
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	}
	return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
}

// Load reads a plain text or markdown file into a Narrative.
func Load(path string) (*Narrative, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absPath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(absPath))
	switch ext {
	case ".txt", ".md", ".markdown", "":
	default:
		return nil, fmt.Errorf("unsupported format %q (expected .txt or .md)", ext)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(string(data))
	if content == "" {
		return nil, fmt.Errorf("source file is empty: %s", path)
	}

	return &Narrative{
		Content: content,
		Preview: preview(content),
		Metadata: Metadata{
			Title:         InferTitle(content, absPath),
			SourcePath:    absPath,
			SourceFormat:  strings.TrimPrefix(ext, "."),
			FileSizeBytes: info.Size(),
			WordCount:     len(strings.Fields(content)),
			LoadedAt:      time.Now(),
		},
	}, nil
}

// InferTitle takes a markdown heading or the first short line, falling
// back to the file name.
func InferTitle(content, path string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "# "))
		}
		if len(line) <= 80 {
			return line
		}
		break
	}

	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return titleCase(name)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func preview(content string) string {
	if len(content) <= previewLength {
		return content
	}
	cut := content[:previewLength]
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
