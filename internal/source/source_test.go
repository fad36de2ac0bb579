package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPlainText(t *testing.T) {
	path := writeTemp(t, "tale.txt", "Once upon a time there was a story.\n\nIt had two paragraphs.")

	n, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if n.Metadata.WordCount != 12 {
		t.Errorf("word count = %d, want 12", n.Metadata.WordCount)
	}
	if n.Metadata.SourceFormat != "txt" {
		t.Errorf("format = %q", n.Metadata.SourceFormat)
	}
	if !strings.Contains(n.Content, "two paragraphs") {
		t.Error("content truncated")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/story.txt"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeTemp(t, "story.pdf", "not really a pdf")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Fatalf("error = %v, want unsupported format", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeTemp(t, "empty.txt", "   \n\n  ")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestInferTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		path    string
		want    string
	}{
		{"markdown heading", "# The Tell-Tale Heart\n\nTrue! nervous...", "x.md", "The Tell-Tale Heart"},
		{"short first line", "A Modest Proposal\n\nIt is a melancholy object...", "x.txt", "A Modest Proposal"},
		{"long first line falls back", strings.Repeat("word ", 40), "/tmp/the_yellow-wallpaper.txt", "The Yellow Wallpaper"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferTitle(tt.content, tt.path); got != tt.want {
				t.Errorf("InferTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPreviewEndsOnWordBoundary(t *testing.T) {
	long := strings.Repeat("abcdefghi ", 100)
	path := writeTemp(t, "long.txt", long)

	n, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(n.Preview) > previewLength+3 {
		t.Errorf("preview length = %d", len(n.Preview))
	}
	if !strings.HasSuffix(n.Preview, "...") {
		t.Errorf("preview should end with ellipsis, got %q", n.Preview[len(n.Preview)-10:])
	}
}

func TestFileSizeHuman(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}
	for _, tt := range tests {
		m := Metadata{FileSizeBytes: tt.bytes}
		if got := m.FileSizeHuman(); got != tt.want {
			t.Errorf("FileSizeHuman(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
