package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/okvist/recast/internal/config"
	"github.com/okvist/recast/internal/genre"
	"github.com/okvist/recast/internal/llm"
	"github.com/okvist/recast/internal/pipeline"
	"github.com/okvist/recast/internal/source"
	"github.com/okvist/recast/internal/tui"
	"github.com/okvist/recast/internal/writer"
)

var version = "dev"

var (
	styleStage = lipgloss.NewStyle().Foreground(lipgloss.Color("#D946EF")).Bold(true)
	styleBeat  = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4"))
	styleOK    = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	styleWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
)

func main() {
	// Optional .env next to the binary or in the working directory.
	_ = godotenv.Load()

	var (
		sourcePath = flag.String("source", "", "path to the source story (.txt or .md)")
		title      = flag.String("title", "", "source title (inferred from the file when empty)")
		genreID    = flag.String("genre", "", "target genre id")
		numBeats   = flag.Int("beats", 15, "number of story beats to generate")
		outPath    = flag.String("out", "", "output path for the story (default derived from title)")
		metaPath   = flag.String("meta", "", "output path for run metadata JSON (default alongside story)")
		model      = flag.String("model", "", "override the configured model")
		listGenres = flag.Bool("list-genres", false, "list available genres and exit")
		showVer    = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVer {
		fmt.Println("recast", version)
		return
	}

	if *listGenres {
		templates, err := genre.All()
		if err != nil {
			fatal(err)
		}
		for _, t := range templates {
			fmt.Printf("%-18s %s\n", t.ID, t.Tone)
		}
		return
	}

	// No source given: run the interactive TUI.
	if *sourcePath == "" {
		runTUI()
		return
	}

	runHeadless(*sourcePath, *title, *genreID, *numBeats, *outPath, *metaPath, *model)
}

func runTUI() {
	app := tui.NewApp()
	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fatal(err)
	}
}

func runHeadless(sourcePath, title, genreID string, numBeats int, outPath, metaPath, model string) {
	if genreID == "" {
		fatal(fmt.Errorf("-genre is required (see -list-genres)"))
	}

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	if cfg == nil {
		fatal(fmt.Errorf("no configuration found: run recast once interactively, or set RECAST_PROVIDER and an API key"))
	}
	if model != "" {
		cfg.Model = model
	}

	narrative, err := source.Load(sourcePath)
	if err != nil {
		fatal(err)
	}
	if title == "" {
		title = narrative.Metadata.Title
	}

	provider, err := llm.NewProvider(cfg)
	if err != nil {
		fatal(err)
	}

	tr := pipeline.NewTransformer(provider, cfg.Model, numBeats)
	tr.SetProgressCallback(func(p pipeline.Progress) {
		switch p.Stage {
		case pipeline.StageGenerating:
			if strings.Contains(p.Message, "done") {
				fmt.Println(styleBeat.Render(fmt.Sprintf("  [%d/%d] %s (NTI %.2f, target %.2f)",
					p.ItemIndex, p.TotalItems, p.BeatName, p.Tension, p.Target)))
			}
		default:
			fmt.Println(styleStage.Render(p.Message))
		}
	})

	result, err := tr.Transform(context.Background(), narrative.Content, title, genreID)
	if err != nil {
		fatal(err)
	}

	for _, w := range result.Warnings {
		fmt.Println(styleWarn.Render("  warning: " + w))
	}

	storyText := writer.Assemble(result)

	if outPath == "" {
		base := strings.ToLower(strings.ReplaceAll(title, " ", "_"))
		outPath = base + "_" + genreID + ".md"
	}
	if err := writer.WriteStory(outPath, storyText); err != nil {
		fatal(err)
	}

	if metaPath == "" {
		metaPath = strings.TrimSuffix(outPath, ".md") + ".meta.json"
	}
	meta := writer.BuildMetadata(result, cfg.Model, storyText)
	if err := writer.WriteMetadata(metaPath, meta); err != nil {
		fatal(err)
	}

	fmt.Println(styleOK.Render(fmt.Sprintf("Wrote %s (%d words), metadata in %s",
		outPath, meta.WordCount, metaPath)))
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
