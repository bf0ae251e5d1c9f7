package cmd

import (
	"fmt"
	"io"
	"time"

	"watty-downloader/config"
	"watty-downloader/downloader/watty"
	"watty-downloader/model"
	"watty-downloader/text"
	"watty-downloader/utils"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var buildArgs config.Options

var buildCmd = &cobra.Command{
	Use:   "build <story-url>",
	Short: "Build an EPUB from a story page",
	Long:  "Build an EPUB from a story page. Uses the values from the config file, overwritten by CLI flags",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildArgs.Output, "output", "o", "", "output file (default is \"{title}.epub\")")
	buildCmd.Flags().StringVar(&buildArgs.EntryPageTitle, "entry-page-title", "", "title of the intro page")
	buildCmd.Flags().StringVar(&buildArgs.EntryPageTemplate, "entry-page-template", "", "intro page template file")
	buildCmd.Flags().StringVar(&buildArgs.ChapterPageTemplate, "chapter-page-template", "", "chapter page template file")
	buildCmd.Flags().StringVar(&buildArgs.Language, "language", "", "book language")
	buildCmd.Flags().StringVar(&buildArgs.UserAgent, "user-agent", "", "use a fixed User-Agent")
	buildCmd.Flags().BoolVar(&buildArgs.StaticUserAgent, "static-user-agent", false, "do not pick a new random User-Agent per request")
	buildCmd.Flags().BoolVar(&buildArgs.CloudflareBypass, "cloudflare-bypass", false, "use a browser-like TLS transport")
	buildCmd.Flags().IntVar(&buildArgs.TimeoutSeconds, "timeout", 0, "request timeout in seconds")
	buildCmd.Flags().BoolVar(&buildArgs.FullEmptyStars, "full-empty-stars", false, "pad the rating with empty stars up to five")
	buildCmd.Flags().BoolVar(&buildArgs.SanitizeFilename, "sanitize-filename", false, "clean the title before using it as file name")
	buildCmd.Flags().StringVar(&buildArgs.TextExport, "text-export", "", "also write plain text chapters into this directory")

	RootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	opts := buildArgs
	opts.Debug = flagDebug
	cfg, source, err := config.LoadMerged(flagConfig, opts)
	if err != nil {
		return err
	}

	logger := utils.NewLogger(cfg.Debug)
	logger.Debugf("config: %s", source)

	client := utils.NewRestyClient(utils.ClientOptions{
		Timeout:          time.Duration(cfg.TimeoutSeconds) * time.Second,
		UserAgent:        cfg.UserAgent,
		RollingUserAgent: cfg.RollingUserAgent,
		CloudflareBypass: cfg.CloudflareBypass,
		Logger:           logger,
	})

	progress := newChapterProgress(cmd.Context())
	assembler := watty.NewAssembler(watty.Options{
		EntryPageTitle:      cfg.EntryPageTitle,
		EntryPageTemplate:   cfg.EntryPageTemplate,
		ChapterPageTemplate: cfg.ChapterPageTemplate,
		Language:            cfg.Language,
		FullEmptyStars:      cfg.FullEmptyStars,
		SanitizeFilename:    cfg.SanitizeFilename,
		Fetcher:             client,
		Logger:              logger,
		Progress:            progress,
	})

	book, file, err := assembler.Build(cmd.Context(), args[0], cfg.Output)
	progress.Close(err == nil)
	if err != nil {
		return fmt.Errorf("failed to build book: %w", err)
	}

	textDir := ""
	if cfg.TextExport != "" {
		textDir, err = text.PackBookToText(book, cfg.TextExport)
		if err != nil {
			return fmt.Errorf("failed to export text: %w", err)
		}
	}

	printSummary(cmd.OutOrStdout(), book, file, textDir)
	return nil
}

var (
	summaryTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	summaryLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(10)
)

func printSummary(w io.Writer, book *model.Book, file, textDir string) {
	line := func(label, value string) {
		fmt.Fprintln(w, summaryLabelStyle.Render(label)+value)
	}

	fmt.Fprintln(w, summaryTitleStyle.Render(book.Title))
	line("author", book.Author)
	line("chapters", fmt.Sprint(len(book.Chapters)-1))
	line("images", fmt.Sprint(len(book.Images)))
	line("epub", file)
	if textDir != "" {
		line("text", textDir)
	}
}
