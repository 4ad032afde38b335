package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/sorade/weebdl/internal/assemble"
	"github.com/sorade/weebdl/internal/config"
	"github.com/sorade/weebdl/internal/ui"
	"github.com/sorade/weebdl/internal/util"
	"github.com/sorade/weebdl/internal/weeb"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var (
	// selection
	flagURL    string
	flagTitle  string
	flagQuery  string
	flagStart  float64
	flagEnd    float64
	flagSeason int
	flagForce  bool

	// runtime
	flagOutput      string
	flagFormat      string
	flagPageWorkers int
	flagCacheSize   int
	flagUserAgent   string
	flagDryRun      bool
)

func init() {
	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download chapters of a series as PDF, image folders or CBZ. Uses the defaults from the selected config, overwritten by CLI flags",
		RunE:  runDownload,
	}

	// selection
	downloadCmd.Flags().StringVar(&flagURL, "url", "", "series page URL")
	downloadCmd.Flags().StringVar(&flagTitle, "title", "", "series title (derived from the URL when omitted)")
	downloadCmd.Flags().StringVar(&flagQuery, "query", "", "search the catalog and pick a series interactively")
	downloadCmd.Flags().Float64Var(&flagStart, "start", 0, "first chapter number to download (e.g. 5 or 10.5)")
	downloadCmd.Flags().Float64Var(&flagEnd, "end", 0, "last chapter number to download (default: last available)")
	downloadCmd.Flags().IntVar(&flagSeason, "season", 0, "restrict to one season")
	downloadCmd.Flags().BoolVar(&flagForce, "force", false, "refetch the chapter list even when cached")

	// runtime
	downloadCmd.Flags().StringVar(&flagOutput, "output", "", "output folder")
	downloadCmd.Flags().StringVar(&flagFormat, "format", "", "artifact format: pdf, images or cbz")
	downloadCmd.Flags().IntVar(&flagPageWorkers, "page-workers", 0, "parallel page downloads per chapter")
	downloadCmd.Flags().IntVar(&flagCacheSize, "cache-size", 0, "entries kept per scrape cache")
	downloadCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "pin the User-Agent instead of rotating it")
	downloadCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "list the selected chapters without downloading")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, _ []string) error {
	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig:  flagIgnoreConfig,
		Debug:         flagDebug,
		Output:        flagOutput,
		Format:        flagFormat,
		PageWorkers:   flagPageWorkers,
		CacheSize:     flagCacheSize,
		UserAgent:     flagUserAgent,
		DefaultURL:    flagURL,
		DefaultStart:  flagStart,
		DefaultEnd:    flagEnd,
		DefaultSeason: flagSeason,
	})
	if err != nil {
		return err
	}

	format, err := assemble.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	logSvc := ui.NewLogger(cfg.Debug)
	if usedPath != "" {
		fmt.Printf("Config file: %s\n", usedPath)
	}

	if cfg.Output == "" {
		cfg.Output = "."
	}
	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}

	fmt.Println("Full config:")
	cfg.Print()
	fmt.Println()

	client, err := newWeebClient(cfg, logSvc)
	if err != nil {
		return err
	}

	ctx := context.Background()
	util.SetupInterruptHandler(cfg.Output)

	manga, err := resolveSeries(ctx, client, cfg)
	if err != nil {
		return err
	}

	allChapters, err := manga.Chapters(ctx, flagForce)
	if err != nil {
		return err
	}
	if len(allChapters) == 0 {
		return fmt.Errorf("no chapters found for %s", manga.Title)
	}
	fmt.Printf("Found %d chapters of %s.\n\n", len(allChapters), manga.Title)

	start := cfg.DefaultStart
	if start == 0 {
		start = 1
	}

	selected := weeb.FilterChapters(allChapters, start, cfg.DefaultEnd, cfg.DefaultSeason)
	if len(selected) == 0 {
		return fmt.Errorf("no chapters selected (have 1-%s, asked for %g-%g season %d)",
			allChapters[len(allChapters)-1].Index, start, cfg.DefaultEnd, cfg.DefaultSeason)
	}

	if flagDryRun {
		fmt.Printf("Dry-run: %d chapters selected.\n\n", len(selected))
		for i, ch := range selected {
			fmt.Printf("%3d) Chapter %s\n    %s\n", i+1, ch.FileBase(), ch.URL)
		}
		return nil
	}

	pm := ui.NewProgressManager()
	defer pm.Close()

	stats := &ui.Stats{}
	startTime := time.Now()

	handles := map[*weeb.Chapter]*ui.ProgressHandle{}

	err = manga.Download(ctx, selected, weeb.DownloadOptions{
		Dir:    cfg.Output,
		Format: format,
		Progress: func(ch *weeb.Chapter) weeb.ProgressFunc {
			h := pm.Register("Ch." + ch.FileBase())
			handles[ch] = h
			return h.Update
		},
		OnResult: func(ch *weeb.Chapter, res weeb.DownloadResult, err error) {
			h := handles[ch]
			switch {
			case err != nil:
				if h != nil {
					h.Abandon()
				}
				stats.FailedChapters.Add(1)
				logSvc.Errorf("Chapter %s failed: %v\n", ch.FileBase(), err)
			case res.Skipped:
				if h != nil {
					h.Abandon()
				}
				stats.SkippedChapters.Add(1)
				logSvc.Infof("Chapter %s already exists, skipped.\n", ch.FileBase())
			default:
				if h != nil {
					h.MarkDone()
				}
				stats.TotalChapters.Add(1)
				stats.TotalPages.Add(int64(res.Pages))
				stats.TotalBytes.Add(res.Bytes)
			}
		},
	})
	if err != nil {
		return err
	}
	pm.Close()

	fmt.Println()
	fmt.Println("Download Summary:")
	fmt.Printf("Chapters: %d\n", stats.TotalChapters.Load())
	fmt.Printf("Skipped:  %d\n", stats.SkippedChapters.Load())
	fmt.Printf("Failed:   %d\n", stats.FailedChapters.Load())
	fmt.Printf("Pages:    %d\n", stats.TotalPages.Load())
	fmt.Printf("Data:     %s\n", util.Human(stats.TotalBytes.Load()))
	fmt.Printf("Time:     %s\n", time.Since(startTime).Round(time.Second))
	fmt.Println("\nAll done.")

	return nil
}

// loadClient builds a scraping client from the active config and the
// global flags alone, for the read-only commands.
func loadClient() (*weeb.Client, error) {
	cfg, _, err := config.LoadMerged(config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
	})
	if err != nil {
		return nil, err
	}

	return newWeebClient(cfg, ui.NewLogger(cfg.Debug))
}

func newWeebClient(cfg *config.Config, logSvc *ui.Logger) (*weeb.Client, error) {
	httpClient, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:     weeb.DefaultTimeout,
		DebugLogger: logSvc,
	})
	if err != nil {
		return nil, err
	}

	return weeb.NewClient(weeb.Options{
		HTTPClient:  httpClient,
		UserAgent:   cfg.UserAgent,
		PageWorkers: cfg.PageWorkers,
		CacheSize:   cfg.CacheSize,
	}), nil
}

func resolveSeries(ctx context.Context, client *weeb.Client, cfg *config.Config) (*weeb.Manga, error) {
	if flagQuery != "" {
		results, err := client.Search(ctx, weeb.SearchQuery{Text: flagQuery})
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			return nil, fmt.Errorf("no series found for %q", flagQuery)
		}

		items := make([]string, len(results))
		for i, m := range results {
			items[i] = m.Title
		}

		prompt := promptui.Select{
			Label: "Select series",
			Items: items,
			Size:  10,
		}
		idx, _, err := prompt.Run()
		if err != nil {
			return nil, fmt.Errorf("selection cancelled")
		}

		return results[idx], nil
	}

	if cfg.DefaultURL == "" {
		return nil, fmt.Errorf("missing --url/--query and no default_url in config")
	}

	title := flagTitle
	if title == "" {
		title = titleFromURL(cfg.DefaultURL)
	}

	return client.Series(cfg.DefaultURL, title), nil
}

// titleFromURL falls back to the slug at the end of a series URL when no
// explicit title is available.
func titleFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	return strings.ReplaceAll(path.Base(u.Path), "-", " ")
}
