package weeb

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/sorade/weebdl/internal/assemble"
)

// Chapter is one installment of a series. Index stays a decimal string so
// fractional chapter numbers ("10.5") survive untouched; Season 0 means
// the series has no season concept.
type Chapter struct {
	Index  string
	URL    string
	Season int

	client *Client
}

func (c *Client) newChapter(index, url string, season int) *Chapter {
	return &Chapter{
		Index:  index,
		URL:    url,
		Season: season,
		client: c,
	}
}

// FileBase is the artifact name stem: "12" or, for seasoned series,
// "S2_12".
func (ch *Chapter) FileBase() string {
	if ch.Season != 0 {
		return fmt.Sprintf("S%d_%s", ch.Season, ch.Index)
	}
	return ch.Index
}

// ArtifactPath is the destination the chapter materializes to under dir.
// Its existence is the "already downloaded" check.
func (ch *Chapter) ArtifactPath(dir string, format assemble.Format) string {
	base := filepath.Join(dir, ch.FileBase())
	switch format {
	case assemble.FormatImages:
		return base
	case assemble.FormatCBZ:
		return base + ".cbz"
	default:
		return base + ".pdf"
	}
}

// Pages lists the chapter's pages in reading order, cached per chapter
// URL. The reader page is requested in continuous long-strip mode so the
// document carries every image at once.
func (ch *Chapter) Pages(ctx context.Context) ([]*Page, error) {
	if cached, ok := ch.client.pageLists.Get(ch.URL); ok {
		return cached, nil
	}

	params := url.Values{}
	params.Set("is_prev", "False")
	params.Set("reading_style", "long_strip")

	doc, err := ch.client.fetchDocument(ctx, ch.URL+"/images", params)
	if err != nil {
		return nil, err
	}

	var pages []*Page
	doc.Find("img").Each(func(i int, img *goquery.Selection) {
		src, _ := img.Attr("src")
		pages = append(pages, ch.client.newPage(i+1, src))
	})

	ch.client.pageLists.Set(ch.URL, pages)
	return pages, nil
}

// DownloadPages fetches every page's image bytes through the worker pool
// and returns the pages sorted back into reading order. The pool does not
// preserve completion order, so the sort is mandatory, not cosmetic.
//
// A single failed page fails the whole chapter; pages that did complete
// stay in the byte cache, so a retry of the chapter only refetches the
// missing ones.
func (ch *Chapter) DownloadPages(ctx context.Context, progress ProgressFunc) ([]*Page, error) {
	pages, err := ch.Pages(ctx)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	done := 0
	var fetched int64

	tasks := make([]func() error, len(pages))
	for i, p := range pages {
		tasks[i] = func() error {
			if err := p.fetchData(ctx); err != nil {
				return err
			}
			if progress != nil {
				mu.Lock()
				done++
				fetched += int64(len(p.Data))
				progress(done, len(pages), fetched)
				mu.Unlock()
			}
			return nil
		}
	}

	if !runAll(tasks, ch.client.pageWorkers) {
		return nil, fmt.Errorf("chapter %s: one or more pages failed to download", ch.Index)
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Index < pages[j].Index })
	return pages, nil
}

// DownloadResult reports what one chapter download produced.
type DownloadResult struct {
	Path    string
	Pages   int
	Bytes   int64
	Skipped bool
}

// Download materializes the chapter into dir in the requested format.
// When the destination file already exists the chapter is skipped
// outright, with no network activity at all. Image mode always enters:
// the chapter directory existing says nothing about completeness, so an
// interrupted chapter resumes through the per-file skip in the writer.
func (ch *Chapter) Download(ctx context.Context, dir string, format assemble.Format, progress ProgressFunc) (DownloadResult, error) {
	dest := ch.ArtifactPath(dir, format)
	if format != assemble.FormatImages {
		if _, err := os.Stat(dest); err == nil {
			return DownloadResult{Path: dest, Skipped: true}, nil
		}
	}

	pages, err := ch.DownloadPages(ctx, progress)
	if err != nil {
		return DownloadResult{}, err
	}
	if len(pages) == 0 {
		return DownloadResult{}, fmt.Errorf("chapter %s: no pages found", ch.Index)
	}

	var total int64
	blobs := make([]assemble.Page, len(pages))
	for i, p := range pages {
		if len(p.Data) == 0 {
			return DownloadResult{}, fmt.Errorf("chapter %s: page %d has no data", ch.Index, p.Index)
		}
		blobs[i] = assemble.Page{Index: p.Index, Data: p.Data}
		total += int64(len(p.Data))
	}

	switch format {
	case assemble.FormatImages:
		err = assemble.Images(dest, blobs)
	case assemble.FormatCBZ:
		err = assemble.CBZ(dest, blobs)
	default:
		err = assemble.PDF(dest, blobs)
	}
	if err != nil {
		return DownloadResult{}, err
	}

	return DownloadResult{Path: dest, Pages: len(blobs), Bytes: total}, nil
}
