package weeb

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sorade/weebdl/internal/assemble"
)

// Manga is one series. Its identity is the canonical series URL; the
// metadata fields stay empty until FetchDetails populates them.
type Manga struct {
	URL   string
	Title string

	Details       map[string]string
	Description   string
	Aliases       []string
	RelatedSeries []*Manga

	client *Client
}

// Series wraps a known series page URL in a Manga bound to this client,
// for callers that skip the search step.
func (c *Client) Series(url, title string) *Manga {
	return c.newManga(url, title)
}

func (c *Client) newManga(url, title string) *Manga {
	return &Manga{
		URL:     url,
		Title:   title,
		Details: make(map[string]string),
		client:  c,
	}
}

// Chapters returns the full chapter list, oldest first. The list is
// cached per series URL; force bypasses the cache.
//
// The site lists chapters newest-first without season boundaries for most
// series, so seasons are approximated: an explicit "S<n>" marker on a
// chapter wins, and every unmarked run gets a counter that starts at 1
// and rolls over after 100 unmarked chapters.
func (m *Manga) Chapters(ctx context.Context, force bool) ([]*Chapter, error) {
	if !force {
		if cached, ok := m.client.chapterLists.Get(m.URL); ok {
			return cached, nil
		}
	}

	doc, err := m.client.fetchDocument(ctx, chapterListURL(m.URL), nil)
	if err != nil {
		return nil, err
	}

	// Labels and link containers are separate result sets paired by
	// document position; a label whose text is empty drops its entry but
	// never shifts alignment, since the link at the same position is
	// consumed with it.
	labels := doc.Find(`span[class="grow flex items-center gap-2"]`)
	links := doc.Find(`div[class="flex items-center"]`)

	n := labels.Length()
	if links.Length() < n {
		n = links.Length()
	}

	chapters := make([]*Chapter, 0, n)
	count, season := 0, 1
	for i := n - 1; i >= 0; i-- {
		fields := strings.Fields(labels.Eq(i).Find("span").First().Text())
		if len(fields) == 0 {
			continue
		}
		href, _ := links.Eq(i).Find("a").First().Attr("href")
		index := fields[len(fields)-1]

		if s, ok := seasonToken(fields[0]); ok {
			chapters = append(chapters, m.client.newChapter(index, href, s))
			continue
		}

		chapters = append(chapters, m.client.newChapter(index, href, season))
		count++
		if count == 100 {
			count = 0
			season++
		}
	}

	m.client.chapterLists.Set(m.URL, chapters)
	return chapters, nil
}

// chapterListURL swaps the last path element of a series URL for the
// full-chapter-list sibling page.
func chapterListURL(seriesURL string) string {
	parts := strings.Split(seriesURL, "/")
	if len(parts) < 2 {
		return seriesURL + "/full-chapter-list"
	}
	parts[len(parts)-1] = "full-chapter-list"
	return strings.Join(parts, "/")
}

// FilterChapters narrows a chapter list to numeric indices in
// [start, end], optionally restricted to one season first. Indices
// compare as decimals so fractional chapters ("10.5") sort where readers
// expect. end == 0 means "through the last chapter". The result is empty
// when start < 1 or end exceeds the highest index present.
func FilterChapters(chapters []*Chapter, start, end float64, season int) []*Chapter {
	if season != 0 {
		var kept []*Chapter
		for _, ch := range chapters {
			if ch.Season == season {
				kept = append(kept, ch)
			}
		}
		chapters = kept
	}
	if len(chapters) == 0 {
		return nil
	}

	max, err := strconv.ParseFloat(chapters[len(chapters)-1].Index, 64)
	if err != nil {
		return nil
	}
	if end == 0 {
		end = max
	}
	if end > max || start < 1 {
		return nil
	}

	var out []*Chapter
	for _, ch := range chapters {
		idx, err := strconv.ParseFloat(ch.Index, 64)
		if err != nil {
			continue
		}
		if idx >= start && idx <= end {
			out = append(out, ch)
		}
	}

	return out
}

// FetchDetails scrapes the series page and fills in the metadata fields:
// the details table, the description, and either the alias titles or the
// related series list, whichever the page carries.
func (m *Manga) FetchDetails(ctx context.Context) error {
	doc, err := m.client.fetchDocument(ctx, m.URL, nil)
	if err != nil {
		return err
	}

	sections := doc.Find(`ul[class="flex flex-col gap-4"]`)
	if sections.Length() < 2 {
		return &ParsingError{URL: m.URL, Err: errors.New("series detail sections missing")}
	}

	sections.Eq(0).Find("strong").Each(func(_ int, strong *goquery.Selection) {
		label := strings.TrimSpace(strong.Text())
		if strings.HasPrefix(label, "RSS") || strings.HasPrefix(label, "Track") {
			return
		}

		if a := strong.NextAllFiltered("a").First(); a.Length() > 0 {
			m.Details[label] = strings.TrimSpace(a.Text())
			return
		}

		var values []string
		strong.NextAllFiltered("span").Each(func(_ int, span *goquery.Selection) {
			if link := span.Find("a").First(); link.Length() > 0 {
				values = append(values, strings.TrimSpace(link.Text()))
				return
			}
			values = append(values, strings.TrimSpace(span.Text()))
		})
		m.Details[label] = strings.Join(values, ", ")
	})

	about := sections.Eq(1)
	m.Description = strings.TrimSpace(about.Find("p").First().Text())

	strongs := about.Find("strong")
	if strongs.Length() < 2 {
		return nil
	}

	items := about.Find("ul li")
	if strings.HasPrefix(strings.TrimSpace(strongs.Eq(1).Text()), "Related") {
		items.Each(func(_ int, li *goquery.Selection) {
			href, _ := li.Find("a").First().Attr("href")
			m.RelatedSeries = append(m.RelatedSeries, m.client.newManga(href, strings.TrimSpace(li.Text())))
		})
		return nil
	}

	items.Each(func(_ int, li *goquery.Selection) {
		m.Aliases = append(m.Aliases, strings.TrimSpace(li.Text()))
	})

	return nil
}

// DirName is the series output directory name: the title with whitespace
// runs collapsed to single hyphens.
func (m *Manga) DirName() string {
	return strings.Join(strings.Fields(m.Title), "-")
}

// ProgressFunc reports page download progress within one chapter.
type ProgressFunc func(done, total int, bytes int64)

type DownloadOptions struct {
	// Dir is the base output directory; the series directory is created
	// underneath it.
	Dir    string
	Format assemble.Format

	// Progress, when set, is called once per chapter to obtain that
	// chapter's page-level progress callback. It may return nil.
	Progress func(ch *Chapter) ProgressFunc

	// OnResult, when set, receives each chapter's outcome. A chapter
	// failure does not stop the remaining chapters.
	OnResult func(ch *Chapter, res DownloadResult, err error)
}

// Download materializes the given chapters under Dir/<series>. Chapters
// are processed sequentially; pages within a chapter in parallel.
func (m *Manga) Download(ctx context.Context, chapters []*Chapter, opts DownloadOptions) error {
	dir := filepath.Join(opts.Dir, m.DirName())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for _, ch := range chapters {
		var progress ProgressFunc
		if opts.Progress != nil {
			progress = opts.Progress(ch)
		}

		res, err := ch.Download(ctx, dir, opts.Format, progress)
		if opts.OnResult != nil {
			opts.OnResult(ch, res, err)
		}
	}

	return nil
}
