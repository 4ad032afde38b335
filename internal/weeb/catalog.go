package weeb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SearchQuery holds the catalog search filters. The zero value means
// "best match, descending, no filters".
type SearchQuery struct {
	Text     string
	Sort     Sort
	Order    Order
	Official Tri
	Anime    Tri
	Adult    Tri
	Status   []Status
	Types    []SeriesType
	Genres   []Genre
}

func (q SearchQuery) values() url.Values {
	if q.Sort == "" {
		q.Sort = SortBestMatch
	}
	if q.Order == "" {
		q.Order = OrderDescending
	}
	if q.Official == "" {
		q.Official = TriAny
	}
	if q.Anime == "" {
		q.Anime = TriAny
	}
	if q.Adult == "" {
		q.Adult = TriAny
	}

	params := url.Values{}
	params.Set("text", q.Text)
	params.Set("sort", string(q.Sort))
	params.Set("order", string(q.Order))
	params.Set("official", string(q.Official))
	params.Set("anime", string(q.Anime))
	params.Set("adult", string(q.Adult))
	for _, s := range q.Status {
		params.Add("included_status", string(s))
	}
	for _, t := range q.Types {
		params.Add("included_type", string(t))
	}
	for _, g := range q.Genres {
		params.Add("included_tag", string(g))
	}
	params.Set("display_mode", "Full Display")

	return params
}

// Search queries the catalog. Results are cached per parameter set for
// the life of the client.
func (c *Client) Search(ctx context.Context, q SearchQuery) ([]*Manga, error) {
	params := q.values()
	key := params.Encode()
	if cached, ok := c.searches.Get(key); ok {
		return cached, nil
	}

	doc, err := c.fetchDocument(ctx, c.baseURL+"/search/data", params)
	if err != nil {
		return nil, err
	}

	var results []*Manga
	doc.Find(`span[class="tooltip tooltip-bottom"]`).Each(func(_ int, item *goquery.Selection) {
		title, _ := item.Attr("data-tip")
		href, _ := item.Find("a").First().Attr("href")
		if title != "" && href != "" {
			results = append(results, c.newManga(href, title))
		}
	})

	c.searches.Set(key, results)
	return results, nil
}

// RecentlyAdded lists series from one page of the recently-added feed.
func (c *Client) RecentlyAdded(ctx context.Context, page int) ([]*Manga, error) {
	return c.seriesLinks(ctx, fmt.Sprintf("%s/recently-added/%d", c.baseURL, page))
}

// HotSeries lists trending series for the given view-count window.
func (c *Client) HotSeries(ctx context.Context, period HotPeriod) ([]*Manga, error) {
	if period == "" {
		period = HotWeekly
	}
	return c.seriesLinks(ctx, fmt.Sprintf("%s/hot-series?sort=%s", c.baseURL, period))
}

func (c *Client) seriesLinks(ctx context.Context, target string) ([]*Manga, error) {
	doc, err := c.fetchDocument(ctx, target, nil)
	if err != nil {
		return nil, err
	}

	var series []*Manga
	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		series = append(series, c.newManga(href, strings.TrimSpace(a.Text())))
	})

	return series, nil
}

// Update pairs a series with the chapter the feed announced for it.
type Update struct {
	Manga   *Manga
	Chapter *Chapter
}

// LatestUpdates lists one page of the latest chapter updates, in feed
// order.
func (c *Client) LatestUpdates(ctx context.Context, page int) ([]Update, error) {
	doc, err := c.fetchDocument(ctx, fmt.Sprintf("%s/latest-updates/%d", c.baseURL, page), nil)
	if err != nil {
		return nil, err
	}

	var updates []Update
	doc.Find(`article[class="bg-base-100 hover:bg-base-300 flex items-center gap-4 tooltip tooltip-bottom"]`).
		Each(func(_ int, article *goquery.Selection) {
			name, _ := article.Attr("data-tip")
			links := article.Find("a")
			if links.Length() < 2 {
				return
			}

			seriesHref, _ := links.Eq(0).Attr("href")
			chapterHref, _ := links.Eq(1).Attr("href")

			label := links.Eq(1).Find(`div[class="flex items-center gap-2 opacity-70"]`).First().Text()
			fields := strings.Fields(strings.TrimSpace(label))
			if len(fields) == 0 {
				return
			}

			updates = append(updates, Update{
				Manga:   c.newManga(seriesHref, name),
				Chapter: c.newChapter(fields[len(fields)-1], chapterHref, 0),
			})
		})

	return updates, nil
}

// HotUpdates lists the currently trending chapter updates. Chapter labels
// may carry an explicit season token ("S2 Chapter 14"), which becomes the
// chapter's season.
func (c *Client) HotUpdates(ctx context.Context) ([]Update, error) {
	doc, err := c.fetchDocument(ctx, c.baseURL+"/hot-updates", nil)
	if err != nil {
		return nil, err
	}

	var labels []string
	doc.Find(`div[class="truncate text-white text-center text-lg z-20 w-[90%]"]`).
		Each(func(_ int, div *goquery.Selection) {
			labels = append(labels, strings.TrimSpace(div.Text()))
		})

	chapterHrefs := articleLinks(doc, "bg-base-100 hover:bg-base-300 md:relative hidden md:block gap-4 tooltip tooltip-bottom")
	seriesHrefs := articleLinks(doc, "bg-base-100 hover:bg-base-300 flex gap-4 md:hidden tooltip tooltip-bottom")

	var updates []Update
	for i := 0; i+1 < len(labels); i += 2 {
		pair := i / 2
		if pair >= len(seriesHrefs) || pair >= len(chapterHrefs) {
			break
		}

		fields := strings.Fields(labels[i+1])
		if len(fields) == 0 {
			continue
		}

		season := 0
		if n, ok := seasonToken(fields[0]); ok {
			season = n
		}

		updates = append(updates, Update{
			Manga:   c.newManga(seriesHrefs[pair], labels[i]),
			Chapter: c.newChapter(fields[len(fields)-1], chapterHrefs[pair], season),
		})
	}

	return updates, nil
}

func articleLinks(doc *goquery.Document, class string) []string {
	var hrefs []string
	doc.Find(`article[class="` + class + `"]`).Each(func(_ int, article *goquery.Selection) {
		href, _ := article.Find("a").First().Attr("href")
		hrefs = append(hrefs, href)
	})

	return hrefs
}

// seasonToken parses an explicit season marker like "S2".
func seasonToken(s string) (int, bool) {
	if len(s) < 2 || s[0] != 'S' {
		return 0, false
	}

	n, err := strconv.Atoi(s[1:])
	if err != nil {
		return 0, false
	}

	return n, true
}
