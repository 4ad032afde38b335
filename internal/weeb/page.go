package weeb

import "context"

// Page is one image within a chapter. Data is nil until fetchData has
// run; a fetched-but-empty body is distinct from "not yet fetched".
type Page struct {
	Index int
	URL   string
	Data  []byte

	client *Client
}

func (c *Client) newPage(index int, url string) *Page {
	return &Page{
		Index:  index,
		URL:    url,
		client: c,
	}
}

// fetchData populates Data, consulting the byte cache first so repeat
// downloads of the same image across chapters or runs of the pipeline
// cost nothing.
func (p *Page) fetchData(ctx context.Context) error {
	if data, ok := p.client.pageData.Get(p.URL); ok {
		p.Data = data
		return nil
	}

	data, err := p.client.fetch(ctx, p.URL, nil)
	if err != nil {
		return err
	}

	p.Data = data
	p.client.pageData.Set(p.URL, data)
	return nil
}
