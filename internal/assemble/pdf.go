package assemble

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/webp"
)

// Source images are treated as 96 DPI screen pixels when computing the
// physical page size.
const (
	mmPerInch = 25.4
	screenDPI = 96
)

func pixelsToMM(px int) float64 {
	return float64(px) * mmPerInch / screenDPI
}

// PDF writes all pages into a single PDF at path. Each PDF page takes the
// exact physical size of its source image, with the image placed at the
// origin filling the page: no margins, no compression, no automatic page
// breaks. The file is written to a .tmp sibling and renamed into place so
// an interrupted run never leaves a file that passes the skip-if-exists
// check.
func PDF(path string, pages []Page) error {
	doc := fpdf.NewCustom(&fpdf.InitType{UnitStr: "mm"})
	doc.SetCompression(false)
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)

	for _, page := range pages {
		data := page.Data
		cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("page %d: decode image: %w", page.Index, err)
		}

		// fpdf only embeds jpeg, png and gif
		if format == "webp" {
			if data, err = webpToPNG(data); err != nil {
				return fmt.Errorf("page %d: %w", page.Index, err)
			}
			format = "png"
		}

		w, h := pixelsToMM(cfg.Width), pixelsToMM(cfg.Height)
		doc.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})

		name := fmt.Sprintf("page-%d", page.Index)
		opts := fpdf.ImageOptions{ImageType: format}
		doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
		doc.ImageOptions(name, 0, 0, w, h, false, opts, 0, "")
	}

	if doc.Err() {
		return doc.Error()
	}

	tmp := path + ".tmp"
	if err := doc.OutputFileAndClose(tmp); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}

func webpToPNG(data []byte) ([]byte, error) {
	img, err := webp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode webp: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("re-encode webp as png: %w", err)
	}

	return buf.Bytes(), nil
}
