package assemble

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"os"
)

// CBZ packs the pages into a comic-book zip at path, entries named
// page_001.jpg and so on in reading order. Same tmp-then-rename
// discipline as the PDF writer.
func CBZ(path string, pages []Page) error {
	tmp := path + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("cbz: %w", err)
	}

	z := zip.NewWriter(out)
	for _, page := range pages {
		w, err := z.Create(fmt.Sprintf("page_%03d%s", page.Index, imageExt(page.Data)))
		if err != nil {
			_ = out.Close()
			_ = os.Remove(tmp)
			return err
		}
		if _, err := w.Write(page.Data); err != nil {
			_ = out.Close()
			_ = os.Remove(tmp)
			return err
		}
	}

	if err := z.Close(); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}

func imageExt(data []byte) string {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ".jpg"
	}

	switch format {
	case "png":
		return ".png"
	case "gif":
		return ".gif"
	case "webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
