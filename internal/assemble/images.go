package assemble

import (
	"fmt"
	"os"
	"path/filepath"
)

// Images writes each page into dir as <index>.png, creating dir if
// needed. Files already present are left alone, so a partially written
// chapter picks up where it stopped instead of rewriting everything.
func Images(dir string, pages []Page) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for _, page := range pages {
		path := filepath.Join(dir, fmt.Sprintf("%d.png", page.Index))
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, page.Data, 0644); err != nil {
			return err
		}
	}

	return nil
}
