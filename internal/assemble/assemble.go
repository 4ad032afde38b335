// Package assemble turns an ordered sequence of downloaded page images
// into a chapter artifact: a single PDF, a directory of images, or a CBZ
// archive.
package assemble

import (
	"fmt"
	"strings"
)

// Format is the artifact kind a chapter is assembled into.
type Format string

const (
	FormatPDF    Format = "pdf"
	FormatImages Format = "images"
	FormatCBZ    Format = "cbz"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pdf":
		return FormatPDF, nil
	case "images", "image":
		return FormatImages, nil
	case "cbz":
		return FormatCBZ, nil
	}

	return "", fmt.Errorf("unknown output format %q (want pdf, images or cbz)", s)
}

// Page is one image blob in reading order. Callers hand pages over
// already sorted by Index.
type Page struct {
	Index int
	Data  []byte
}
