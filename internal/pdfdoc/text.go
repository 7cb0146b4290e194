package pdfdoc

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PageTextBytes extracts one page's plain text from in-memory document
// bytes, used for document previews alongside the field listing.
func PageTextBytes(data []byte, pageNum int) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	if pageNum < 1 || pageNum > reader.NumPage() {
		return "", fmt.Errorf("page %d out of range [1, %d]", pageNum, reader.NumPage())
	}

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return "", nil
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from page %d: %w", pageNum, err)
	}
	return text, nil
}

// DocumentText concatenates the plain text of all pages, skipping pages
// that fail individually.
func DocumentText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var out string
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		out += text
	}
	return out, nil
}
