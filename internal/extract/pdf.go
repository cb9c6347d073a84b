package extract

import (
	"github.com/ledongthuc/pdf"
)

// PageCount returns the number of pages in the uploaded PDF, or 0 when the
// file cannot be read as one. The PDF library panics on some malformed
// files, so the recover guard is required. Best-effort only: the external
// converter is the authority on whether the PDF is usable.
func PageCount(path string) (n int) {
	defer func() {
		if r := recover(); r != nil {
			n = 0
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	return r.NumPage()
}
