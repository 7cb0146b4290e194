package fields

import "log"

// Extractor turns an open document into the canonical field collection.
// The document source is injected; the extractor holds no ambient state.
type Extractor struct {
	debug bool
}

// NewExtractor creates an extractor. With debug set, skipped annotations are
// logged; they are absorbed either way.
func NewExtractor(debug bool) *Extractor {
	return &Extractor{debug: debug}
}

// Extract walks pages 1..N in order, normalizes every widget annotation and
// returns the field collection: non-radio fields in encounter order, then
// the consolidated radio groups. Group ordering is not guaranteed to match
// the document's visual order; callers re-sort by page for display.
//
// A malformed annotation or an unreadable page is skipped, never fatal.
// Opening the document is the caller's job, so a Document handed in here is
// assumed readable; a document with no widgets yields an empty, non-nil
// slice, distinct from an open failure upstream.
func (e *Extractor) Extract(doc Document) []Field {
	out := make([]Field, 0)
	var radios []RadioWidget

	for pageNum := 1; pageNum <= doc.PageCount(); pageNum++ {
		page, err := doc.Page(pageNum)
		if err != nil {
			if e.debug {
				log.Printf("fields: skipping page %d: %v", pageNum, err)
			}
			continue
		}

		annots, err := page.Annotations()
		if err != nil {
			if e.debug {
				log.Printf("fields: skipping annotations on page %d: %v", pageNum, err)
			}
			continue
		}

		for _, rec := range annots {
			if rec.Subtype != SubtypeWidget {
				continue
			}
			field, widget := Normalize(rec, pageNum)
			switch {
			case widget != nil:
				radios = append(radios, *widget)
			case field != nil:
				out = append(out, *field)
			default:
				if e.debug {
					log.Printf("fields: %v", NewAnnotationError(pageNum, nil))
				}
			}
		}
	}

	out = append(out, Consolidate(radios)...)
	return out
}
