package pdfdoc

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/formbench/formbench/internal/fields"
)

// Source is the read-side document capability: page-ordered access to raw
// widget annotations. It implements fields.Document.
type Source struct {
	ctx *model.Context
}

// Open loads a document from raw bytes.
func Open(data []byte) (*Source, error) {
	ctx, err := readContext(data)
	if err != nil {
		return nil, err
	}
	return &Source{ctx: ctx}, nil
}

// OpenFile loads a document from disk.
func OpenFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Open(data)
}

// PageCount returns the number of pages.
func (s *Source) PageCount() int {
	return s.ctx.PageCount
}

// Page returns the 1-based page n with its annotations and inherited height.
func (s *Source) Page(n int) (fields.Page, error) {
	pageDict, _, inhPAttrs, err := s.ctx.PageDict(n, true)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve page %d: %w", n, err)
	}
	if pageDict == nil {
		return nil, fmt.Errorf("page %d has no dictionary", n)
	}

	var height float64
	if inhPAttrs != nil && inhPAttrs.MediaBox != nil {
		height = inhPAttrs.MediaBox.UR.Y - inhPAttrs.MediaBox.LL.Y
	}

	return &sourcePage{ctx: s.ctx, dict: pageDict, height: height}, nil
}

type sourcePage struct {
	ctx    *model.Context
	dict   types.Dict
	height float64
}

func (p *sourcePage) Height() float64 { return p.height }

// Annotations returns the page's annotation records in document order.
// Individual annotations that fail to dereference are dropped, not fatal.
func (p *sourcePage) Annotations() ([]fields.AnnotationRecord, error) {
	annotsObj, found := p.dict.Find("Annots")
	if !found {
		return nil, nil
	}
	arr, err := p.ctx.DereferenceArray(annotsObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference Annots: %w", err)
	}

	records := make([]fields.AnnotationRecord, 0, len(arr))
	for _, ref := range arr {
		annot, err := p.ctx.DereferenceDict(ref)
		if err != nil || annot == nil {
			continue
		}
		records = append(records, readAnnotation(p.ctx, annot))
	}
	return records, nil
}

// readAnnotation flattens one annotation dict, resolving the inheritable
// field entries up the Parent chain the way merged widget/field dicts and
// grouped radio kids require.
func readAnnotation(ctx *model.Context, annot types.Dict) fields.AnnotationRecord {
	rec := fields.AnnotationRecord{
		Subtype:            inheritedNameDirect(ctx, annot, "Subtype"),
		FieldType:          inheritedName(ctx, annot, "FT"),
		FieldName:          partialName(ctx, annot),
		FieldValue:         inheritedValue(ctx, annot),
		Rect:               rectFloats(ctx, annot),
		Tooltip:            inheritedString(ctx, annot, "TU"),
		MappingName:        inheritedString(ctx, annot, "TM"),
		FullyQualifiedName: fullyQualifiedName(ctx, annot),
	}

	if flags, ok := inheritedInt(ctx, annot, "Ff"); ok {
		rec.ReadOnly = flags&flagReadOnly != 0
		rec.Required = flags&flagRequired != 0
		if rec.FieldType == fields.TypeCodeText {
			rec.Multiline = flags&flagMultiline != 0
		}
		if rec.FieldType == fields.TypeCodeButton {
			rec.PushButton = flags&flagPushbutton != 0
			rec.CheckBox = flags&flagRadio == 0 && !rec.PushButton
		}
	} else if rec.FieldType == fields.TypeCodeButton {
		// No flags at all: a button defaults to checkbox.
		rec.CheckBox = true
	}

	if rec.FieldType == fields.TypeCodeChoice {
		rec.Options = optionStrings(ctx, annot)
	}
	if rec.FieldType == fields.TypeCodeButton && !rec.PushButton {
		rec.ExportValue = onStateName(ctx, annot)
	}
	if maxLen, ok := inheritedInt(ctx, annot, "MaxLen"); ok {
		rec.MaxLength = maxLen
	}

	return rec
}

// inheritedNameDirect resolves a non-inheritable name entry on the dict
// itself; Subtype never comes from a parent.
func inheritedNameDirect(ctx *model.Context, dict types.Dict, key string) string {
	if obj, found := dict.Find(key); found {
		if s, ok := derefName(ctx, obj); ok {
			return s
		}
	}
	return ""
}
