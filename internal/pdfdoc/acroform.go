// Package pdfdoc implements the document parsing and mutation capabilities
// of the field engine on top of pdfcpu, with a ledongthuc/pdf backend for
// plain-text previews.
package pdfdoc

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// AcroForm field flag bits (PDF 32000-1, table 221/226/227).
const (
	flagReadOnly   = 1 << 0
	flagRequired   = 1 << 1
	flagMultiline  = 1 << 12
	flagRadio      = 1 << 15
	flagPushbutton = 1 << 16
)

// offState is the appearance state shared by every unchecked button widget.
const offState = "Off"

// maxParentDepth bounds Parent-chain walks against malformed cyclic
// hierarchies.
const maxParentDepth = 32

// readContext loads a pdfcpu context from raw bytes with relaxed validation,
// matching how interactive documents in the wild tend to deviate from the
// letter of the PDF specification.
func readContext(data []byte) (*model.Context, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}
	return ctx, nil
}

// findInherited resolves key on dict or the nearest ancestor carrying it.
func findInherited(ctx *model.Context, dict types.Dict, key string) (types.Object, bool) {
	for depth := 0; dict != nil && depth < maxParentDepth; depth++ {
		if obj, found := dict.Find(key); found {
			return obj, true
		}
		parentObj, found := dict.Find("Parent")
		if !found {
			return nil, false
		}
		parent, err := ctx.DereferenceDict(parentObj)
		if err != nil || parent == nil {
			return nil, false
		}
		dict = parent
	}
	return nil, false
}

// derefName resolves a name object to its string form.
func derefName(ctx *model.Context, obj types.Object) (string, bool) {
	name, err := ctx.DereferenceName(obj, model.V10, nil)
	if err != nil {
		return "", false
	}
	return string(name), true
}

// derefString resolves a string or hex literal.
func derefString(ctx *model.Context, obj types.Object) (string, bool) {
	s, err := ctx.DereferenceStringOrHexLiteral(obj, model.V10, nil)
	if err != nil {
		return "", false
	}
	return s, true
}

// derefInt resolves an integer object.
func derefInt(ctx *model.Context, obj types.Object) (int, bool) {
	i, err := ctx.DereferenceInteger(obj)
	if err != nil || i == nil {
		return 0, false
	}
	return int(*i), true
}

// inheritedName looks key up the Parent chain and resolves it as a name.
func inheritedName(ctx *model.Context, dict types.Dict, key string) string {
	if obj, found := findInherited(ctx, dict, key); found {
		if s, ok := derefName(ctx, obj); ok {
			return s
		}
	}
	return ""
}

// inheritedString looks key up the Parent chain and resolves it as a string.
func inheritedString(ctx *model.Context, dict types.Dict, key string) string {
	if obj, found := findInherited(ctx, dict, key); found {
		if s, ok := derefString(ctx, obj); ok {
			return s
		}
	}
	return ""
}

// inheritedInt looks key up the Parent chain and resolves it as an integer.
func inheritedInt(ctx *model.Context, dict types.Dict, key string) (int, bool) {
	if obj, found := findInherited(ctx, dict, key); found {
		return derefInt(ctx, obj)
	}
	return 0, false
}

// inheritedValue resolves the field value /V, which is a string for text
// and choice fields but a name for buttons.
func inheritedValue(ctx *model.Context, dict types.Dict) string {
	obj, found := findInherited(ctx, dict, "V")
	if !found {
		return ""
	}
	if s, ok := derefString(ctx, obj); ok {
		return s
	}
	if s, ok := derefName(ctx, obj); ok {
		return s
	}
	return ""
}

// fullyQualifiedName joins the partial names along the Parent chain with
// dots, innermost last.
func fullyQualifiedName(ctx *model.Context, dict types.Dict) string {
	var parts []string
	for depth := 0; dict != nil && depth < maxParentDepth; depth++ {
		if obj, found := dict.Find("T"); found {
			if t, ok := derefString(ctx, obj); ok && t != "" {
				parts = append(parts, t)
			}
		}
		parentObj, found := dict.Find("Parent")
		if !found {
			break
		}
		parent, err := ctx.DereferenceDict(parentObj)
		if err != nil || parent == nil {
			break
		}
		dict = parent
	}
	// parts were collected innermost-first.
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	var b bytes.Buffer
	for i, p := range parts {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(p)
	}
	return b.String()
}

// partialName returns the nearest /T up the chain: the widget's own field
// name, or its owning field's when the widget dict carries none.
func partialName(ctx *model.Context, dict types.Dict) string {
	return inheritedString(ctx, dict, "T")
}

// onStateName returns the widget's non-Off appearance state from AP/N, the
// export value the owning group takes when this button is selected.
func onStateName(ctx *model.Context, widget types.Dict) string {
	apObj, found := widget.Find("AP")
	if !found {
		return ""
	}
	ap, err := ctx.DereferenceDict(apObj)
	if err != nil || ap == nil {
		return ""
	}
	nObj, found := ap.Find("N")
	if !found {
		return ""
	}
	n, err := ctx.DereferenceDict(nObj)
	if err != nil || n == nil {
		return ""
	}
	for state := range n {
		if state != offState {
			return state
		}
	}
	return ""
}

// optionStrings reads /Opt entries, which are either plain strings or
// [export, display] pairs; the display value wins for pairs.
func optionStrings(ctx *model.Context, dict types.Dict) []string {
	obj, found := findInherited(ctx, dict, "Opt")
	if !found {
		return nil
	}
	arr, err := ctx.DereferenceArray(obj)
	if err != nil {
		return nil
	}

	var options []string
	for _, opt := range arr {
		if s, ok := derefString(ctx, opt); ok {
			options = append(options, s)
			continue
		}
		if pair, err := ctx.DereferenceArray(opt); err == nil && len(pair) >= 2 {
			if s, ok := derefString(ctx, pair[1]); ok {
				options = append(options, s)
			}
		}
	}
	return options
}

// rectFloats reads a 4-element /Rect array; malformed arrays yield nil so
// downstream geometry degrades to the zero rect instead of failing.
func rectFloats(ctx *model.Context, dict types.Dict) []float64 {
	obj, found := dict.Find("Rect")
	if !found {
		return nil
	}
	arr, err := ctx.DereferenceArray(obj)
	if err != nil || len(arr) != 4 {
		return nil
	}
	coords := make([]float64, 4)
	for i, c := range arr {
		f, err := ctx.DereferenceNumber(c)
		if err != nil {
			return nil
		}
		coords[i] = f
	}
	return coords
}
