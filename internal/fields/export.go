package fields

import (
	"fmt"
	"log"
)

// Capability tags what a mutable field object can actually do. Extraction's
// notion of a field's kind is advisory; the document's own object decides
// which write path applies.
type Capability int

const (
	CapabilityNone Capability = iota
	CapabilityText
	CapabilitySelect
	CapabilityCheck
)

// MutableField is one named, writable field object of a loaded document.
// Implementations classify themselves into exactly one Capability when the
// document is loaded; Apply dispatches on that tag.
type MutableField interface {
	Name() string
	Capability() Capability

	// SetText assigns free text. Only valid for CapabilityText.
	SetText(value string) error

	// Select picks a single option. The empty value clears the selection;
	// implementations may reject it, in which case the exporter leaves the
	// field unset and continues.
	Select(value string) error

	// SetChecked toggles a check state. Only valid for CapabilityCheck.
	SetChecked(checked bool) error
}

// MutableDocument is the mutation capability the exporter consumes: a fresh
// writable view over the original bytes.
type MutableDocument interface {
	Fields() []MutableField

	// Save serializes the document with all applied values.
	Save() ([]byte, error)
}

// MutableLoader opens original document bytes for mutation.
type MutableLoader interface {
	Load(original []byte) (MutableDocument, error)
}

// Exporter writes field values back into a document's field objects and
// serializes the result.
type Exporter struct {
	loader MutableLoader
	debug  bool
}

// NewExporter creates an exporter over the given mutation capability.
func NewExporter(loader MutableLoader, debug bool) *Exporter {
	return &Exporter{loader: loader, debug: debug}
}

// Export loads a fresh mutable view of original, applies every relevant
// field value and returns the serialized bytes.
//
// Fields with empty values are skipped, except radio fields: those are
// always processed so an explicit de-selection reaches the document. A
// field matching no document object is skipped; a load or save failure is
// fatal.
func (e *Exporter) Export(original []byte, all []Field) ([]byte, error) {
	doc, err := e.loader.Load(original)
	if err != nil {
		return nil, NewDocumentOpenError(err)
	}

	byName := make(map[string]MutableField)
	for _, mf := range doc.Fields() {
		byName[mf.Name()] = mf
	}

	for i := range all {
		f := &all[i]
		if f.Kind == KindSignature {
			continue
		}
		if f.Value == "" && f.Kind != KindRadio {
			continue
		}

		target := e.match(byName, f)
		if target == nil {
			if e.debug {
				log.Printf("fields: %v", NewFieldMatchError(f.TechnicalName))
			}
			continue
		}

		e.apply(target, f)
	}

	out, err := doc.Save()
	if err != nil {
		return nil, NewSerializationError("", err)
	}
	return out, nil
}

// match resolves a field to its mutable object: exact technical name first,
// then each recorded original widget name in order. Radio groups routinely
// need the fallback because the group key is not always a registered name.
func (e *Exporter) match(byName map[string]MutableField, f *Field) MutableField {
	if mf, ok := byName[f.TechnicalName]; ok {
		return mf
	}
	for _, name := range f.OriginalWidgetNames {
		if mf, ok := byName[name]; ok {
			return mf
		}
	}
	return nil
}

// apply writes the value using the object's own capability. A rejected
// selection (commonly an empty value used to clear a radio group) leaves
// the field unset; it never fails the export.
func (e *Exporter) apply(target MutableField, f *Field) {
	var err error
	switch target.Capability() {
	case CapabilityText:
		err = target.SetText(f.Value)
	case CapabilitySelect:
		err = target.Select(f.Value)
	case CapabilityCheck:
		err = target.SetChecked(f.Value == CheckboxOn || f.Value == "true")
	default:
		err = fmt.Errorf("field %q exposes no writable capability", target.Name())
	}
	if err != nil && e.debug {
		log.Printf("fields: applying %q: %v", f.TechnicalName, err)
	}
}
