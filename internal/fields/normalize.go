package fields

import "github.com/google/uuid"

// Normalize converts one raw annotation into either a canonical Field or,
// for radio buttons, a transient RadioWidget awaiting consolidation.
//
// Both results are nil when the annotation carries no type information at
// all, or when it is a plain pushbutton (nothing to edit). An unknown but
// present type code degrades to a text field rather than being dropped.
func Normalize(rec AnnotationRecord, page int) (*Field, *RadioWidget) {
	if rec.FieldType == "" {
		return nil, nil
	}

	constraints := Constraints{
		Required:  rec.Required,
		ReadOnly:  rec.ReadOnly,
		Multiline: rec.Multiline,
		MaxLength: rec.MaxLength,
	}

	kind := mapKind(rec)
	if kind == "" {
		return nil, nil
	}

	if kind == KindRadio {
		return nil, &RadioWidget{
			TechnicalName: rec.FieldName,
			GroupKey:      radioGroupKey(rec),
			ExportValue:   rec.ExportValue,
			Value:         radioValue(rec.FieldValue),
			Page:          page,
			Geometry:      rectFromBox(rec.Rect),
			Constraints:   constraints,
		}
	}

	f := &Field{
		ID:            uuid.NewString(),
		TechnicalName: rec.FieldName,
		DisplayName:   DisplayName(rec.Tooltip, rec.MappingName, rec.FullyQualifiedName, rec.FieldName),
		Kind:          kind,
		Page:          page,
		Geometry:      rectFromBox(rec.Rect),
		Value:         rec.FieldValue,
		Constraints:   constraints,
	}

	if kind == KindSelect {
		f.Options = append([]string(nil), rec.Options...)
	}
	if kind == KindCheckbox {
		// Checkboxes may use custom on-states (/1, /On); anything other
		// than the off state means checked.
		if rec.FieldValue != "" && rec.FieldValue != CheckboxOff {
			f.Value = CheckboxOn
		} else {
			f.Value = CheckboxOff
		}
	}

	return f, nil
}

// mapKind applies the field-type table. The empty Kind means "emit nothing".
func mapKind(rec AnnotationRecord) Kind {
	switch rec.FieldType {
	case TypeCodeText:
		return KindText
	case TypeCodeChoice:
		if len(rec.Options) > 0 {
			return KindSelect
		}
		return KindText
	case TypeCodeButton:
		if rec.PushButton {
			return ""
		}
		if rec.CheckBox {
			return KindCheckbox
		}
		return KindRadio
	case TypeCodeSignature:
		return KindSignature
	default:
		// Present but unrecognized type codes degrade to text.
		return KindText
	}
}

// radioGroupKey picks the widget's logical group name: a human-authored
// display name when it is distinct from the technical name, otherwise the
// technical name. Heuristic keys can collide across unrelated groups; the
// consolidator keeps every contributing technical name so export matching
// still resolves.
func radioGroupKey(rec AnnotationRecord) string {
	if n := humanAuthoredName(rec); n != "" && n != rec.FieldName {
		return n
	}
	return rec.FieldName
}

// humanAuthoredName returns the first display-name candidate that came from
// document metadata rather than reformatting, or "".
func humanAuthoredName(rec AnnotationRecord) string {
	if rec.Tooltip != "" {
		return rec.Tooltip
	}
	if rec.MappingName != "" && rec.MappingName != rec.FieldName {
		return rec.MappingName
	}
	if rec.FullyQualifiedName != "" {
		if last := lastDotSegment(rec.FullyQualifiedName); last != "" && last != rec.FieldName {
			return last
		}
	}
	return ""
}

func lastDotSegment(s string) string {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return s[i+1:]
		}
	}
	return s
}

// radioValue maps the inherited /V to the group's selection: the off state
// means no selection.
func radioValue(v string) string {
	if v == CheckboxOff {
		return ""
	}
	return v
}

// rectFromBox tolerates malformed geometry: short boxes yield the zero Rect.
func rectFromBox(box []float64) Rect {
	if len(box) < 4 {
		return Rect{}
	}
	return Rect{X0: box[0], Y0: box[1], X1: box[2], Y1: box[3]}
}
