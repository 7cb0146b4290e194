package fields

// Kind represents the editable type of a form field.
type Kind string

const (
	KindText      Kind = "text"
	KindCheckbox  Kind = "checkbox"
	KindRadio     Kind = "radio"
	KindSelect    Kind = "select"
	KindSignature Kind = "signature"
)

// Checkbox values follow the AcroForm appearance-state convention.
const (
	CheckboxOn  = "Yes"
	CheckboxOff = "Off"
)

// Rect is a bounding box in PDF coordinate space (origin bottom-left).
type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Width returns the horizontal extent of the box.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical extent of the box.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Constraints holds the optional input restrictions of a field.
// Zero values mean unset.
type Constraints struct {
	Required  bool `json:"required,omitempty"`
	ReadOnly  bool `json:"read_only,omitempty"`
	Multiline bool `json:"multiline,omitempty"`
	MaxLength int  `json:"max_length,omitempty"`
}

// Field is the canonical editable unit of a loaded document.
//
// Geometry stays in PDF space for the lifetime of the field; screen-space
// rectangles are derived views (see ScreenRect) and never stored back.
type Field struct {
	// ID is unique within one loaded document session.
	ID string `json:"id"`

	// TechnicalName is the underlying document's field name. For radio
	// groups it may be shared by several widgets.
	TechnicalName string `json:"technical_name"`

	// DisplayName is the human-friendly label derived from annotation
	// metadata, falling back to a reformatted TechnicalName.
	DisplayName string `json:"display_name"`

	Kind Kind `json:"kind"`

	// Page is 1-based.
	Page int `json:"page"`

	Geometry Rect `json:"geometry"`

	// Value is the current value. Checkboxes use "Yes"/"Off".
	Value string `json:"value,omitempty"`

	// Options lists selectable values for select and radio fields.
	Options []string `json:"options,omitempty"`

	Constraints Constraints `json:"constraints,omitempty"`

	// OriginalWidgetNames records every technical name that contributed to
	// a consolidated radio field. Export matching falls back to these when
	// the group key itself is not a registered field name.
	OriginalWidgetNames []string `json:"original_widget_names,omitempty"`

	// Widgets retains per-widget placement for consolidated radio fields so
	// each physical button can be overlaid individually.
	Widgets []RadioWidget `json:"widgets,omitempty"`
}

// RadioWidget is one physical radio button belonging to a radio group.
// It is transient during extraction; consolidated fields keep a copy for
// overlay placement.
type RadioWidget struct {
	// GroupID back-references the consolidated Field once grouping ran.
	GroupID string `json:"group_id,omitempty"`

	// TechnicalName is the widget's own field name.
	TechnicalName string `json:"technical_name"`

	// GroupKey is the heuristic grouping key (display name when it is
	// meaningfully distinct from the technical name).
	GroupKey string `json:"group_key"`

	// ExportValue is the widget's on-state name, the value the group takes
	// when this button is selected.
	ExportValue string `json:"export_value"`

	// Value is the group's current selection as seen from this widget (the
	// inherited /V), empty when nothing is selected. Equals one of the
	// group's export values when set.
	Value string `json:"value,omitempty"`

	Page     int  `json:"page"`
	Geometry Rect `json:"geometry"`

	Constraints Constraints `json:"constraints,omitempty"`
}
