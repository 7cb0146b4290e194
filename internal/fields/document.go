package fields

// SubtypeWidget marks the interactive form annotations the pipeline
// processes; every other annotation subtype is ignored.
const SubtypeWidget = "Widget"

// AcroForm field type codes as they appear in the document's FT entry.
const (
	TypeCodeText      = "Tx"
	TypeCodeButton    = "Btn"
	TypeCodeChoice    = "Ch"
	TypeCodeSignature = "Sig"
)

// AnnotationRecord is one raw annotation as supplied by a document source.
// Rect is the PDF-space bounding box [x0 y0 x1 y1]; a missing or short rect
// is tolerated downstream.
type AnnotationRecord struct {
	Subtype            string
	FieldType          string // FT code: Tx, Btn, Ch, Sig; empty if absent
	FieldName          string
	FieldValue         string
	Rect               []float64
	Options            []string
	Required           bool
	ReadOnly           bool
	Multiline          bool
	MaxLength          int
	CheckBox           bool // Btn only: set when the button is a checkbox
	PushButton         bool // Btn only: set for plain pushbuttons
	ExportValue        string
	Tooltip            string
	MappingName        string
	FullyQualifiedName string
}

// Page is one page of an open document.
type Page interface {
	// Annotations returns the page's annotations in document order.
	Annotations() ([]AnnotationRecord, error)

	// Height returns the page height in PDF points, used to derive screen
	// rectangles for a given render scale.
	Height() float64
}

// Document is the parsing capability the extraction pipeline consumes.
// Implementations live outside this package; see internal/pdfdoc.
type Document interface {
	PageCount() int

	// Page returns the 1-based page n.
	Page(n int) (Page, error)
}
