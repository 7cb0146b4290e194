package pdfdoc

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formbench/formbench/internal/fields"
)

// pdfBuilder assembles a minimal but well-formed PDF with a correct xref
// table, so both backends can parse it without fixture files.
type pdfBuilder struct {
	buf     bytes.Buffer
	offsets []int
}

func newPDFBuilder() *pdfBuilder {
	b := &pdfBuilder{}
	b.buf.WriteString("%PDF-1.7\n")
	return b
}

// obj appends the next numbered object and returns its number.
func (b *pdfBuilder) obj(body string) int {
	num := len(b.offsets) + 1
	b.offsets = append(b.offsets, b.buf.Len())
	fmt.Fprintf(&b.buf, "%d 0 obj\n%s\nendobj\n", num, body)
	return num
}

func (b *pdfBuilder) bytes() []byte {
	xrefOffset := b.buf.Len()
	fmt.Fprintf(&b.buf, "xref\n0 %d\n", len(b.offsets)+1)
	b.buf.WriteString("0000000000 65535 f \n")
	for _, off := range b.offsets {
		fmt.Fprintf(&b.buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b.buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(b.offsets)+1, xrefOffset)
	return b.buf.Bytes()
}

// formPDF builds a one-page document with a text field, a checkbox and a
// two-widget radio group named Color with options Red and Blue.
func formPDF(t *testing.T) []byte {
	t.Helper()
	b := newPDFBuilder()

	// 1: catalog, 2: pages, 3: page
	b.obj("<< /Type /Catalog /Pages 2 0 R /AcroForm << /Fields [4 0 R 5 0 R 6 0 R] >> >>")
	b.obj("<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	b.obj("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Annots [4 0 R 5 0 R 7 0 R 8 0 R] >>")

	// 4: merged text field widget
	b.obj("<< /Type /Annot /Subtype /Widget /FT /Tx /T (Name) /TU (Applicant Name) " +
		"/Rect [10 700 210 720] /MaxLen 40 >>")

	// 5: merged checkbox widget (no Ff: plain checkbox)
	b.obj("<< /Type /Annot /Subtype /Widget /FT /Btn /T (Agree) /Rect [10 650 25 665] >>")

	// 6: radio group field, kids 7 and 8
	b.obj("<< /FT /Btn /T (Color) /Ff 32768 /V /Off /Kids [7 0 R 8 0 R] >>")
	b.obj("<< /Type /Annot /Subtype /Widget /Parent 6 0 R /Rect [10 600 25 615] " +
		"/AP << /N << /Red 9 0 R /Off 10 0 R >> >> /AS /Off >>")
	b.obj("<< /Type /Annot /Subtype /Widget /Parent 6 0 R /Rect [40 600 55 615] " +
		"/AP << /N << /Blue 9 0 R /Off 10 0 R >> >> /AS /Off >>")

	// 9, 10: shared empty appearance streams
	appearance := "<< /Type /XObject /Subtype /Form /BBox [0 0 1 1] /Length 0 >>\nstream\n\nendstream"
	b.obj(appearance)
	b.obj(appearance)

	return b.bytes()
}

// filledFormPDF builds the same layout as formPDF but with every field
// carrying a pre-existing value: text "Alice", a checkbox using the custom
// on-state /1, and the Color group preselected to Red.
func filledFormPDF(t *testing.T) []byte {
	t.Helper()
	b := newPDFBuilder()

	b.obj("<< /Type /Catalog /Pages 2 0 R /AcroForm << /Fields [4 0 R 5 0 R 6 0 R] >> >>")
	b.obj("<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	b.obj("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Annots [4 0 R 5 0 R 7 0 R 8 0 R] >>")

	b.obj("<< /Type /Annot /Subtype /Widget /FT /Tx /T (Name) /V (Alice) " +
		"/Rect [10 700 210 720] /MaxLen 40 >>")

	b.obj("<< /Type /Annot /Subtype /Widget /FT /Btn /T (Agree) /V /1 /AS /1 " +
		"/Rect [10 650 25 665] /AP << /N << /1 9 0 R /Off 10 0 R >> >> >>")

	b.obj("<< /FT /Btn /T (Color) /Ff 32768 /V /Red /Kids [7 0 R 8 0 R] >>")
	b.obj("<< /Type /Annot /Subtype /Widget /Parent 6 0 R /Rect [10 600 25 615] " +
		"/AP << /N << /Red 9 0 R /Off 10 0 R >> >> /AS /Red >>")
	b.obj("<< /Type /Annot /Subtype /Widget /Parent 6 0 R /Rect [40 600 55 615] " +
		"/AP << /N << /Blue 9 0 R /Off 10 0 R >> >> /AS /Off >>")

	appearance := "<< /Type /XObject /Subtype /Form /BBox [0 0 1 1] /Length 0 >>\nstream\n\nendstream"
	b.obj(appearance)
	b.obj(appearance)

	return b.bytes()
}

func TestOpen_InvalidBytes(t *testing.T) {
	_, err := Open([]byte("definitely not a PDF"))
	assert.Error(t, err)
}

func TestSource_PageAndAnnotations(t *testing.T) {
	src, err := Open(formPDF(t))
	require.NoError(t, err)

	assert.Equal(t, 1, src.PageCount())

	page, err := src.Page(1)
	require.NoError(t, err)
	assert.InDelta(t, 792.0, page.Height(), 0.001)

	annots, err := page.Annotations()
	require.NoError(t, err)
	require.Len(t, annots, 4)

	name := annots[0]
	assert.Equal(t, fields.SubtypeWidget, name.Subtype)
	assert.Equal(t, fields.TypeCodeText, name.FieldType)
	assert.Equal(t, "Name", name.FieldName)
	assert.Equal(t, "Applicant Name", name.Tooltip)
	assert.Equal(t, []float64{10, 700, 210, 720}, name.Rect)
	assert.Equal(t, 40, name.MaxLength)

	agree := annots[1]
	assert.Equal(t, fields.TypeCodeButton, agree.FieldType)
	assert.True(t, agree.CheckBox)
	assert.False(t, agree.PushButton)

	red, blue := annots[2], annots[3]
	for _, w := range []fields.AnnotationRecord{red, blue} {
		assert.Equal(t, fields.TypeCodeButton, w.FieldType)
		assert.False(t, w.CheckBox)
		// Field name and flags come from the parent group.
		assert.Equal(t, "Color", w.FieldName)
	}
	assert.Equal(t, "Red", red.ExportValue)
	assert.Equal(t, "Blue", blue.ExportValue)
}

func TestSource_FeedsExtractor(t *testing.T) {
	src, err := Open(formPDF(t))
	require.NoError(t, err)

	out := fields.NewExtractor(false).Extract(src)

	require.Len(t, out, 3)
	assert.Equal(t, fields.KindText, out[0].Kind)
	assert.Equal(t, fields.KindCheckbox, out[1].Kind)

	radio := out[2]
	assert.Equal(t, fields.KindRadio, radio.Kind)
	assert.Equal(t, "Color", radio.TechnicalName)
	assert.Equal(t, []string{"Red", "Blue"}, radio.Options)
	assert.Len(t, radio.Widgets, 2)
}

func TestMutator_Capabilities(t *testing.T) {
	doc, err := NewMutator().Load(formPDF(t))
	require.NoError(t, err)

	caps := make(map[string]fields.Capability)
	for _, mf := range doc.Fields() {
		caps[mf.Name()] = mf.Capability()
	}

	assert.Equal(t, fields.CapabilityText, caps["Name"])
	assert.Equal(t, fields.CapabilityCheck, caps["Agree"])
	assert.Equal(t, fields.CapabilitySelect, caps["Color"])
}

func TestMutator_RejectsUnknownRadioOption(t *testing.T) {
	doc, err := NewMutator().Load(formPDF(t))
	require.NoError(t, err)

	var color fields.MutableField
	for _, mf := range doc.Fields() {
		if mf.Name() == "Color" {
			color = mf
		}
	}
	require.NotNil(t, color)
	assert.Error(t, color.Select("Green"))
	assert.NoError(t, color.Select("Blue"))
}

func TestExporter_RoundTripThroughRealDocument(t *testing.T) {
	original := formPDF(t)

	src, err := Open(original)
	require.NoError(t, err)
	extracted := fields.NewExtractor(false).Extract(src)
	require.Len(t, extracted, 3)

	for i := range extracted {
		switch extracted[i].Kind {
		case fields.KindText:
			extracted[i].Value = "Hello"
		case fields.KindCheckbox:
			extracted[i].Value = fields.CheckboxOn
		case fields.KindRadio:
			extracted[i].Value = "Red"
		}
	}

	filled, err := fields.NewExporter(NewMutator(), false).Export(original, extracted)
	require.NoError(t, err)
	require.NotEmpty(t, filled)

	// Reload the serialized output and confirm the values landed.
	reloaded, err := Open(filled)
	require.NoError(t, err)
	page, err := reloaded.Page(1)
	require.NoError(t, err)
	annots, err := page.Annotations()
	require.NoError(t, err)

	values := make(map[string]string)
	for _, a := range annots {
		values[a.FieldName] = a.FieldValue
	}
	assert.Equal(t, "Hello", values["Name"])
	assert.Equal(t, "Yes", values["Agree"])
	assert.Equal(t, "Red", values["Color"])
}

func TestExporter_ClearsRadioSelection(t *testing.T) {
	original := formPDF(t)

	src, err := Open(original)
	require.NoError(t, err)
	extracted := fields.NewExtractor(false).Extract(src)

	// Select, export, then clear and export again.
	for i := range extracted {
		if extracted[i].Kind == fields.KindRadio {
			extracted[i].Value = "Blue"
		}
	}
	exporter := fields.NewExporter(NewMutator(), false)
	filled, err := exporter.Export(original, extracted)
	require.NoError(t, err)

	for i := range extracted {
		if extracted[i].Kind == fields.KindRadio {
			extracted[i].Value = ""
		}
	}
	cleared, err := exporter.Export(filled, extracted)
	require.NoError(t, err)

	reloaded, err := Open(cleared)
	require.NoError(t, err)
	page, err := reloaded.Page(1)
	require.NoError(t, err)
	annots, err := page.Annotations()
	require.NoError(t, err)

	for _, a := range annots {
		if a.FieldName == "Color" {
			assert.Equal(t, "Off", a.FieldValue)
		}
	}
}

func TestPageTextBytes_InvalidBytes(t *testing.T) {
	_, err := PageTextBytes([]byte("definitely not a PDF"), 1)
	assert.Error(t, err)
}

func TestPageTextBytes_PageOutOfRange(t *testing.T) {
	_, err := PageTextBytes(formPDF(t), 99)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestDocumentText_OpenFailure(t *testing.T) {
	_, err := DocumentText("/nonexistent/file.pdf")
	assert.Error(t, err)
}

func TestExtract_ReadsExistingValues(t *testing.T) {
	src, err := Open(filledFormPDF(t))
	require.NoError(t, err)

	out := fields.NewExtractor(false).Extract(src)
	require.Len(t, out, 3)

	values := make(map[string]string)
	for _, f := range out {
		values[f.TechnicalName] = f.Value
	}
	assert.Equal(t, "Alice", values["Name"])
	// Custom on-states read as checked regardless of the state name.
	assert.Equal(t, fields.CheckboxOn, values["Agree"])
	assert.Equal(t, "Red", values["Color"])
}

func TestExporter_UntouchedExportPreservesExistingValues(t *testing.T) {
	original := filledFormPDF(t)

	src, err := Open(original)
	require.NoError(t, err)
	extracted := fields.NewExtractor(false).Extract(src)
	require.Len(t, extracted, 3)

	// Export without editing anything: the document must come back with
	// the same values it was opened with.
	filled, err := fields.NewExporter(NewMutator(), false).Export(original, extracted)
	require.NoError(t, err)

	reloaded, err := Open(filled)
	require.NoError(t, err)
	page, err := reloaded.Page(1)
	require.NoError(t, err)
	annots, err := page.Annotations()
	require.NoError(t, err)

	values := make(map[string]string)
	for _, a := range annots {
		values[a.FieldName] = a.FieldValue
	}
	assert.Equal(t, "Alice", values["Name"])
	// The write side keeps the widget's own on-state, not the generic Yes.
	assert.Equal(t, "1", values["Agree"])
	assert.Equal(t, "Red", values["Color"])
}
