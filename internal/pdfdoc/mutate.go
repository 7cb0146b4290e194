package pdfdoc

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/formbench/formbench/internal/fields"
)

// Mutator is the write-side capability: it loads a fresh mutable view over
// original document bytes. It implements fields.MutableLoader.
type Mutator struct{}

// NewMutator creates a Mutator.
func NewMutator() *Mutator { return &Mutator{} }

// Load parses the original bytes and collects every terminal AcroForm field
// as a writable object, classified once into its value capability.
func (m *Mutator) Load(original []byte) (fields.MutableDocument, error) {
	ctx, err := readContext(original)
	if err != nil {
		return nil, err
	}

	doc := &mutableDocument{ctx: ctx}

	rootDict, err := ctx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}

	acroFormObj, found := rootDict.Find("AcroForm")
	if !found {
		return doc, nil
	}
	acroForm, err := ctx.DereferenceDict(acroFormObj)
	if err != nil || acroForm == nil {
		return doc, nil
	}
	doc.acroForm = acroForm

	fieldsObj, found := acroForm.Find("Fields")
	if !found {
		return doc, nil
	}
	arr, err := ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference Fields array: %w", err)
	}

	for _, ref := range arr {
		doc.collect(ref, 0)
	}
	return doc, nil
}

// mutableDocument implements fields.MutableDocument over a pdfcpu context.
type mutableDocument struct {
	ctx      *model.Context
	acroForm types.Dict
	objects  []fields.MutableField
}

func (d *mutableDocument) Fields() []fields.MutableField { return d.objects }

// collect walks the field tree. Nodes whose kids carry their own /T are
// intermediate fields; everything else is terminal, its kids (if any) being
// widget annotations.
func (d *mutableDocument) collect(ref types.Object, depth int) {
	if depth > maxParentDepth {
		return
	}
	dict, err := d.ctx.DereferenceDict(ref)
	if err != nil || dict == nil {
		return
	}

	kids, hasChildFields := d.childFields(dict)
	if hasChildFields {
		for _, kid := range kids {
			d.collect(kid, depth+1)
		}
		return
	}

	d.addTerminal(dict)
}

// childFields returns the Kids array and whether any kid is a field node in
// its own right rather than a bare widget.
func (d *mutableDocument) childFields(dict types.Dict) (types.Array, bool) {
	kidsObj, found := dict.Find("Kids")
	if !found {
		return nil, false
	}
	kids, err := d.ctx.DereferenceArray(kidsObj)
	if err != nil {
		return nil, false
	}
	for _, kid := range kids {
		kidDict, err := d.ctx.DereferenceDict(kid)
		if err != nil || kidDict == nil {
			continue
		}
		if _, hasName := kidDict.Find("T"); hasName {
			return kids, true
		}
	}
	return kids, false
}

// addTerminal registers one terminal field, aliased under its fully
// qualified name as well when that differs from the partial name, so export
// matching succeeds whichever form extraction recorded.
func (d *mutableDocument) addTerminal(dict types.Dict) {
	mf := newMutableField(d.ctx, dict)
	if mf == nil {
		return
	}
	d.objects = append(d.objects, mf)
	if fqn := fullyQualifiedName(d.ctx, dict); fqn != "" && fqn != mf.name {
		alias := *mf
		alias.name = fqn
		d.objects = append(d.objects, &alias)
	}
}

// Save serializes the context. NeedAppearances is raised so viewers rebuild
// the widgets' appearance streams for the new values.
func (d *mutableDocument) Save() ([]byte, error) {
	if d.acroForm != nil {
		d.acroForm["NeedAppearances"] = types.Boolean(true)
	}
	var buf bytes.Buffer
	if err := api.WriteContext(d.ctx, &buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF context: %w", err)
	}
	return buf.Bytes(), nil
}

// mutableField is one writable terminal field. Its capability is decided at
// load time from the field's own type, not from what extraction believed.
type mutableField struct {
	ctx        *model.Context
	dict       types.Dict
	name       string
	capability fields.Capability
	choice     bool

	// widgets are the physical annotations carrying appearance states:
	// the kids for grouped buttons, the field dict itself when merged.
	widgets []types.Dict

	// onStates maps each widget index to its non-Off appearance state.
	onStates []string
}

func newMutableField(ctx *model.Context, dict types.Dict) *mutableField {
	mf := &mutableField{ctx: ctx, dict: dict, name: partialName(ctx, dict)}
	if mf.name == "" {
		return nil
	}

	mf.widgets = widgetDicts(ctx, dict)
	for _, w := range mf.widgets {
		mf.onStates = append(mf.onStates, onStateName(ctx, w))
	}

	switch inheritedName(ctx, dict, "FT") {
	case fields.TypeCodeText:
		mf.capability = fields.CapabilityText
	case fields.TypeCodeChoice:
		mf.capability = fields.CapabilitySelect
		mf.choice = true
	case fields.TypeCodeButton:
		flags, _ := inheritedInt(ctx, dict, "Ff")
		switch {
		case flags&flagPushbutton != 0:
			mf.capability = fields.CapabilityNone
		case flags&flagRadio != 0:
			mf.capability = fields.CapabilitySelect
		default:
			mf.capability = fields.CapabilityCheck
		}
	default:
		mf.capability = fields.CapabilityNone
	}
	return mf
}

// widgetDicts returns the annotation dicts holding the field's appearance
// states: the Kids when present, otherwise the merged field dict itself.
func widgetDicts(ctx *model.Context, dict types.Dict) []types.Dict {
	kidsObj, found := dict.Find("Kids")
	if !found {
		return []types.Dict{dict}
	}
	kids, err := ctx.DereferenceArray(kidsObj)
	if err != nil || len(kids) == 0 {
		return []types.Dict{dict}
	}
	out := make([]types.Dict, 0, len(kids))
	for _, kid := range kids {
		if kidDict, err := ctx.DereferenceDict(kid); err == nil && kidDict != nil {
			out = append(out, kidDict)
		}
	}
	if len(out) == 0 {
		return []types.Dict{dict}
	}
	return out
}

func (f *mutableField) Name() string                  { return f.name }
func (f *mutableField) Capability() fields.Capability { return f.capability }

// SetText assigns the field value as a string literal.
func (f *mutableField) SetText(value string) error {
	if f.capability != fields.CapabilityText {
		return fmt.Errorf("field %q does not accept text", f.name)
	}
	f.dict["V"] = types.StringLiteral(value)
	return nil
}

// Select applies a single-value selection. Choice fields take the value as
// a string; button groups take it as the selected widget's on-state name,
// with every widget's /AS updated to match. The empty value clears the
// selection.
func (f *mutableField) Select(value string) error {
	if f.capability != fields.CapabilitySelect {
		return fmt.Errorf("field %q does not accept a selection", f.name)
	}

	if f.choice {
		if value == "" {
			delete(f.dict, "V")
			delete(f.dict, "I")
			return nil
		}
		f.dict["V"] = types.StringLiteral(value)
		return nil
	}

	// Button group.
	if value == "" {
		f.dict["V"] = types.Name(offState)
		f.setAppearanceStates("")
		return nil
	}
	if !containsState(f.onStates, value) {
		return fmt.Errorf("field %q has no option %q", f.name, value)
	}
	f.dict["V"] = types.Name(value)
	f.setAppearanceStates(value)
	return nil
}

// SetChecked toggles a checkbox between its on-state and Off.
func (f *mutableField) SetChecked(checked bool) error {
	if f.capability != fields.CapabilityCheck {
		return fmt.Errorf("field %q does not accept a check state", f.name)
	}
	state := offState
	if checked {
		state = f.firstOnState()
	}
	f.dict["V"] = types.Name(state)
	if state == offState {
		f.setAppearanceStates("")
	} else {
		f.setAppearanceStates(state)
	}
	return nil
}

// setAppearanceStates points each widget's /AS at its own on-state when it
// matches the selected value, Off otherwise. Empty selected turns all off.
func (f *mutableField) setAppearanceStates(selected string) {
	for i, w := range f.widgets {
		if selected != "" && f.onStates[i] == selected {
			w["AS"] = types.Name(selected)
		} else {
			w["AS"] = types.Name(offState)
		}
	}
}

// firstOnState returns the checkbox's on-state name, defaulting to the
// conventional Yes when no appearance dictionary names one.
func (f *mutableField) firstOnState() string {
	for _, s := range f.onStates {
		if s != "" {
			return s
		}
	}
	return fields.CheckboxOn
}

func containsState(states []string, s string) bool {
	for _, v := range states {
		if v == s {
			return true
		}
	}
	return false
}
