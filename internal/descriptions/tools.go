package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	FormOpenDescription = `Open a PDF form and extract its interactive fields into an editable session.

**When to use:** Starting work on any fillable PDF - this is the entry point for every form-editing workflow.

**Why it's useful:** Parses the document's AcroForm once, consolidates radio button widgets into single choice fields, and returns a stable document id that every other form tool takes.

**Examples:**
• Start filling an application: "Open application.pdf so I can fill in the applicant details"
• Inspect a template: "Open tax-form.pdf to see which fields it collects"
• Resume earlier work: "Open invoice.pdf again - previously saved values are restored"

**Common workflows:**
1. Fill & Export: form_open → form_set_value (repeat) → form_export
2. Form Review: form_open → form_fields → analyze structure
3. Resume Session: form_open (same file) → stored values reappear → continue editing

**Best practices:** Keep the returned document id; reopening the same file yields the same id and restores persisted values.`

	FormFieldsDescription = `List the extracted fields of an open form with names, types, values, options and geometry.

**When to use:** Need to see what a form collects, check current values, or find the technical name required by form_set_value.

**Why it's useful:** Shows both the technical field name and a human-readable label, the field kind (text, checkbox, radio, select, signature), constraints, and the selectable options for choice fields.

**Examples:**
• Discover inputs: "List the fields of application.pdf to see what to fill"
• Verify progress: "Show current values to check which fields are still empty"
• Find radio options: "What options does the 'Color' group offer?"

**Common workflows:**
1. Guided Filling: form_fields → pick next empty field → form_set_value → repeat
2. Validation: form_fields → check required fields have values → form_export
3. Form Analysis: form_fields → catalog field types → plan data mapping

**Best practices:** Use the technical name (not the display label) when setting values; radio and select fields only accept one of the listed options.`

	FormSetValueDescription = `Set the value of a single form field in an open session.

**When to use:** Filling in text fields, ticking checkboxes, or choosing a radio/select option.

**Why it's useful:** Validates the field exists and is writable, enforces max-length constraints, persists the value so it survives restarts, and keeps radio groups consistent.

**Examples:**
• Text: "Set 'Name' to 'Alice Smith' in the open application"
• Checkbox: "Set 'Agree' to 'Yes' to tick the terms checkbox"
• Radio: "Set 'Color' to 'Blue' - one of the group's export values"

**Common workflows:**
1. Sequential Filling: form_fields → form_set_value per field → form_export
2. Correction: form_set_value with new value (last write wins) → re-export
3. Clearing one field: form_set_value with an empty value

**Best practices:** Checkboxes use 'Yes'/'Off'; radio groups accept their export values or empty to clear the selection.`

	FormClearValuesDescription = `Reset every field of an open form and drop its persisted values.

**When to use:** Starting over on a partially filled form, or producing a blank copy of a template.

**Why it's useful:** One call resets text fields to empty, checkboxes to 'Off' and clears radio selections, including the stored values that would otherwise be restored on the next open.

**Examples:**
• Restart: "Clear everything in application.pdf and start over"
• Blank template: "Clear the filled sample so I can export an empty form"

**Common workflows:**
1. Restart: form_clear_values → form_fields (verify empty) → refill
2. Template Export: form_open (filled sample) → form_clear_values → form_export

**Best practices:** This also deletes the persisted values; there is no undo.`

	FormExportDescription = `Write the session's current field values into a copy of the original PDF and save it.

**When to use:** Done editing and ready to produce the filled document.

**Why it's useful:** Reconciles every edited value back into the original document's fields - including radio appearance states - and leaves the source file untouched.

**Examples:**
• Save results: "Export the filled application to application-filled.pdf"
• Iterate: "Export, review in a viewer, fix values, export again"

**Common workflows:**
1. Final Output: form_set_value (all fields) → form_export → deliver document
2. Review Loop: form_export → inspect → form_set_value → form_export

**Best practices:** Fields without matching counterparts in the document are skipped with a warning rather than failing the whole export; exports on one session run one at a time.`

	FormPageTextDescription = `Extract the plain text of a form page for context around the fields.

**When to use:** Field names alone don't explain what a field means; the surrounding page text usually does.

**Why it's useful:** Labels, section headings and instructions live in the page content stream, not in the field dictionaries - this recovers them.

**Examples:**
• Understand a field: "Get page 2 text to see what 'Field_17' is asking for"
• Summarize a form: "Extract all page text from contract-form.pdf"

**Common workflows:**
1. Field Disambiguation: form_fields → form_page_text (same page) → match labels to fields
2. Form Summary: form_page_text per page → summarize the form's purpose

**Best practices:** Scanned forms may return little or no text; pair with field geometry to locate labels.`

	FormServerInfoDescription = `Get server status, configuration, available tools and the forms directory contents.

**When to use:** Starting a session, troubleshooting, or discovering what this server can do.

**Why it's useful:** One call shows the configured forms directory, the size limit, whether values persist across restarts, and a usage summary for every tool.

**Examples:**
• Session start: "Check the server info before opening any forms"
• Troubleshooting: "Why isn't my file found? Check the configured directory"

**Common workflows:**
1. Session Startup: form_server_info → form_open → edit
2. Debugging: form_server_info → verify directory and limits → retry

**Best practices:** Run once at the start of a session to learn the directory layout and tool set.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	"form_open":         FormOpenDescription,
	"form_fields":       FormFieldsDescription,
	"form_set_value":    FormSetValueDescription,
	"form_clear_values": FormClearValuesDescription,
	"form_export":       FormExportDescription,
	"form_page_text":    FormPageTextDescription,
	"form_server_info":  FormServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
