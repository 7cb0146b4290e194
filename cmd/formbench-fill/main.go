// Command formbench-fill lists and fills PDF form fields from the command
// line, without going through the MCP server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/formbench/formbench/internal/fields"
	"github.com/formbench/formbench/internal/pdfdoc"
)

var (
	valuesPath   = flag.String("values", "", "JSON file mapping field names to values; fills the form")
	outputPath   = flag.String("output", "", "Where to write the filled PDF (default: <input>-filled.pdf)")
	outputFormat = flag.String("format", "text", "Output format for field listings: text, json")
	showText     = flag.Bool("text", false, "Print the document's plain text instead of listing fields")
	verbose      = flag.Bool("verbose", false, "Enable verbose output")
	help         = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: PDF file path required\n\n")
		printUsage()
		os.Exit(1)
	}

	pdfPath := flag.Arg(0)
	if _, err := os.Stat(pdfPath); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: File not found: %s\n", pdfPath)
		os.Exit(1)
	}

	if *valuesPath != "" {
		if err := fillForm(pdfPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error filling form: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *showText {
		text, err := pdfdoc.DocumentText(pdfPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error extracting text: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(text)
		return
	}

	result, err := listFields(pdfPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error extracting fields: %v\n", err)
		os.Exit(1)
	}

	if err := outputResults(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error outputting results: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Formbench Fill - list and fill PDF form fields from the command line")
	fmt.Println()
	fmt.Println("Without -values the tool lists the interactive fields of the document.")
	fmt.Println("With -values it writes the given values into a copy of the document.")
	fmt.Println("With -text it prints the document's plain text instead.")
	fmt.Println()
	printUsage()
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -values        JSON file mapping field names to string values")
	fmt.Println("  -output        Output path for the filled PDF")
	fmt.Println("  -format        Output format for listings: text (default), json")
	fmt.Println("  -text          Print the document's plain text")
	fmt.Println("  -verbose       Enable verbose output")
	fmt.Println("  -help          Show this help message")
	fmt.Println()
	fmt.Println("VALUE CONVENTIONS:")
	fmt.Println("  • Text fields take any string")
	fmt.Println("  • Checkboxes take \"Yes\" or \"Off\"")
	fmt.Println("  • Radio groups take one of their export values, or \"\" to clear")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  formbench-fill application.pdf")
	fmt.Println("  formbench-fill -format json application.pdf")
	fmt.Println("  formbench-fill -text application.pdf")
	fmt.Println("  formbench-fill -values answers.json -output filled.pdf application.pdf")
}

func printUsage() {
	fmt.Println("USAGE:")
	fmt.Println("  formbench-fill [OPTIONS] <pdf_file>")
}

// FieldListing is the JSON shape of a field listing.
type FieldListing struct {
	FilePath   string         `json:"file_path"`
	Success    bool           `json:"success"`
	FieldCount int            `json:"field_count"`
	Fields     []fields.Field `json:"fields"`
	Error      string         `json:"error,omitempty"`
}

func listFields(pdfPath string) (*FieldListing, error) {
	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	result := &FieldListing{
		FilePath: absPath,
		Success:  false,
	}

	src, err := pdfdoc.OpenFile(absPath)
	if err != nil {
		result.Error = err.Error()
		return result, nil // Don't fail, return error in result
	}

	extracted := fields.NewExtractor(*verbose).Extract(src)

	result.Success = true
	result.FieldCount = len(extracted)
	result.Fields = extracted

	return result, nil
}

func fillForm(pdfPath string) error {
	valuesData, err := os.ReadFile(*valuesPath)
	if err != nil {
		return fmt.Errorf("failed to read values file: %w", err)
	}

	var values map[string]string
	if err := json.Unmarshal(valuesData, &values); err != nil {
		return fmt.Errorf("failed to parse values file: %w", err)
	}

	original, err := os.ReadFile(pdfPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", pdfPath, err)
	}

	src, err := pdfdoc.Open(original)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", pdfPath, err)
	}
	extracted := fields.NewExtractor(*verbose).Extract(src)

	applied := 0
	for i := range extracted {
		if v, ok := values[extracted[i].TechnicalName]; ok {
			extracted[i].Value = v
			applied++
		}
	}
	if *verbose {
		fmt.Printf("Matched %d of %d values to fields\n", applied, len(values))
	}

	filled, err := fields.NewExporter(pdfdoc.NewMutator(), *verbose).Export(original, extracted)
	if err != nil {
		return err
	}

	out := *outputPath
	if out == "" {
		ext := filepath.Ext(pdfPath)
		out = strings.TrimSuffix(pdfPath, ext) + "-filled" + ext
	}
	if err := os.WriteFile(out, filled, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	fmt.Printf("Wrote %s (%d bytes, %d values applied)\n", out, len(filled), applied)
	return nil
}

func outputResults(result *FieldListing) error {
	switch *outputFormat {
	case "json":
		return outputJSON(result)
	case "text":
		return outputText(result)
	default:
		return fmt.Errorf("unsupported output format: %s", *outputFormat)
	}
}

func outputJSON(result *FieldListing) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputText(result *FieldListing) error {
	if !result.Success {
		fmt.Printf("Field extraction failed: %s\n", result.Error)
		return nil
	}

	if result.FieldCount == 0 {
		fmt.Println("No form fields detected in the PDF")
		fmt.Println()
		fmt.Println("The document may not contain interactive forms, or the fields")
		fmt.Println("may be drawn into the page content rather than stored as widgets.")
		return nil
	}

	fmt.Printf("Found %d form fields\n", result.FieldCount)
	fmt.Println()

	for i, field := range result.Fields {
		fmt.Printf("[%d] %s\n", i+1, field.TechnicalName)
		if field.DisplayName != "" && field.DisplayName != field.TechnicalName {
			fmt.Printf("    Label: %s\n", field.DisplayName)
		}
		fmt.Printf("    Type: %s\n", field.Kind)

		if field.Value != "" {
			fmt.Printf("    Value: %s\n", field.Value)
		}

		if field.Page > 0 {
			fmt.Printf("    Page: %d\n", field.Page)
		}

		fmt.Printf("    Position: (%.1f, %.1f) to (%.1f, %.1f)\n",
			field.Geometry.X0, field.Geometry.Y0,
			field.Geometry.X1, field.Geometry.Y1)

		properties := []string{}
		if field.Constraints.Required {
			properties = append(properties, "Required")
		}
		if field.Constraints.ReadOnly {
			properties = append(properties, "ReadOnly")
		}
		if field.Constraints.Multiline {
			properties = append(properties, "Multiline")
		}
		if len(properties) > 0 {
			fmt.Printf("    Properties: %v\n", properties)
		}

		if len(field.Options) > 0 {
			fmt.Printf("    Options: %v\n", field.Options)
		}

		if field.Constraints.MaxLength > 0 {
			fmt.Printf("    Max Length: %d\n", field.Constraints.MaxLength)
		}

		fmt.Println()
	}

	return nil
}

func init() {
	// Custom flag usage
	flag.Usage = func() {
		printHelp()
	}
}
