// Package mcp exposes the form engine over the Model Context Protocol.
package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/formbench/formbench/internal/config"
	"github.com/formbench/formbench/internal/descriptions"
	"github.com/formbench/formbench/internal/fields"
	"github.com/formbench/formbench/internal/pdfdoc"
	"github.com/formbench/formbench/internal/session"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	manager   *session.Manager
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, manager *session.Manager) (*Server, error) {
	if manager == nil {
		return nil, fmt.Errorf("manager cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:    cfg,
		manager:   manager,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	formOpenTool := mcp.NewTool(
		"form_open",
		mcp.WithDescription(descriptions.GetToolDescription("form_open")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the PDF form (relative paths resolve against the forms directory)"),
		),
	)
	s.mcpServer.AddTool(formOpenTool, s.handleFormOpen)

	formFieldsTool := mcp.NewTool(
		"form_fields",
		mcp.WithDescription(descriptions.GetToolDescription("form_fields")),
		mcp.WithString("document_id",
			mcp.Required(),
			mcp.Description("Document id returned by form_open"),
		),
		mcp.WithNumber("scale",
			mcp.Description("Optional zoom factor for screen geometry (default 1.0)"),
		),
	)
	s.mcpServer.AddTool(formFieldsTool, s.handleFormFields)

	formSetValueTool := mcp.NewTool(
		"form_set_value",
		mcp.WithDescription(descriptions.GetToolDescription("form_set_value")),
		mcp.WithString("document_id",
			mcp.Required(),
			mcp.Description("Document id returned by form_open"),
		),
		mcp.WithString("field",
			mcp.Required(),
			mcp.Description("Technical name of the field to set"),
		),
		mcp.WithString("value",
			mcp.Required(),
			mcp.Description("New value ('Yes'/'Off' for checkboxes, an export value for radio groups, empty to clear)"),
		),
	)
	s.mcpServer.AddTool(formSetValueTool, s.handleFormSetValue)

	formClearValuesTool := mcp.NewTool(
		"form_clear_values",
		mcp.WithDescription(descriptions.GetToolDescription("form_clear_values")),
		mcp.WithString("document_id",
			mcp.Required(),
			mcp.Description("Document id returned by form_open"),
		),
	)
	s.mcpServer.AddTool(formClearValuesTool, s.handleFormClearValues)

	formExportTool := mcp.NewTool(
		"form_export",
		mcp.WithDescription(descriptions.GetToolDescription("form_export")),
		mcp.WithString("document_id",
			mcp.Required(),
			mcp.Description("Document id returned by form_open"),
		),
		mcp.WithString("output_path",
			mcp.Required(),
			mcp.Description("Where to write the filled PDF (relative paths resolve against the forms directory)"),
		),
	)
	s.mcpServer.AddTool(formExportTool, s.handleFormExport)

	formPageTextTool := mcp.NewTool(
		"form_page_text",
		mcp.WithDescription(descriptions.GetToolDescription("form_page_text")),
		mcp.WithString("document_id",
			mcp.Required(),
			mcp.Description("Document id returned by form_open"),
		),
		mcp.WithNumber("page",
			mcp.Required(),
			mcp.Description("Page number, starting at 1"),
		),
	)
	s.mcpServer.AddTool(formPageTextTool, s.handleFormPageText)

	formServerInfoTool := mcp.NewTool(
		"form_server_info",
		mcp.WithDescription(descriptions.GetToolDescription("form_server_info")),
	)
	s.mcpServer.AddTool(formServerInfoTool, s.handleFormServerInfo)
}

// Handler functions
func (s *Server) handleFormOpen(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess, err := s.manager.OpenFile(s.resolvePath(path))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Opened form: %s\n", sess.Name())
	responseText += fmt.Sprintf("Document ID: %s\n", sess.ID())
	responseText += fmt.Sprintf("Pages: %d\n", sess.PageCount())
	responseText += fmt.Sprintf("Fields: %d\n", len(sess.Fields()))
	responseText += "\nUse form_fields with the document id to list the fields."

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleFormFields(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := s.requireSession(request)
	if errResult != nil {
		return errResult, nil
	}

	scale := 1.0
	if v, ok := request.GetArguments()["scale"].(float64); ok && v > 0 {
		scale = v
	}

	return mcp.NewToolResultText(s.formatFields(sess, scale)), nil
}

func (s *Server) handleFormSetValue(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := s.requireSession(request)
	if errResult != nil {
		return errResult, nil
	}

	field, err := request.RequireString("field")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, err := request.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := sess.SetValue(field, value); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Set %s = %q", field, value)), nil
}

func (s *Server) handleFormClearValues(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := s.requireSession(request)
	if errResult != nil {
		return errResult, nil
	}

	if err := sess.ClearValues(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Cleared all values in %s", sess.Name())), nil
}

func (s *Server) handleFormExport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := s.requireSession(request)
	if errResult != nil {
		return errResult, nil
	}

	outputPath, err := request.RequireString("output_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	filled, err := sess.Export()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resolved := s.resolvePath(outputPath)
	if err := os.WriteFile(resolved, filled, 0o644); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to write %s: %v", resolved, err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Exported %s to %s (%d bytes)",
		sess.Name(), resolved, len(filled))), nil
}

func (s *Server) handleFormPageText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := s.requireSession(request)
	if errResult != nil {
		return errResult, nil
	}

	pageArg, ok := request.GetArguments()["page"].(float64)
	if !ok || pageArg < 1 {
		return mcp.NewToolResultError("page must be a positive number"), nil
	}
	page := int(pageArg)

	text, err := pdfdoc.PageTextBytes(sess.Bytes(), page)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Text of %s, page %d:\n\n%s", sess.Name(), page, text)
	if strings.TrimSpace(text) == "" {
		responseText = fmt.Sprintf("Page %d of %s has no extractable text (it may be scanned).",
			page, sess.Name())
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleFormServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.formatServerInfo()), nil
}

// requireSession resolves the document_id argument to an open session, or
// returns a tool error result explaining what went wrong.
func (s *Server) requireSession(request mcp.CallToolRequest) (*session.Session, *mcp.CallToolResult) {
	id, err := request.RequireString("document_id")
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	sess, ok := s.manager.Get(id)
	if !ok {
		return nil, mcp.NewToolResultError(
			fmt.Sprintf("no open document with id %q; call form_open first", id))
	}
	return sess, nil
}

// resolvePath makes relative paths relative to the forms directory.
func (s *Server) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.config.FormsDirectory, path)
}

// Formatting methods
func (s *Server) formatFields(sess *session.Session, scale float64) string {
	all := sess.Fields()
	text := fmt.Sprintf("Fields of %s (%d total)\n", sess.Name(), len(all))
	if scale != 1.0 {
		text += fmt.Sprintf("Screen geometry at scale %.2f\n", scale)
	}

	for i, f := range all {
		text += fmt.Sprintf("\n%d. %s\n", i+1, f.TechnicalName)
		if f.DisplayName != "" && f.DisplayName != f.TechnicalName {
			text += fmt.Sprintf("   Label: %s\n", f.DisplayName)
		}
		text += fmt.Sprintf("   Type: %s\n", f.Kind)
		text += fmt.Sprintf("   Page: %d\n", f.Page)
		text += fmt.Sprintf("   Value: %q\n", f.Value)
		if len(f.Options) > 0 {
			text += fmt.Sprintf("   Options: %s\n", strings.Join(f.Options, ", "))
		}
		text += formatConstraints(f.Constraints)

		canvasHeight := sess.PageHeight(f.Page) * scale
		rect := fields.RectToScreen(f.Geometry, scale, canvasHeight)
		text += fmt.Sprintf("   Position: left=%.1f top=%.1f width=%.1f height=%.1f\n",
			rect.Left, rect.Top, rect.Width, rect.Height)
	}

	return text
}

func formatConstraints(c fields.Constraints) string {
	var parts []string
	if c.Required {
		parts = append(parts, "required")
	}
	if c.ReadOnly {
		parts = append(parts, "read-only")
	}
	if c.Multiline {
		parts = append(parts, "multiline")
	}
	if c.MaxLength > 0 {
		parts = append(parts, fmt.Sprintf("max length %d", c.MaxLength))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("   Constraints: %s\n", strings.Join(parts, ", "))
}

func (s *Server) formatServerInfo() string {
	text := fmt.Sprintf("%s v%s - Server Information\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("Forms Directory: %s\n", s.config.FormsDirectory)
	text += fmt.Sprintf("Max File Size: %d MB\n", s.config.MaxFileSize/(1024*1024))
	if s.config.StorePath != "" {
		text += fmt.Sprintf("Value Store: %s (values persist across restarts)\n", s.config.StorePath)
	} else {
		text += "Value Store: in-memory (values persist for this process only)\n"
	}

	files := s.listFormsDirectory()
	if len(files) > 0 {
		text += fmt.Sprintf("\nForms Directory Contents (%d PDF files):\n", len(files))
		for i, name := range files {
			if i >= 10 { // Limit to first 10 files for readability
				text += fmt.Sprintf("   ... and %d more files\n", len(files)-10)
				break
			}
			text += fmt.Sprintf("   %d. %s\n", i+1, name)
		}
	} else {
		text += "\nForms Directory Contents: no PDF files found\n"
	}

	text += "\nAvailable Tools:\n"
	names := descriptions.GetAllToolNames()
	sort.Strings(names)
	for _, name := range names {
		desc := descriptions.GetToolDescription(name)
		// First line of the long description is the summary.
		summary, _, _ := strings.Cut(desc, "\n")
		text += fmt.Sprintf("\n• %s\n  %s\n", name, summary)
	}

	text += "\nTypical workflow: form_open → form_fields → form_set_value → form_export\n"

	return text
}

// listFormsDirectory returns the PDF file names in the configured directory.
func (s *Server) listFormsDirectory() []string {
	entries, err := os.ReadDir(s.config.FormsDirectory)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting form server in stdio mode")
		log.Printf("Forms directory: %s", s.config.FormsDirectory)
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode
func (s *Server) runServerMode(ctx context.Context) error {
	// The mark3labs transport only exposes stdio here; keep the flag for
	// forward compatibility and fall back.
	log.Printf("Server mode not yet implemented with mark3labs/mcp-go")
	log.Printf("Falling back to stdio mode")
	return s.runStdioMode(ctx)
}
