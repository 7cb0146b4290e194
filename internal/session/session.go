// Package session ties the field engine together for callers: it opens
// documents, keeps the live field collection, persists edits through a
// store and exports filled documents.
package session

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/formbench/formbench/internal/fields"
	"github.com/formbench/formbench/internal/pdfdoc"
	"github.com/formbench/formbench/internal/store"
)

// opener loads a parse-side document from raw bytes.
type opener func(data []byte) (fields.Document, error)

// Manager owns the open sessions, keyed by document id. The id is the hash
// of the document bytes, so reopening the same file resumes its stored
// values.
type Manager struct {
	store       store.Store
	open        opener
	loader      fields.MutableLoader
	maxFileSize int64
	debug       bool

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a manager backed by the pdfcpu capabilities.
func NewManager(st store.Store, maxFileSize int64, debug bool) *Manager {
	return newManagerWith(
		func(data []byte) (fields.Document, error) { return pdfdoc.Open(data) },
		pdfdoc.NewMutator(),
		st, maxFileSize, debug,
	)
}

func newManagerWith(open opener, loader fields.MutableLoader, st store.Store, maxFileSize int64, debug bool) *Manager {
	return &Manager{
		store:       st,
		open:        open,
		loader:      loader,
		maxFileSize: maxFileSize,
		debug:       debug,
		sessions:    make(map[string]*Session),
	}
}

// OpenFile validates and loads a document from disk.
func (m *Manager) OpenFile(path string) (*Session, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return nil, fmt.Errorf("file is not a PDF: %s", path)
	}
	if m.maxFileSize > 0 && info.Size() > m.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)", info.Size(), m.maxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return m.Open(data, filepath.Base(path))
}

// Open extracts the field collection from raw document bytes and registers
// a session for it. Stored values for the same document overlay the freshly
// extracted ones.
func (m *Manager) Open(data []byte, name string) (*Session, error) {
	doc, err := m.open(data)
	if err != nil {
		return nil, fields.NewDocumentOpenError(err)
	}

	extracted := fields.NewExtractor(m.debug).Extract(doc)

	heights := make(map[int]float64, doc.PageCount())
	for n := 1; n <= doc.PageCount(); n++ {
		if page, err := doc.Page(n); err == nil {
			heights[n] = page.Height()
		}
	}

	s := &Session{
		id:          documentID(data),
		name:        name,
		original:    data,
		pageCount:   doc.PageCount(),
		pageHeights: heights,
		fields:      extracted,
		store:       m.store,
		exporter:    fields.NewExporter(m.loader, m.debug),
	}

	if stored, err := m.store.GetAll(s.id); err == nil {
		for i := range s.fields {
			if v, ok := stored[s.fields[i].TechnicalName]; ok {
				s.fields[i].Value = v
			}
		}
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
	return s, nil
}

// Get returns the open session with the given id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Close discards a session. Stored values survive for the next open.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// documentID derives a stable id from the document bytes so stored values
// follow the document across sessions.
func documentID(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:16])
}

// Session is one open document: the original bytes, the live field
// collection and the export machinery.
type Session struct {
	id          string
	name        string
	original    []byte
	pageCount   int
	pageHeights map[int]float64
	store       store.Store
	exporter    *fields.Exporter

	mu     sync.Mutex
	fields []fields.Field

	// exportMu serializes exports: a new one must not start while a
	// previous one is in flight.
	exportMu sync.Mutex
}

// ID returns the stable document id.
func (s *Session) ID() string { return s.id }

// Name returns the display name the session was opened under.
func (s *Session) Name() string { return s.name }

// Bytes returns the original document bytes.
func (s *Session) Bytes() []byte { return s.original }

// PageCount returns the document's page count.
func (s *Session) PageCount() int { return s.pageCount }

// PageHeight returns the page's height in PDF points, or 0 when unknown.
func (s *Session) PageHeight(page int) float64 { return s.pageHeights[page] }

// Fields returns a snapshot of the field collection.
func (s *Session) Fields() []fields.Field {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]fields.Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// SetValue updates a field's value (last write wins) and persists it.
// Fields are addressed by technical name.
func (s *Session) SetValue(technicalName, value string) error {
	s.mu.Lock()
	var target *fields.Field
	for i := range s.fields {
		if s.fields[i].TechnicalName == technicalName {
			target = &s.fields[i]
			break
		}
	}
	if target == nil {
		s.mu.Unlock()
		return fmt.Errorf("no field named %q", technicalName)
	}
	if target.Constraints.ReadOnly {
		s.mu.Unlock()
		return fmt.Errorf("field %q is read-only", technicalName)
	}
	if target.Constraints.MaxLength > 0 && len(value) > target.Constraints.MaxLength {
		s.mu.Unlock()
		return fmt.Errorf("value exceeds max length %d for field %q",
			target.Constraints.MaxLength, technicalName)
	}
	target.Value = value
	s.mu.Unlock()

	return s.store.Set(s.id, technicalName, value)
}

// ClearValues resets every field and drops the stored values.
func (s *Session) ClearValues() error {
	s.mu.Lock()
	for i := range s.fields {
		if s.fields[i].Kind == fields.KindCheckbox {
			s.fields[i].Value = fields.CheckboxOff
		} else {
			s.fields[i].Value = ""
		}
	}
	s.mu.Unlock()

	return s.store.Clear(s.id)
}

// Export writes the current values into a fresh copy of the original
// document and returns the serialized bytes. Exports against one session
// are serialized; callers should disable re-triggering for the duration.
func (s *Session) Export() ([]byte, error) {
	s.exportMu.Lock()
	defer s.exportMu.Unlock()
	return s.exporter.Export(s.original, s.Fields())
}
