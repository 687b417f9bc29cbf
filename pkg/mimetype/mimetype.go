package mimetype

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Default is the fallback type for content that cannot be classified.
const Default = "application/octet-stream"

// builtin keeps lookups deterministic across hosts; the system registry
// differs between distributions and may be empty in containers.
var builtin = map[string]string{
	"html":  "text/html",
	"htm":   "text/html",
	"css":   "text/css",
	"js":    "text/javascript",
	"mjs":   "text/javascript",
	"json":  "application/json",
	"map":   "application/json",
	"txt":   "text/plain",
	"text":  "text/plain",
	"csv":   "text/csv",
	"md":    "text/markdown",
	"xml":   "application/xml",
	"bin":   "application/octet-stream",
	"pdf":   "application/pdf",
	"zip":   "application/zip",
	"gz":    "application/gzip",
	"tar":   "application/x-tar",
	"wasm":  "application/wasm",
	"jpg":   "image/jpeg",
	"jpeg":  "image/jpeg",
	"png":   "image/png",
	"gif":   "image/gif",
	"webp":  "image/webp",
	"svg":   "image/svg+xml",
	"ico":   "image/x-icon",
	"avif":  "image/avif",
	"mp3":   "audio/mpeg",
	"wav":   "audio/wav",
	"ogg":   "audio/ogg",
	"mp4":   "video/mp4",
	"webm":  "video/webm",
	"woff":  "font/woff",
	"woff2": "font/woff2",
	"ttf":   "font/ttf",
	"otf":   "font/otf",
}

// Table maps extensions (without the leading dot, lower case) to MIME types.
// It is safe for concurrent use.
type Table struct {
	mu    sync.RWMutex
	types map[string]string
}

// New returns a table seeded with the built-in types.
func New() *Table {
	t := &Table{types: make(map[string]string, len(builtin))}
	for ext, typ := range builtin {
		t.types[ext] = typ
	}
	return t
}

var defaultTable = New()

// Lookup resolves name against the default table.
func Lookup(name string) (string, bool) {
	return defaultTable.Lookup(name)
}

// Register adds or replaces an entry in the default table.
func Register(ext, typ string) error {
	return defaultTable.Register(ext, typ)
}

// Lookup resolves a bare extension ("html"), a dotted extension (".html") or a
// file name ("index.html") to a MIME type without parameters.
func (t *Table) Lookup(name string) (string, bool) {
	ext := Extension(name)
	if ext == "" {
		return "", false
	}

	t.mu.RLock()
	typ, ok := t.types[ext]
	t.mu.RUnlock()
	if ok {
		return typ, true
	}

	// System registry entries may carry parameters ("text/plain; charset=utf-8").
	if sys := mime.TypeByExtension("." + ext); sys != "" {
		if mediaType, _, err := mime.ParseMediaType(sys); err == nil {
			return mediaType, true
		}
	}
	return "", false
}

// LookupDefault resolves name or returns Default.
func (t *Table) LookupDefault(name string) string {
	if typ, ok := t.Lookup(name); ok {
		return typ
	}
	return Default
}

// Register adds or replaces an entry.
func (t *Table) Register(ext, typ string) error {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	typ = strings.TrimSpace(typ)
	if ext == "" || strings.ContainsAny(ext, "./\\") {
		return fmt.Errorf("%w: extension %q", ErrInvalidEntry, ext)
	}
	if _, _, err := mime.ParseMediaType(typ); err != nil || !strings.Contains(typ, "/") {
		return fmt.Errorf("%w: type %q for extension %q", ErrInvalidEntry, typ, ext)
	}

	t.mu.Lock()
	t.types[ext] = typ
	t.mu.Unlock()
	return nil
}

type document struct {
	Types map[string]string `yaml:"types"`
}

// Load reads a YAML document of the form `types: {ext: type}` and registers
// every entry. Nothing is registered if any entry is invalid.
func (t *Table) Load(r io.Reader) error {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	staged := New()
	staged.types = make(map[string]string, len(doc.Types))
	for ext, typ := range doc.Types {
		if err := staged.Register(ext, typ); err != nil {
			return err
		}
	}

	t.mu.Lock()
	for ext, typ := range staged.types {
		t.types[ext] = typ
	}
	t.mu.Unlock()
	return nil
}

// LoadFile is Load for a file on disk.
func (t *Table) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToOpen, err)
	}
	defer func() { _ = f.Close() }()
	return t.Load(f)
}

// Extension normalizes name to a lower-case extension without the dot.
// A name without a dot is treated as a bare extension.
func Extension(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if ext := filepath.Ext(name); ext != "" {
		return strings.ToLower(ext[1:])
	}
	if strings.ContainsAny(name, "/\\") {
		return ""
	}
	return strings.ToLower(name)
}
