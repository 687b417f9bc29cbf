// Package mimetype resolves file names and extensions to MIME types.
//
// A Table starts from a built-in set of common web types and falls back to the
// system registry (mime.TypeByExtension) for anything it does not know. Entries
// can be added programmatically or loaded from a YAML document, which lets a
// deployment pin or extend the mapping without a rebuild.
//
// # Usage
//
//	import "github.com/dmitrymomot/response/pkg/mimetype"
//
//	typ, ok := mimetype.Lookup("report.pdf") // "application/pdf", true
//	typ, ok = mimetype.Lookup("html")        // "text/html", true
//
// Custom types from a YAML file:
//
//	# mime.yaml
//	types:
//	  webmanifest: application/manifest+json
//	  glb: model/gltf-binary
//
//	t := mimetype.New()
//	if err := t.LoadFile("mime.yaml"); err != nil {
//	    return err
//	}
//
// # Error Handling
//
// Lookup never fails; it reports a miss through its boolean result. Loading
// returns ErrInvalidDocument or ErrInvalidEntry wrapped with details.
package mimetype
