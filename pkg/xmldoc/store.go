package xmldoc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
)

// ErrParse indicates that a config file could not be parsed as XML.
var ErrParse = errors.New("malformed XML")

// xmlDeclaration is the declaration written at the top of every persisted
// config file. Jenkins itself writes single-quoted declarations.
const xmlDeclaration = "<?xml version='1.0' encoding='UTF-8'?>\n"

// indentSpaces is the canonical indentation depth for serialized documents.
const indentSpaces = 2

// Document is an XML tree tied to the config file it was loaded from.
// A Document is owned by a single reconciliation and is never shared or
// cached across invocations.
type Document struct {
	*etree.Document

	// Path is the absolute path the document was loaded from.
	Path string
}

// Load parses the XML config file at path into a Document. Whitespace-only
// text between elements is discarded so that repeated pretty-printing is
// stable, and any XML declaration is dropped (Write re-emits one).
func Load(path string) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: %s: no root element", ErrParse, path)
	}
	doc.Indent(etree.NoIndent)
	stripDeclaration(doc)
	return &Document{Document: doc, Path: path}, nil
}

// Serialize renders the canonical pretty-printed form of the document.
// The same rendering is used for diffing and for the bytes written to
// disk, so an in-memory diff matches what Write would persist.
func Serialize(doc *Document) ([]byte, error) {
	doc.Indent(indentSpaces)
	b, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serialize %s: %w", doc.Path, err)
	}
	if len(b) == 0 || b[len(b)-1] != '\n' {
		b = append(b, '\n')
	}
	return b, nil
}

// Write persists the canonical serialization of doc to path with an XML
// declaration and UTF-8 encoding. The file is staged in the target
// directory and renamed into place so a failed write never truncates the
// existing config.
func Write(path string, doc *Document) error {
	body, err := Serialize(doc)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jenconf-*.xml")
	if err != nil {
		return fmt.Errorf("stage %s: %w", path, err)
	}
	tmpName := tmp.Name()
	_, werr := tmp.WriteString(xmlDeclaration)
	if werr == nil {
		_, werr = tmp.Write(body)
	}
	if cerr := tmp.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		os.Remove(tmpName)
		return fmt.Errorf("stage %s: %w", path, werr)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("stage %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// stripDeclaration removes a leading xml processing instruction so that
// Serialize output never carries a declaration; Write prepends its own.
func stripDeclaration(doc *etree.Document) {
	for i, tok := range doc.Child {
		if pi, ok := tok.(*etree.ProcInst); ok && pi.Target == "xml" {
			doc.RemoveChildAt(i)
			return
		}
	}
}
