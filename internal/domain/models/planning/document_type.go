package planning

import (
	"fmt"
	"sort"
	"strings"
)

// DocumentType is one stage of the planning pipeline.
// The order of DocumentTypes is significant: each type may consume the
// content of every earlier type when it is generated.
type DocumentType string

const (
	TypeProjectRequest     DocumentType = "project-request"
	TypeTechnicalSpec      DocumentType = "technical-spec"
	TypePRD                DocumentType = "prd"
	TypeUserFlows          DocumentType = "user-flows"
	TypeUIGuide            DocumentType = "ui-guide"
	TypeImplementationPlan DocumentType = "implementation-plan"
)

// DocumentTypes lists every document type in canonical order.
var DocumentTypes = []DocumentType{
	TypeProjectRequest,
	TypeTechnicalSpec,
	TypePRD,
	TypeUserFlows,
	TypeUIGuide,
	TypeImplementationPlan,
}

var displayNames = map[DocumentType]string{
	TypeProjectRequest:     "Project Request",
	TypeTechnicalSpec:      "Technical Specification",
	TypePRD:                "Product Requirements Document",
	TypeUserFlows:          "User Flows",
	TypeUIGuide:            "UI Guide",
	TypeImplementationPlan: "Implementation Plan",
}

// ParseDocumentType converts a raw value into a DocumentType.
func ParseDocumentType(s string) (DocumentType, error) {
	t := DocumentType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown document type %q", s)
	}
	return t, nil
}

// Valid reports whether t is one of the canonical document types.
func (t DocumentType) Valid() bool {
	return t.Position() >= 0
}

// Position returns the zero-based canonical index of t, or -1 if unknown.
func (t DocumentType) Position() int {
	for i, dt := range DocumentTypes {
		if dt == t {
			return i
		}
	}
	return -1
}

// PlaceholderKey returns the template token name bound to this type's content,
// e.g. technical-spec -> TECHNICAL_SPEC.
func (t DocumentType) PlaceholderKey() string {
	return strings.ToUpper(strings.ReplaceAll(string(t), "-", "_"))
}

// DisplayName returns the human-readable name of the type.
func (t DocumentType) DisplayName() string {
	if name, ok := displayNames[t]; ok {
		return name
	}
	return string(t)
}

// DocumentTypeStrings returns the canonical type values, for SQL ordering and validation.
func DocumentTypeStrings() []string {
	out := make([]string, len(DocumentTypes))
	for i, t := range DocumentTypes {
		out[i] = string(t)
	}
	return out
}

// SortDocuments orders docs by canonical document type.
func SortDocuments(docs []Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Type.Position() < docs[j].Type.Position()
	})
}

// Preceding returns the documents whose type comes before t in canonical order.
func Preceding(docs []Document, t DocumentType) []Document {
	pos := t.Position()
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		if p := d.Type.Position(); p >= 0 && p < pos {
			out = append(out, d)
		}
	}
	return out
}
