package models

import "fmt"

// ScopeKind selects what a study session draws its cards from.
type ScopeKind string

const (
	ScopeSection ScopeKind = "section"
	ScopeBook    ScopeKind = "book"
)

// Scope is a section id or a book id to study.
type Scope struct {
	Kind ScopeKind `json:"scope" validate:"required,oneof=section book"`
	ID   string    `json:"id" validate:"required"`
}

func SectionScope(id string) Scope { return Scope{Kind: ScopeSection, ID: id} }

func BookScope(id string) Scope { return Scope{Kind: ScopeBook, ID: id} }

func (s Scope) String() string {
	return fmt.Sprintf("%s:%s", s.Kind, s.ID)
}
