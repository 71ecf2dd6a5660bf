// Package repository handles all interactions with the database.
//
// It contains the SQL statements and the methods to fetch, persist,
// update or delete rows, abstracting SQL away from the service layer.
// One generic Repository is instantiated per resource family.
package repository

import (
	"github.com/deppfellow/menu-service/internal/model"
	"github.com/deppfellow/menu-service/internal/server"
)

type (
	QuoteRepository    = Repository[model.CreateQuote, model.StoredQuote, model.Quote]
	SectionRepository  = Repository[model.CreateSection, model.StoredSection, model.Section]
	CategoryRepository = Repository[model.CreateCategory, model.StoredCategory, model.Category]
	ItemRepository     = Repository[model.CreateItem, model.StoredItem, model.Item]
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Quotes     *QuoteRepository
	Sections   *SectionRepository
	Categories *CategoryRepository
	Items      *ItemRepository
}

// NewRepositories constructs the repository container on top of the shared database handle.
func NewRepositories(s *server.Server, opts ...Option) *Repositories {
	return &Repositories{
		Quotes:     New[model.CreateQuote, model.StoredQuote, model.Quote](s.DB, QuoteDefinition, opts...),
		Sections:   New[model.CreateSection, model.StoredSection, model.Section](s.DB, SectionDefinition, opts...),
		Categories: New[model.CreateCategory, model.StoredCategory, model.Category](s.DB, CategoryDefinition, opts...),
		Items:      New[model.CreateItem, model.StoredItem, model.Item](s.DB, ItemDefinition, opts...),
	}
}
