// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives bound
// requests from handlers, calls repository methods and keeps the read
// cache consistent with every write.
package service

import (
	"github.com/deppfellow/menu-service/internal/cache"
	"github.com/deppfellow/menu-service/internal/model"
	"github.com/deppfellow/menu-service/internal/repository"
	"github.com/deppfellow/menu-service/internal/server"
)

type (
	QuoteService    = ResourceService[model.CreateQuote, model.StoredQuote, model.Quote]
	SectionService  = ResourceService[model.CreateSection, model.StoredSection, model.Section]
	CategoryService = ResourceService[model.CreateCategory, model.StoredCategory, model.Category]
	ItemService     = ResourceService[model.CreateItem, model.StoredItem, model.Item]
)

type Services struct {
	Quotes     *QuoteService
	Sections   *SectionService
	Categories *CategoryService
	Items      *ItemService
}

// NewServices wires one service per resource family. All of them share
// the same cache, which is nil when Redis is not configured.
func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	readCache := cache.New(s.Redis, s.Config.Redis.CacheTTL, s.Logger)

	return &Services{
		Quotes:     NewResourceService(s, repos.Quotes, readCache),
		Sections:   NewResourceService(s, repos.Sections, readCache),
		Categories: NewResourceService(s, repos.Categories, readCache),
		Items:      NewResourceService(s, repos.Items, readCache),
	}
}
