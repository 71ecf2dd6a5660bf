package handler

import (
	"github.com/deppfellow/menu-service/internal/model"
	"github.com/deppfellow/menu-service/internal/server"
	"github.com/deppfellow/menu-service/internal/service"
)

type (
	QuoteHandler    = ResourceHandler[model.CreateQuote, model.StoredQuote, model.Quote]
	SectionHandler  = ResourceHandler[model.CreateSection, model.StoredSection, model.Section]
	CategoryHandler = ResourceHandler[model.CreateCategory, model.StoredCategory, model.Category]
	ItemHandler     = ResourceHandler[model.CreateItem, model.StoredItem, model.Item]
)

// Handlers groups all HTTP handlers so router setup receives one value.
type Handlers struct {
	Health     *HealthHandler
	Quotes     *QuoteHandler
	Sections   *SectionHandler
	Categories *CategoryHandler
	Items      *ItemHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(s),
		Quotes:     NewResourceHandler(s, services.Quotes),
		Sections:   NewResourceHandler(s, services.Sections),
		Categories: NewResourceHandler(s, services.Categories),
		Items:      NewResourceHandler(s, services.Items),
	}
}
