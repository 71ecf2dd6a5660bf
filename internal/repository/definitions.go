package repository

import "github.com/deppfellow/menu-service/internal/model"

var QuoteDefinition = Definition[model.CreateQuote, model.StoredQuote]{
	Table:   "quotes",
	Columns: []string{"book", "quote"},
	NewStored: func(p model.CreateQuote, ts model.Timestamps) model.StoredQuote {
		return model.StoredQuote{CreateQuote: p, Timestamps: ts}
	},
}

var SectionDefinition = Definition[model.CreateSection, model.StoredSection]{
	Table:   "sections",
	Columns: []string{"name", "aname"},
	NewStored: func(p model.CreateSection, ts model.Timestamps) model.StoredSection {
		return model.StoredSection{CreateSection: p, Timestamps: ts}
	},
}

var CategoryDefinition = Definition[model.CreateCategory, model.StoredCategory]{
	Table:        "categories",
	Columns:      []string{"name", "aname", "section_id", "img"},
	ParentColumn: "section_id",
	NewStored: func(p model.CreateCategory, ts model.Timestamps) model.StoredCategory {
		return model.StoredCategory{CreateCategory: p, Timestamps: ts}
	},
}

var ItemDefinition = Definition[model.CreateItem, model.StoredItem]{
	Table:        "items",
	Columns:      []string{"category_id", "name", "aname", "img", "price", "description", "adescription"},
	ParentColumn: "category_id",
	NewStored: func(p model.CreateItem, ts model.Timestamps) model.StoredItem {
		return model.StoredItem{CreateItem: p, Timestamps: ts}
	},
}
