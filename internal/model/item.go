package model

// CreateItem belongs to a category through CategoryID.
//
// Price is free text ("12.50", "market price") and is stored as given.
type CreateItem struct {
	CategoryID   int64  `json:"catId" db:"category_id"`
	Name         string `json:"name" db:"name"`
	AName        string `json:"aname" db:"aname"`
	Image        string `json:"IMG" db:"img"`
	Price        string `json:"price" db:"price"`
	Description  string `json:"desc" db:"description"`
	ADescription string `json:"adesc" db:"adescription"`
}

func (i CreateItem) Values() []any {
	return []any{i.CategoryID, i.Name, i.AName, i.Image, i.Price, i.Description, i.ADescription}
}

type StoredItem struct {
	CreateItem
	Timestamps
}

type Item struct {
	ID int64 `json:"id" db:"id"`
	StoredItem
}
