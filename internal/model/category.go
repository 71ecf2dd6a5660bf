package model

// CreateCategory belongs to a section through SectionID.
type CreateCategory struct {
	Name      string `json:"name" db:"name"`
	AName     string `json:"aname" db:"aname"`
	SectionID int64  `json:"secId" db:"section_id"`
	Image     string `json:"IMG" db:"img"`
}

func (c CreateCategory) Values() []any {
	return []any{c.Name, c.AName, c.SectionID, c.Image}
}

type StoredCategory struct {
	CreateCategory
	Timestamps
}

type Category struct {
	ID int64 `json:"id" db:"id"`
	StoredCategory
}
