package model

// CreateSection is a menu section. AName is the localized (Arabic) name.
type CreateSection struct {
	Name  string `json:"name" db:"name"`
	AName string `json:"aname" db:"aname"`
}

func (s CreateSection) Values() []any {
	return []any{s.Name, s.AName}
}

type StoredSection struct {
	CreateSection
	Timestamps
}

type Section struct {
	ID int64 `json:"id" db:"id"`
	StoredSection
}
