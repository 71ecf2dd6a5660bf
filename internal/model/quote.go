package model

type CreateQuote struct {
	Book  string `json:"book" db:"book"`
	Quote string `json:"quote" db:"quote"`
}

func (q CreateQuote) Values() []any {
	return []any{q.Book, q.Quote}
}

type StoredQuote struct {
	CreateQuote
	Timestamps
}

type Quote struct {
	ID int64 `json:"id" db:"id"`
	StoredQuote
}
