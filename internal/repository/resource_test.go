package repository

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/deppfellow/menu-service/internal/database"
	"github.com/deppfellow/menu-service/internal/model"
	"github.com/deppfellow/menu-service/internal/testhelpers"
)

// stepClock advances by one second on every call.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(time.Second)
	return c.now
}

type RepositorySuite struct {
	suite.Suite

	ctx   context.Context
	clock *stepClock
	repos *Repositories
}

func (s *RepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = &stepClock{now: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}

	srv := testhelpers.NewTestServer(s.T())
	s.repos = NewRepositories(srv, WithClock(s.clock.Now))
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) TestCreateThenList() {
	payload := model.CreateQuote{Book: "Dune", Quote: "Fear is the mind-killer"}

	stored, err := s.repos.Quotes.Create(s.ctx, payload)
	s.Require().NoError(err)
	s.Equal(payload, stored.CreateQuote)
	s.False(stored.CreatedAt.IsZero())
	s.True(stored.CreatedAt.Equal(stored.UpdatedAt))

	quotes, err := s.repos.Quotes.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(quotes, 1)

	s.Positive(quotes[0].ID)
	s.Equal(payload, quotes[0].CreateQuote)
	s.True(stored.CreatedAt.Equal(quotes[0].CreatedAt))
	s.True(quotes[0].CreatedAt.Equal(quotes[0].UpdatedAt))
}

func (s *RepositorySuite) TestListEmpty() {
	sections, err := s.repos.Sections.List(s.ctx)
	s.Require().NoError(err)
	s.NotNil(sections)
	s.Empty(sections)
}

func (s *RepositorySuite) TestListByParent() {
	for _, c := range []model.CreateCategory{
		{Name: "Starters", SectionID: 1},
		{Name: "Mains", SectionID: 1},
		{Name: "Juices", SectionID: 2},
	} {
		_, err := s.repos.Categories.Create(s.ctx, c)
		s.Require().NoError(err)
	}

	inFirst, err := s.repos.Categories.ListByParent(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(inFirst, 2)
	for _, c := range inFirst {
		s.Equal(int64(1), c.SectionID)
	}

	none, err := s.repos.Categories.ListByParent(s.ctx, 99)
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)
}

func (s *RepositorySuite) TestListByParentWithoutParentColumn() {
	_, err := s.repos.Quotes.ListByParent(s.ctx, 1)
	s.ErrorIs(err, ErrNoParent)
}

func (s *RepositorySuite) TestUpdate() {
	created, err := s.repos.Items.Create(s.ctx, model.CreateItem{CategoryID: 1, Name: "Tea", Price: "1.00"})
	s.Require().NoError(err)

	items, err := s.repos.Items.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	id := items[0].ID

	changed := model.CreateItem{
		CategoryID:   2,
		Name:         "Mint tea",
		AName:        "شاي بالنعناع",
		Image:        "tea.png",
		Price:        "1.50",
		Description:  "Fresh mint",
		ADescription: "نعناع طازج",
	}

	updated, err := s.repos.Items.Update(s.ctx, id, changed)
	s.Require().NoError(err)

	s.Equal(id, updated.ID)
	s.Equal(changed, updated.CreateItem)
	s.True(created.CreatedAt.Equal(updated.CreatedAt), "created_at is immutable")
	s.True(updated.UpdatedAt.After(created.UpdatedAt), "updated_at advances")

	moved, err := s.repos.Items.ListByParent(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(moved, 1, "parent column is replaced too")
	s.Equal(*updated, moved[0], "returned row is the stored row")
}

func (s *RepositorySuite) TestUpdateMissing() {
	_, err := s.repos.Sections.Create(s.ctx, model.CreateSection{Name: "Drinks"})
	s.Require().NoError(err)

	_, err = s.repos.Sections.Update(s.ctx, 404, model.CreateSection{Name: "Food"})
	s.ErrorIs(err, sql.ErrNoRows)
	s.Contains(err.Error(), "table:sections")

	sections, err := s.repos.Sections.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(sections, 1)
	s.Equal("Drinks", sections[0].Name)
}

func (s *RepositorySuite) TestDelete() {
	for _, name := range []string{"Breakfast", "Dinner"} {
		_, err := s.repos.Sections.Create(s.ctx, model.CreateSection{Name: name})
		s.Require().NoError(err)
	}

	sections, err := s.repos.Sections.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(sections, 2)

	s.Require().NoError(s.repos.Sections.Delete(s.ctx, sections[0].ID))

	remaining, err := s.repos.Sections.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(remaining, 1)
	s.Equal(sections[1].ID, remaining[0].ID)

	err = s.repos.Sections.Delete(s.ctx, sections[0].ID)
	s.ErrorIs(err, sql.ErrNoRows)
}

func TestNew_Statements(t *testing.T) {
	srv := testhelpers.NewTestServer(t)
	repo := New[model.CreateCategory, model.StoredCategory, model.Category](srv.DB, CategoryDefinition)

	assert.Equal(t, "categories", repo.Table())
	assert.True(t, repo.HasParent())
	assert.Equal(t, "SELECT id, name, aname, section_id, img, created_at, updated_at FROM categories", repo.selectSQL)
	assert.Equal(t, "INSERT INTO categories (name, aname, section_id, img, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)", repo.insertSQL)
	assert.Equal(t, "UPDATE categories SET name = ?, aname = ?, section_id = ?, img = ?, updated_at = ? WHERE id = ? RETURNING id, name, aname, section_id, img, created_at, updated_at", repo.updateSQL)
	assert.Equal(t, "DELETE FROM categories WHERE id = ?", repo.deleteSQL)
}

func TestDefinitions_ColumnsMatchValues(t *testing.T) {
	require.Len(t, QuoteDefinition.Columns, len(model.CreateQuote{}.Values()))
	require.Len(t, SectionDefinition.Columns, len(model.CreateSection{}.Values()))
	require.Len(t, CategoryDefinition.Columns, len(model.CreateCategory{}.Values()))
	require.Len(t, ItemDefinition.Columns, len(model.CreateItem{}.Values()))
}

func TestDefinitions_MatchSchema(t *testing.T) {
	check := func(table string, columns []string) {
		schema, ok := database.SchemaColumns[table]
		require.True(t, ok, table)
		for _, column := range append(columns, "id", "created_at", "updated_at") {
			assert.Contains(t, schema, column, table)
		}
	}

	check(QuoteDefinition.Table, QuoteDefinition.Columns)
	check(SectionDefinition.Table, SectionDefinition.Columns)
	check(CategoryDefinition.Table, CategoryDefinition.Columns)
	check(ItemDefinition.Table, ItemDefinition.Columns)
}

func TestNow_IsUTCMicroseconds(t *testing.T) {
	now := Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%1000)
}
