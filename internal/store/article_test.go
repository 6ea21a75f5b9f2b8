// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"letterpress/internal/models"
)

// seedAuthor inserts a throwaway user and returns its id.
func seedAuthor(t *testing.T, db *sql.DB) int64 {
	t.Helper()

	email := "author-" + uuid.NewString() + "@test.local"
	var id int64
	err := db.QueryRow(`
		INSERT INTO usuario (nome, email, senha_hash, perfil)
		VALUES ('Test Author', $1, 'x', 'author') RETURNING id
	`, email).Scan(&id)
	if err != nil {
		t.Fatalf("seed author: %v", err)
	}
	t.Cleanup(func() { cleanUsers(t, db, email) })
	return id
}

// seedCategory inserts a throwaway category and returns its id.
func seedCategory(t *testing.T, db *sql.DB) int64 {
	t.Helper()

	name := "cat-" + uuid.NewString()
	var id int64
	err := db.QueryRow(`
		INSERT INTO categoria (nome) VALUES ($1) RETURNING id
	`, name).Scan(&id)
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}
	t.Cleanup(func() { cleanCategories(t, db, name) })
	return id
}

// testTitle returns a unique article title and registers its cleanup.
func testTitle(t *testing.T, db *sql.DB) string {
	t.Helper()
	title := "Article " + uuid.NewString()
	t.Cleanup(func() { cleanArticles(t, db, title) })
	return title
}

func insertDraft(t *testing.T, s *ArticleStore, db *sql.DB, authorID, categoryID int64) *models.Article {
	t.Helper()

	a, err := s.Insert(&models.Article{
		Title:      testTitle(t, db),
		Summary:    "summary",
		Content:    "content",
		Status:     models.StatusDraft,
		AuthorID:   authorID,
		CategoryID: categoryID,
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	return a
}

func TestArticleInsertAndGet(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)
	authorID := seedAuthor(t, db)
	categoryID := seedCategory(t, db)

	a := insertDraft(t, s, db, authorID, categoryID)
	if a.ID == 0 {
		t.Fatal("Insert should assign an id")
	}

	got, err := s.GetByID(a.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetByID returned nil for an existing article")
	}
	if got.Status != models.StatusDraft {
		t.Errorf("status = %q, want draft", got.Status)
	}
	if got.ViewCount != 0 {
		t.Errorf("view count = %d, want 0", got.ViewCount)
	}
	if got.PublishedAt != nil {
		t.Error("a fresh draft has no publication date")
	}
	if got.AuthorName != "Test Author" {
		t.Errorf("author name = %q, want joined display name", got.AuthorName)
	}
	if got.CategoryName == "" {
		t.Error("category name should be joined in")
	}
}

func TestArticleGetByIDMissing(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)

	got, err := s.GetByID(-1)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Error("GetByID should return nil for a missing article")
	}
}

func TestArticleSetStatusStampsPublication(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)
	a := insertDraft(t, s, db, seedAuthor(t, db), seedCategory(t, db))

	ok, err := s.SetStatus(a.ID, models.StatusPublished)
	if err != nil || !ok {
		t.Fatalf("SetStatus failed: ok=%v err=%v", ok, err)
	}

	published, _ := s.GetByID(a.ID)
	if published.Status != models.StatusPublished {
		t.Errorf("status = %q, want published", published.Status)
	}
	if published.PublishedAt == nil {
		t.Fatal("publishing must stamp data_publicacao")
	}
	stamp := *published.PublishedAt

	// Pausing keeps the stamp.
	if ok, err := s.SetStatus(a.ID, models.StatusPaused); err != nil || !ok {
		t.Fatalf("SetStatus failed: ok=%v err=%v", ok, err)
	}
	paused, _ := s.GetByID(a.ID)
	if paused.PublishedAt == nil || !paused.PublishedAt.Equal(stamp) {
		t.Error("pausing must not change data_publicacao")
	}

	// Re-publishing keeps the original stamp too.
	if ok, err := s.SetStatus(a.ID, models.StatusPublished); err != nil || !ok {
		t.Fatalf("SetStatus failed: ok=%v err=%v", ok, err)
	}
	again, _ := s.GetByID(a.ID)
	if again.PublishedAt == nil || !again.PublishedAt.Equal(stamp) {
		t.Error("re-publishing must keep the first data_publicacao")
	}
}

func TestArticleSetStatusMissing(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)

	ok, err := s.SetStatus(-1, models.StatusPublished)
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if ok {
		t.Error("SetStatus should report false for a missing id")
	}
}

func TestArticleUpdateStampsPublicationOnce(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)
	a := insertDraft(t, s, db, seedAuthor(t, db), seedCategory(t, db))

	// Flipping to published through a full update stamps the date.
	a.Status = models.StatusPublished
	a.Summary = "edited"
	if ok, err := s.Update(a); err != nil || !ok {
		t.Fatalf("Update failed: ok=%v err=%v", ok, err)
	}

	got, _ := s.GetByID(a.ID)
	if got.PublishedAt == nil {
		t.Fatal("update to published must stamp data_publicacao")
	}
	if got.Summary != "edited" {
		t.Errorf("summary = %q, want %q", got.Summary, "edited")
	}
}

func TestArticleTitleExists(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)
	a := insertDraft(t, s, db, seedAuthor(t, db), seedCategory(t, db))

	exists, err := s.TitleExists(a.Title, 0)
	if err != nil {
		t.Fatalf("TitleExists failed: %v", err)
	}
	if !exists {
		t.Error("TitleExists should find the inserted title")
	}

	// Excluding the article itself clears the check (the no-op rename case).
	exists, err = s.TitleExists(a.Title, a.ID)
	if err != nil {
		t.Fatalf("TitleExists failed: %v", err)
	}
	if exists {
		t.Error("TitleExists must skip the excluded id")
	}

	exists, err = s.TitleExists("no such title "+uuid.NewString(), 0)
	if err != nil {
		t.Fatalf("TitleExists failed: %v", err)
	}
	if exists {
		t.Error("TitleExists should not find an unknown title")
	}
}

func TestArticleIncrementViews(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)
	a := insertDraft(t, s, db, seedAuthor(t, db), seedCategory(t, db))

	for i := 0; i < 3; i++ {
		if err := s.IncrementViews(a.ID); err != nil {
			t.Fatalf("IncrementViews failed: %v", err)
		}
	}

	got, _ := s.GetByID(a.ID)
	if got.ViewCount != 3 {
		t.Errorf("view count = %d, want 3", got.ViewCount)
	}
}

func TestArticleSearchAndListing(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)
	authorID := seedAuthor(t, db)
	categoryID := seedCategory(t, db)

	marker := uuid.NewString()

	published := insertDraft(t, s, db, authorID, categoryID)
	draft := insertDraft(t, s, db, authorID, categoryID)

	// Retitle both with a shared marker so the search term is unique to
	// this test run.
	published.Title = "Published " + marker
	draft.Title = "Draft " + marker
	t.Cleanup(func() { cleanArticles(t, db, published.Title, draft.Title) })
	if ok, err := s.Update(published); err != nil || !ok {
		t.Fatalf("Update failed: ok=%v err=%v", ok, err)
	}
	if ok, err := s.Update(draft); err != nil || !ok {
		t.Fatalf("Update failed: ok=%v err=%v", ok, err)
	}
	if ok, err := s.SetStatus(published.ID, models.StatusPublished); err != nil || !ok {
		t.Fatalf("SetStatus failed: ok=%v err=%v", ok, err)
	}

	// Search matches case-insensitively and only published articles.
	results, err := s.SearchByTitle(marker)
	if err != nil {
		t.Fatalf("SearchByTitle failed: %v", err)
	}
	if len(results) != 1 || results[0].ID != published.ID {
		t.Errorf("search should return only the published article, got %d results", len(results))
	}

	upper, err := s.SearchByTitle("PUBLISHED " + marker)
	if err != nil {
		t.Fatalf("SearchByTitle failed: %v", err)
	}
	if len(upper) != 1 {
		t.Errorf("search should be case-insensitive, got %d results", len(upper))
	}

	// The author listing includes both statuses.
	mine, err := s.GetByAuthor(authorID)
	if err != nil {
		t.Fatalf("GetByAuthor failed: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("author listing should hold 2 articles, got %d", len(mine))
	}

	// The public feed includes only the published one.
	feed, err := s.GetPublished()
	if err != nil {
		t.Fatalf("GetPublished failed: %v", err)
	}
	for _, a := range feed {
		if a.ID == draft.ID {
			t.Error("draft must not appear in the public feed")
		}
	}
}

func TestArticleDelete(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)
	a := insertDraft(t, s, db, seedAuthor(t, db), seedCategory(t, db))

	ok, err := s.Delete(a.ID)
	if err != nil || !ok {
		t.Fatalf("Delete failed: ok=%v err=%v", ok, err)
	}

	got, _ := s.GetByID(a.ID)
	if got != nil {
		t.Error("article should be gone after delete")
	}

	ok, err = s.Delete(a.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if ok {
		t.Error("deleting again should report false")
	}
}

func TestArticleCountByCategory(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)
	authorID := seedAuthor(t, db)
	categoryID := seedCategory(t, db)

	insertDraft(t, s, db, authorID, categoryID)
	insertDraft(t, s, db, authorID, categoryID)

	count, err := s.CountByCategory(categoryID)
	if err != nil {
		t.Fatalf("CountByCategory failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}
