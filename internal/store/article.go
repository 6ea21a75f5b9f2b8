// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"

	"letterpress/internal/models"
)

// ArticleStore handles all article-related database operations against the
// legacy artigo table. Author and category display names are joined in at
// read time and never written back.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore with the given database connection.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// articleSelect is the shared projection for article reads, including the
// joined display names.
const articleSelect = `
	SELECT a.id, a.titulo, a.resumo, a.conteudo, a.status,
	       a.usuario_id, a.categoria_id, a.qtde_visualizacoes,
	       a.data_cadastro, a.data_atualizacao, a.data_publicacao,
	       COALESCE(u.nome, ''), COALESCE(c.nome, '')
	FROM artigo a
	LEFT JOIN usuario u ON u.id = a.usuario_id
	LEFT JOIN categoria c ON c.id = a.categoria_id`

// scanArticle scans one joined row into an Article.
func scanArticle(scanner interface{ Scan(...any) error }) (*models.Article, error) {
	var a models.Article
	err := scanner.Scan(
		&a.ID, &a.Title, &a.Summary, &a.Content, &a.Status,
		&a.AuthorID, &a.CategoryID, &a.ViewCount,
		&a.CreatedAt, &a.UpdatedAt, &a.PublishedAt,
		&a.AuthorName, &a.CategoryName,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// scanArticles drains a result set into a slice.
func scanArticles(rows *sql.Rows, op string) ([]models.Article, error) {
	defer rows.Close()

	var items []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fault(op, err)
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fault(op, err)
	}
	return items, nil
}

// Insert stores a new article and returns it with the generated ID and
// timestamps. Status and view count are whatever the caller set (the
// service always inserts drafts with zero views).
func (s *ArticleStore) Insert(a *models.Article) (*models.Article, error) {
	row := s.db.QueryRow(`
		INSERT INTO artigo (titulo, resumo, conteudo, status, usuario_id, categoria_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, data_cadastro, data_atualizacao
	`, a.Title, a.Summary, a.Content, a.Status, a.AuthorID, a.CategoryID)

	result := *a
	if err := row.Scan(&result.ID, &result.CreatedAt, &result.UpdatedAt); err != nil {
		return nil, fault("insert article", err)
	}
	return &result, nil
}

// Update rewrites the mutable columns of an article. The author column is
// deliberately absent: ownership never changes after creation. When the
// update flips a never-published article to Publicado the publication
// timestamp is stamped in the same statement, mirroring SetStatus.
// Returns false if no row matched the ID.
func (s *ArticleStore) Update(a *models.Article) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE artigo SET
			titulo = $1, resumo = $2, conteudo = $3, status = $4,
			categoria_id = $5, data_atualizacao = NOW(),
			data_publicacao = CASE
				WHEN $4 = 'Publicado' AND data_publicacao IS NULL THEN NOW()
				ELSE data_publicacao
			END
		WHERE id = $6
	`, a.Title, a.Summary, a.Content, a.Status, a.CategoryID, a.ID)
	if err != nil {
		return false, fault("update article", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fault("update article", err)
	}
	return n > 0, nil
}

// Delete removes an article. Returns false if the ID did not exist.
func (s *ArticleStore) Delete(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM artigo WHERE id = $1`, id)
	if err != nil {
		return false, fault("delete article", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fault("delete article", err)
	}
	return n > 0, nil
}

// GetByID retrieves one article with display names. Returns nil if not found.
func (s *ArticleStore) GetByID(id int64) (*models.Article, error) {
	a, err := scanArticle(s.db.QueryRow(articleSelect+` WHERE a.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fault("get article by id", err)
	}
	return a, nil
}

// GetByAuthor returns every article belonging to the author, newest first,
// in any status. This backs the "my articles" view.
func (s *ArticleStore) GetByAuthor(authorID int64) ([]models.Article, error) {
	rows, err := s.db.Query(articleSelect+`
		WHERE a.usuario_id = $1
		ORDER BY a.data_atualizacao DESC`, authorID)
	if err != nil {
		return nil, fault("list articles by author", err)
	}
	return scanArticles(rows, "list articles by author")
}

// GetPublished returns all published articles, most recently published first.
func (s *ArticleStore) GetPublished() ([]models.Article, error) {
	rows, err := s.db.Query(articleSelect+`
		WHERE a.status = 'Publicado'
		ORDER BY a.data_publicacao DESC NULLS LAST`)
	if err != nil {
		return nil, fault("list published articles", err)
	}
	return scanArticles(rows, "list published articles")
}

// SearchByTitle returns published articles whose title contains the term,
// case-insensitively. Drafts and paused articles never match, whatever the
// term.
func (s *ArticleStore) SearchByTitle(term string) ([]models.Article, error) {
	rows, err := s.db.Query(articleSelect+`
		WHERE a.status = 'Publicado'
		  AND a.titulo ILIKE '%' || $1 || '%'
		ORDER BY a.data_publicacao DESC NULLS LAST`, term)
	if err != nil {
		return nil, fault("search articles", err)
	}
	return scanArticles(rows, "search articles")
}

// TitleExists reports whether another article already carries this exact
// title (case-sensitive). excludeID skips one article so an edit that keeps
// its own title passes; pass 0 for inserts.
func (s *ArticleStore) TitleExists(title string, excludeID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM artigo WHERE titulo = $1 AND id <> $2)
	`, title, excludeID).Scan(&exists)
	if err != nil {
		return false, fault("check title exists", err)
	}
	return exists, nil
}

// SetStatus moves an article to the given status. The publication
// timestamp is stamped in the same statement on the first transition to
// Publicado and preserved ever after, so "was published once" survives
// pausing. Returns false if the ID did not exist.
func (s *ArticleStore) SetStatus(id int64, status models.Status) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE artigo SET
			status = $2, data_atualizacao = NOW(),
			data_publicacao = CASE
				WHEN $2 = 'Publicado' AND data_publicacao IS NULL THEN NOW()
				ELSE data_publicacao
			END
		WHERE id = $1
	`, id, status)
	if err != nil {
		return false, fault("set article status", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fault("set article status", err)
	}
	return n > 0, nil
}

// IncrementViews adds one to the article's view counter. Only the public
// read path calls this; the counter never moves any other way.
func (s *ArticleStore) IncrementViews(id int64) error {
	_, err := s.db.Exec(`
		UPDATE artigo SET qtde_visualizacoes = qtde_visualizacoes + 1 WHERE id = $1
	`, id)
	if err != nil {
		return fault("increment views", err)
	}
	return nil
}

// CountByCategory returns how many articles reference the category. Used
// to log dangling references when a category is deleted.
func (s *ArticleStore) CountByCategory(categoryID int64) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM artigo WHERE categoria_id = $1`, categoryID).Scan(&count)
	if err != nil {
		return 0, fault("count articles by category", err)
	}
	return count, nil
}
