// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"

	"letterpress/internal/models"
)

// CategoryStore manages categories in the legacy categoria table.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, nome, descricao, data_cadastro, data_atualizacao`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new category and returns it with generated fields.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	row := s.db.QueryRow(`
		INSERT INTO categoria (nome, descricao)
		VALUES ($1, $2)
		RETURNING `+categoryColumns,
		c.Name, c.Description,
	)
	result, err := scanCategory(row)
	if err != nil {
		return nil, fault("create category", err)
	}
	return result, nil
}

// Update modifies an existing category. Returns false if the ID did not exist.
func (s *CategoryStore) Update(c *models.Category) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE categoria SET nome = $1, descricao = $2, data_atualizacao = NOW()
		WHERE id = $3
	`, c.Name, c.Description, c.ID)
	if err != nil {
		return false, fault("update category", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fault("update category", err)
	}
	return n > 0, nil
}

// Delete removes a category. Articles keep their categoria_id; there is no
// foreign key and no cascade, matching the schema this port inherits.
// Returns false if the ID did not exist.
func (s *CategoryStore) Delete(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM categoria WHERE id = $1`, id)
	if err != nil {
		return false, fault("delete category", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fault("delete category", err)
	}
	return n > 0, nil
}

// GetByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) GetByID(id int64) (*models.Category, error) {
	c, err := scanCategory(s.db.QueryRow(`SELECT `+categoryColumns+` FROM categoria WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fault("get category by id", err)
	}
	return c, nil
}

// GetByName retrieves a category by its exact name. This is the lookup the
// service runs before inserts to keep names unique. Returns nil if not found.
func (s *CategoryStore) GetByName(name string) (*models.Category, error) {
	c, err := scanCategory(s.db.QueryRow(`SELECT `+categoryColumns+` FROM categoria WHERE nome = $1`, name))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fault("get category by name", err)
	}
	return c, nil
}

// GetAll returns every category ordered by name, with article counts.
func (s *CategoryStore) GetAll() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.nome, c.descricao, c.data_cadastro, c.data_atualizacao,
		       COUNT(a.id) AS article_count
		FROM categoria c
		LEFT JOIN artigo a ON a.categoria_id = c.id
		GROUP BY c.id
		ORDER BY c.nome
	`)
	if err != nil {
		return nil, fault("list categories", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt, &c.ArticleCount)
		if err != nil {
			return nil, fault("scan category", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fault("list categories", err)
	}
	return items, nil
}
