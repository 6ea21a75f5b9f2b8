package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: an admin, an
// author, a couple of categories and one published article. It is a no-op
// when any user already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM usuario").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	// Both default accounts share the dev password. 2FA is not enabled;
	// they must set it up on first login.
	var adminID, authorID int64
	err = db.QueryRow(`
		INSERT INTO usuario (nome, email, senha_hash, perfil)
		VALUES ($1, $2, $3, $4) RETURNING id
	`, "Admin", "admin@letterpress.local", string(hash), "admin").Scan(&adminID)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}
	err = db.QueryRow(`
		INSERT INTO usuario (nome, email, senha_hash, perfil)
		VALUES ($1, $2, $3, $4) RETURNING id
	`, "Author", "author@letterpress.local", string(hash), "author").Scan(&authorID)
	if err != nil {
		return fmt.Errorf("seed insert author: %w", err)
	}

	var catID int64
	err = db.QueryRow(`
		INSERT INTO categoria (nome, descricao)
		VALUES ('General', 'Everything that fits nowhere else') RETURNING id
	`).Scan(&catID)
	if err != nil {
		return fmt.Errorf("seed insert category: %w", err)
	}
	if _, err := db.Exec(`
		INSERT INTO categoria (nome, descricao)
		VALUES ('Engineering', 'Technical notes and writeups')
	`); err != nil {
		return fmt.Errorf("seed insert category: %w", err)
	}

	if _, err := db.Exec(`
		INSERT INTO artigo (titulo, resumo, conteudo, status, usuario_id, categoria_id, data_publicacao)
		VALUES ($1, $2, $3, 'Publicado', $4, $5, NOW())
	`, "Welcome to letterpress",
		"A first post to confirm the blog is up.",
		"## Hello\n\nThis article was created by the development seed.",
		authorID, catID,
	); err != nil {
		return fmt.Errorf("seed insert article: %w", err)
	}

	slog.Info("database seeded with default users",
		"admin", "admin@letterpress.local",
		"author", "author@letterpress.local",
		"password", "admin",
	)

	return nil
}
