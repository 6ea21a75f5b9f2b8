package store

import (
	"database/sql"

	"golang.org/x/crypto/bcrypt"

	"letterpress/internal/models"
)

// UserStore handles all user-related database operations.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, nome, email, senha_hash, perfil, totp_secret, totp_habilitado, data_cadastro, data_atualizacao`

func scanUser(scanner interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := scanner.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.TOTPSecret, &u.TOTPEnabled, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByEmail retrieves a user by email address. Returns nil if not found.
func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	u, err := scanUser(s.db.QueryRow(`SELECT `+userColumns+` FROM usuario WHERE email = $1`, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fault("find user by email", err)
	}
	return u, nil
}

// FindByID retrieves a user by ID. Returns nil if not found.
func (s *UserStore) FindByID(id int64) (*models.User, error) {
	u, err := scanUser(s.db.QueryRow(`SELECT `+userColumns+` FROM usuario WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fault("find user by id", err)
	}
	return u, nil
}

// List returns all users ordered by creation date.
func (s *UserStore) List() ([]models.User, error) {
	rows, err := s.db.Query(`SELECT ` + userColumns + ` FROM usuario ORDER BY data_cadastro ASC`)
	if err != nil {
		return nil, fault("list users", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fault("scan user", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fault("list users", err)
	}
	return users, nil
}

// Create inserts a new user with a bcrypt-hashed password.
func (s *UserStore) Create(name, email, password string, role models.Role) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fault("hash password", err)
	}

	u, err := scanUser(s.db.QueryRow(`
		INSERT INTO usuario (nome, email, senha_hash, perfil)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		name, email, string(hash), role,
	))
	if err != nil {
		return nil, fault("create user", err)
	}
	return u, nil
}

// CheckPassword verifies a plaintext password against the user's stored hash.
func (s *UserStore) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// SetTOTPSecret saves the TOTP secret for a user (during 2FA setup).
func (s *UserStore) SetTOTPSecret(userID int64, secret string) error {
	_, err := s.db.Exec(`
		UPDATE usuario SET totp_secret = $1, data_atualizacao = NOW() WHERE id = $2
	`, secret, userID)
	if err != nil {
		return fault("set totp secret", err)
	}
	return nil
}

// EnableTOTP marks 2FA as active for a user (after successful code verification).
func (s *UserStore) EnableTOTP(userID int64) error {
	_, err := s.db.Exec(`
		UPDATE usuario SET totp_habilitado = TRUE, data_atualizacao = NOW() WHERE id = $1
	`, userID)
	if err != nil {
		return fault("enable totp", err)
	}
	return nil
}

// ResetTOTP clears the TOTP secret and disables 2FA for a user. The user
// will be forced to set up 2FA again on their next login.
func (s *UserStore) ResetTOTP(userID int64) error {
	_, err := s.db.Exec(`
		UPDATE usuario SET totp_secret = NULL, totp_habilitado = FALSE, data_atualizacao = NOW() WHERE id = $1
	`, userID)
	if err != nil {
		return fault("reset totp", err)
	}
	return nil
}
