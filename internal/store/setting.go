// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"time"
)

// SettingStore manages runtime configuration in the configuracao table.
// The rate limiters read their thresholds through it on every check, so
// operators can retune limits without a restart.
type SettingStore struct {
	db *sql.DB
}

// NewSettingStore returns a new SettingStore backed by the given database.
func NewSettingStore(db *sql.DB) *SettingStore {
	return &SettingStore{db: db}
}

// Get returns a single setting by key, or the fallback if the key is
// missing, empty, or unreadable.
func (s *SettingStore) Get(key, fallback string) (string, error) {
	var val string
	err := s.db.QueryRow(`SELECT valor FROM configuracao WHERE chave = $1`, key).Scan(&val)
	if err == sql.ErrNoRows {
		return fallback, nil
	}
	if err != nil {
		return fallback, fault("get setting", err)
	}
	if val == "" {
		return fallback, nil
	}
	return val, nil
}

// Set upserts a single setting.
func (s *SettingStore) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO configuracao (chave, valor, data_atualizacao)
		VALUES ($1, $2, $3)
		ON CONFLICT (chave)
		DO UPDATE SET valor = EXCLUDED.valor, data_atualizacao = EXCLUDED.data_atualizacao`,
		key, value, time.Now(),
	)
	if err != nil {
		return fault("set setting", err)
	}
	return nil
}

// All returns every setting as a key→value map.
func (s *SettingStore) All() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT chave, valor FROM configuracao ORDER BY chave`)
	if err != nil {
		return nil, fault("list settings", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fault("scan setting", err)
		}
		settings[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fault("list settings", err)
	}
	return settings, nil
}
