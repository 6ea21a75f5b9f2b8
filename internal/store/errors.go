// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access for all letterpress entities.
// Each store struct wraps a *sql.DB and exposes typed query methods.
//
// Absence is not an error: lookups return (nil, nil) when no row matches.
// Driver faults are classified into coarse sentinels so that callers who
// care can errors.Is against them; the service layer logs the full error
// and presents only a failed/empty result to its own callers.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrConstraint marks integrity violations (SQLSTATE class 23).
	ErrConstraint = errors.New("constraint violated")

	// ErrUnavailable marks connectivity and every other driver fault.
	ErrUnavailable = errors.New("storage unavailable")
)

// fault wraps a driver error with its classification. The op prefix names
// the failed statement, e.g. "insert article".
func fault(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, classify(err), err)
}

// classify maps a driver error onto one of the coarse sentinels.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return ErrConstraint
	}
	return ErrUnavailable
}
