// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/abcwallet/abc-core/internal/login"
)

// PinPackageRepository persists the legacy v1 PIN packages, keyed purely by
// their caller-chosen pin_auth_id — unlike every other credential, a v1 PIN
// package has no link back to an accounts row: the id itself, derived
// client-side from lpin1, is what authorizes access to it.
type PinPackageRepository interface {
	Upsert(ctx context.Context, pinAuthID string, pkg login.PinPackage) error
	Fetch(ctx context.Context, pinAuthID string) (login.PinPackage, error)
}

type pinPackageRepository struct {
	db *DB
}

// NewPinPackageRepository constructs a [PinPackageRepository] backed by db.
func NewPinPackageRepository(db *DB) PinPackageRepository {
	return &pinPackageRepository{db: db}
}

func (r *pinPackageRepository) Upsert(ctx context.Context, pinAuthID string, pkg login.PinPackage) error {
	payload, err := json.Marshal(pkg)
	if err != nil {
		return fmt.Errorf("%w: encoding pin package: %v", ErrBuildingSQLQuery, err)
	}

	if _, fetchErr := r.Fetch(ctx, pinAuthID); fetchErr == nil {
		query, args, buildErr := r.db.builder.Update("pin_packages").
			Set("payload", payload).
			Set("expires_at", pkg.Expires).
			Where(sq.Eq{"pin_auth_id": pinAuthID}).
			ToSql()
		if buildErr != nil {
			return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, buildErr)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %v", ErrExecutingStatement, err)
		}
		return nil
	}

	query, args, err := r.db.builder.Insert("pin_packages").
		Columns("pin_auth_id", "payload", "expires_at").
		Values(pinAuthID, payload, pkg.Expires).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %v", ErrExecutingStatement, err)
	}
	return nil
}

func (r *pinPackageRepository) Fetch(ctx context.Context, pinAuthID string) (login.PinPackage, error) {
	query, args, err := r.db.builder.Select("payload").
		From("pin_packages").
		Where(sq.Eq{"pin_auth_id": pinAuthID}).
		ToSql()
	if err != nil {
		return login.PinPackage{}, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var payload []byte
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return login.PinPackage{}, ErrAccountNotFound
		}
		return login.PinPackage{}, fmt.Errorf("%w: %v", ErrScanningRow, err)
	}

	var pkg login.PinPackage
	if err := json.Unmarshal(payload, &pkg); err != nil {
		return login.PinPackage{}, fmt.Errorf("%w: decoding pin package: %v", ErrScanningRow, err)
	}
	return pkg, nil
}
