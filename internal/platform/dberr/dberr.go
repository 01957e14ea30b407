// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/sociallink/internal/platform/apperr"
)

// PostgreSQL SQLSTATE codes the repositories care about.
const (
	codeUniqueViolation     = "23505"
	codeCannotConnectNow    = "57P03"
	codeAdminShutdown       = "57P01"
	codeQueryCanceled       = "57014"
	codeTooManyConnections  = "53300"
	classConnectionException = "08"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// # Parameters
//   - err: The raw error returned by pgx.
//   - resource: Name used in NOT_FOUND and CONFLICT messages (e.g. "Link").
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// Already classified by a lower layer.
	if apperr.IsAppError(err) {
		return err
	}

	// ── 1. Not Found ──
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// ── 2. Server-reported SQLSTATE ──
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch {
		case pgError.Code == codeUniqueViolation:
			return apperr.Conflict(resource + " already exists").WithCause(err)
		case pgError.Code == codeCannotConnectNow,
			pgError.Code == codeAdminShutdown,
			pgError.Code == codeQueryCanceled,
			pgError.Code == codeTooManyConnections,
			len(pgError.Code) == 5 && pgError.Code[:2] == classConnectionException:
			return apperr.DatabaseUnavailable(err)
		}
		return apperr.Internal(err)
	}

	// ── 3. Transport failures ──
	if IsUnavailable(err) {
		return apperr.DatabaseUnavailable(err)
	}

	return apperr.Internal(err)
}

// IsUnavailable reports whether err means the database could not be reached in time.
func IsUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var connectError *pgconn.ConnectError
	if errors.As(err, &connectError) {
		return true
	}

	var netError net.Error
	return errors.As(err, &netError)
}
