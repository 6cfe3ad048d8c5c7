// Package service implements the claims.v1 Connect services over a
// storage.Store.
package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"
	"github.com/rotisserie/eris"

	"github.com/mmynk/claimtrack/internal/middleware"
	"github.com/mmynk/claimtrack/internal/storage"
)

// ErrInvalidTransition is returned when a requested stage change is not in
// the lifecycle table. Persisted state is left unchanged.
var ErrInvalidTransition = eris.New("invalid stage transition")

var errUnauthenticated = errors.New("caller has no organization")

// caller returns the authenticated user and organization from ctx.
func caller(ctx context.Context) (userID, orgID string, err error) {
	orgID = middleware.GetOrgID(ctx)
	if orgID == "" {
		return "", "", connect.NewError(connect.CodeUnauthenticated, errUnauthenticated)
	}
	return middleware.GetUserID(ctx), orgID, nil
}

// toConnectError maps storage errors to Connect codes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrStageConflict):
		return connect.NewError(connect.CodeAborted, err)
	case errors.Is(err, ErrInvalidTransition):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func invalidArgument(err error) error {
	return connect.NewError(connect.CodeInvalidArgument, err)
}
