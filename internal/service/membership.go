package service

import (
	"context"
	"fmt"

	"github.com/target/serverboard/internal/core"
	domainauth "github.com/target/serverboard/internal/domain/auth"
	apperrors "github.com/target/serverboard/internal/errors"
)

// requireMember returns the context viewer when they belong to serverID.
func requireMember(ctx context.Context, members core.MemberRepository, serverID int64) (string, error) {
	viewer, ok := domainauth.ViewerFromContext(ctx)
	if !ok {
		return "", ErrNoViewer
	}
	isMember, err := members.IsMember(ctx, core.MembershipKey{ServerID: serverID, UserID: viewer})
	if err != nil {
		return "", fmt.Errorf("check membership: %w", err)
	}
	if !isMember {
		return "", apperrors.Forbidden("only server members may change this server")
	}
	return viewer, nil
}
