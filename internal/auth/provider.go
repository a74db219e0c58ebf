package auth

import (
	"context"

	"github.com/Kadhiravan2002/AuraX/internal"
)

type Provider interface {
	ValidateTokenLocal(token string) (*internal.User, error)
	ValidateTokenRemote(ctx context.Context, token string) (*internal.User, error)
}
