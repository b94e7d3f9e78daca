package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/vncsmyrnk/digimarket/internal/core/domain"
)

func TestAuthorize(t *testing.T) {
	owner := uuid.New()

	tests := []struct {
		name  string
		actor domain.Identity
		want  error
	}{
		{name: "owner", actor: domain.Identity{UserID: owner, Role: domain.RoleUser}},
		{name: "admin", actor: domain.Identity{UserID: uuid.New(), Role: domain.RoleAdmin}},
		{name: "other user", actor: domain.Identity{UserID: uuid.New(), Role: domain.RoleUser}, want: domain.ErrUnauthorized},
		{name: "anonymous", actor: domain.Identity{}, want: domain.ErrAuthenticationRequired},
		{name: "anonymous admin claim", actor: domain.Identity{Role: domain.RoleAdmin}, want: domain.ErrAuthenticationRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authorize(tt.actor, owner)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
