package daemon

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/rbac-console/rbac-console/internal/auth"
	"github.com/rbac-console/rbac-console/internal/config"
	"github.com/rbac-console/rbac-console/internal/db/models"
	"github.com/rbac-console/rbac-console/internal/directory"
	"github.com/rbac-console/rbac-console/internal/uniuri"
)

const seedRoleDescription = "bootstrap administrator role"

// seed creates the bootstrap admin when no user exists yet.
func seed(ctx context.Context, cfg config.Seed, provider *auth.LocalProvider, dir *directory.Service) error {
	if cfg.AdminEmail == "" {
		return nil
	}

	count, err := provider.CountUsers(ctx)
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	password := cfg.AdminPassword
	if password == "" {
		if password, err = uniuri.New(); err != nil {
			return err
		}

		log.Warn().
			Str("email", cfg.AdminEmail).
			Str("password", password).
			Msg("created bootstrap admin with a generated password, change it")
	}

	user, err := provider.Signup(ctx, cfg.AdminEmail, password)
	if err != nil {
		return err
	}

	log.Info().Str("email", user.Email).Msg("bootstrap admin created")

	if cfg.AdminRole == "" {
		return nil
	}

	role, err := seedRole(ctx, dir, cfg.AdminRole)
	if err != nil {
		return err
	}

	return dir.AssignRolesToUser(ctx, user.ID, []string{role.ID})
}

func seedRole(ctx context.Context, dir *directory.Service, name string) (*models.Role, error) {
	description := seedRoleDescription

	role, err := dir.CreateRole(ctx, name, &description)
	if !errors.Is(err, directory.ErrRoleExists) {
		return role, err
	}

	roles, err := dir.ListRoles(ctx)
	if err != nil {
		return nil, err
	}

	for i := range roles {
		if roles[i].Name == name {
			return &roles[i], nil
		}
	}

	return nil, directory.ErrRoleNotFound
}
