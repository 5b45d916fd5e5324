package seeder

import (
	"context"
	"fmt"
	"log"

	"fate-inyeon/internal/domain/account"
	"fate-inyeon/internal/domain/profile"
	ucauth "fate-inyeon/internal/usecase/auth"
	ucprofile "fate-inyeon/internal/usecase/profile"
)

// Deps are the stores and services a seeder writes through. Seeders go
// through the services so passwords are hashed and profiles normalized the
// same way as over HTTP.
type Deps struct {
	Accounts account.Repository
	Profiles profile.Repository
	Auth     *ucauth.Service
	Profile  *ucprofile.Service
}

type Seeder interface {
	Name() string
	Run(ctx context.Context, deps Deps) error
}

type Runner struct {
	Seeders []Seeder
	Logger  *log.Logger
}

func (r Runner) Run(ctx context.Context, deps Deps) error {
	if deps.Accounts == nil || deps.Profiles == nil || deps.Auth == nil || deps.Profile == nil {
		return fmt.Errorf("seeder deps incomplete")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, deps); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if r.Logger != nil {
			r.Logger.Printf("[Seeder] done name=%s", s.Name())
		}
	}
	return nil
}

func Defaults() []Seeder {
	return []Seeder{DemoProfilesSeeder{People: DemoPeople()}}
}
