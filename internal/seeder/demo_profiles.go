package seeder

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"fate-inyeon/internal/domain/account"
	ucauth "fate-inyeon/internal/usecase/auth"
	ucprofile "fate-inyeon/internal/usecase/profile"
)

const demoPassword = "fate-inyeon-demo"

type DemoPerson struct {
	Email   string
	Profile ucprofile.CreateInput
	// Likes lists the emails of other demo people this person already liked.
	Likes []string
}

func DemoPeople() []DemoPerson {
	return []DemoPerson{
		{
			Email: "yuna@demo.fate-inyeon.dev",
			Profile: ucprofile.CreateInput{
				Name: "Yuna", Birthday: "1996-04-12", Gender: "Female", Location: "Seoul",
				Bio:         "Film photography and late night ramyeon.",
				Preferences: ucprofile.PreferencesInput{Gender: "Male", AgeRange: [2]int{26, 35}},
			},
		},
		{
			Email: "minho@demo.fate-inyeon.dev",
			Profile: ucprofile.CreateInput{
				Name: "Minho", Birthday: "1994-09-03", Gender: "Male", Location: "Seoul",
				Bio:         "Weekend hiker, weekday backend engineer.",
				Preferences: ucprofile.PreferencesInput{Gender: "Female", AgeRange: [2]int{24, 34}},
			},
			Likes: []string{"yuna@demo.fate-inyeon.dev"},
		},
		{
			Email: "jiwoo@demo.fate-inyeon.dev",
			Profile: ucprofile.CreateInput{
				Name: "Jiwoo", Birthday: "1998-01-27", Gender: "Female", Location: "Busan",
				Bio:         "Looking for someone to share tteokbokki with.",
				Preferences: ucprofile.PreferencesInput{Gender: "Male"},
			},
			Likes: []string{"minho@demo.fate-inyeon.dev"},
		},
		{
			Email: "seojun@demo.fate-inyeon.dev",
			Profile: ucprofile.CreateInput{
				Name: "Seojun", Birthday: "1992-11-15", Gender: "Male", Location: "Incheon",
				Bio:         "Coffee first.",
				Preferences: ucprofile.PreferencesInput{Gender: "Female", AgeRange: [2]int{25, 38}},
			},
		},
	}
}

// DemoProfilesSeeder creates demo accounts with profiles and a few one-sided
// likes so a fresh deployment has something to match against. Re-running it
// leaves existing accounts and profiles untouched.
type DemoProfilesSeeder struct {
	People []DemoPerson
	// Workers bounds how many people are created at once. Zero means 4.
	Workers int
}

func (DemoProfilesSeeder) Name() string { return "demo_profiles" }

func (s DemoProfilesSeeder) Run(ctx context.Context, deps Deps) error {
	workers := s.Workers
	if workers <= 0 {
		workers = 4
	}

	var mu sync.Mutex
	ids := make(map[string]string, len(s.People))
	tasks := make([]task, 0, len(s.People))
	for _, p := range s.People {
		tasks = append(tasks, func(ctx context.Context) error {
			id, err := ensureAccount(ctx, deps, p.Email)
			if err != nil {
				return err
			}
			if _, err := deps.Profile.Create(ctx, id, p.Profile); err != nil && !errors.Is(err, ucprofile.ErrAlreadyExists) {
				return fmt.Errorf("profile %s: %w", p.Email, err)
			}
			mu.Lock()
			ids[p.Email] = id
			mu.Unlock()
			return nil
		})
	}
	if err := newWorkerPool(workers).Run(ctx, tasks); err != nil {
		return err
	}

	for _, p := range s.People {
		for _, email := range p.Likes {
			target, ok := ids[email]
			if !ok {
				return fmt.Errorf("like %s -> %s: unknown demo person", p.Email, email)
			}
			if err := deps.Profiles.Like(ctx, ids[p.Email], target); err != nil {
				return fmt.Errorf("like %s -> %s: %w", p.Email, email, err)
			}
		}
	}
	return nil
}

func ensureAccount(ctx context.Context, deps Deps, email string) (string, error) {
	acc, err := deps.Auth.Register(ctx, ucauth.RegisterInput{Email: email, Password: demoPassword})
	if err == nil {
		return acc.ID, nil
	}
	if !errors.Is(err, ucauth.ErrEmailAlreadyRegistered) {
		return "", fmt.Errorf("account %s: %w", email, err)
	}

	existing, err := deps.Accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return "", fmt.Errorf("account %s vanished during seeding", email)
		}
		return "", fmt.Errorf("account %s: %w", email, err)
	}
	return existing.ID, nil
}
