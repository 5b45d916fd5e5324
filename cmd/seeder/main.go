package main

import (
	"context"
	"flag"
	"log"
	"time"

	"fate-inyeon/internal/app"
	"fate-inyeon/internal/config"
	"fate-inyeon/internal/seeder"
	ucauth "fate-inyeon/internal/usecase/auth"
	ucprofile "fate-inyeon/internal/usecase/profile"
)

func main() {
	timeout := flag.Duration("timeout", time.Minute, "overall seeding timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Store.Driver == config.DriverMemory {
		log.Fatalf("seeding the memory store has no lasting effect; set DB_DRIVER to mongo or postgres")
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	r := seeder.Runner{Seeders: seeder.Defaults(), Logger: c.Logger}
	deps := seeder.Deps{
		Accounts: c.Accounts,
		Profiles: c.Profiles,
		Auth:     ucauth.NewService(c.Accounts),
		Profile:  ucprofile.NewService(c.Profiles),
	}
	if err := r.Run(ctx, deps); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Printf("seeding completed driver=%s", cfg.Store.Driver)
}
