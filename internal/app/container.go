package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"fate-inyeon/internal/config"
	"fate-inyeon/internal/database"
	"fate-inyeon/internal/database/migration"
	dbpostgres "fate-inyeon/internal/database/postgres"
	"fate-inyeon/internal/domain/account"
	"fate-inyeon/internal/domain/match"
	"fate-inyeon/internal/domain/profile"
	"fate-inyeon/internal/infrastructure/lock"
	"fate-inyeon/internal/infrastructure/persistence/memory"
	"fate-inyeon/internal/infrastructure/persistence/mongodb"
	"fate-inyeon/internal/infrastructure/persistence/postgres"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Container owns every long-lived dependency of the process.
type Container struct {
	Config config.Config
	Logger *log.Logger

	Accounts account.Repository
	Profiles profile.Repository
	Matches  match.Repository

	Redis *lock.Redis

	// Checks are the liveness probes served on /health.
	Checks map[string]func(ctx context.Context) error

	closers []func() error
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags|log.LUTC)

	c := &Container{
		Config: cfg,
		Logger: logger,
		Checks: map[string]func(ctx context.Context) error{},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch cfg.Store.Driver {
	case config.DriverMongo:
		err = c.openMongo(ctx)
	case config.DriverPostgres:
		err = c.openPostgres(ctx)
	case config.DriverMemory:
		c.openMemory()
	default:
		err = fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Redis = lock.NewRedis(cfg.Redis, logger)
	c.closers = append(c.closers, c.Redis.Close)
	if c.Redis.Available() {
		c.Checks["redis"] = c.Redis.Ping
	}

	logger.Printf("[App] store ready driver=%s pair_lock=%s", cfg.Store.Driver, pairLockMode(c.Redis))
	return c, nil
}

func (c *Container) openMongo(ctx context.Context) error {
	client, db, err := mongodb.Connect(ctx, c.Config.Mongo, c.Logger)
	if err != nil {
		return err
	}
	c.closers = append(c.closers, func() error { return mongodb.Disconnect(client) })

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure mongo indexes: %w", err)
	}

	c.Accounts = mongodb.NewAccountRepository(db)
	c.Profiles = mongodb.NewProfileRepository(db)
	c.Matches = mongodb.NewMatchRepository(db)
	c.Checks["mongo"] = func(ctx context.Context) error { return pingMongo(ctx, client) }
	return nil
}

func (c *Container) openPostgres(ctx context.Context) error {
	db, err := dbpostgres.Connect(ctx, c.Config.Database, c.Logger)
	if err != nil {
		return err
	}
	c.closers = append(c.closers, db.Close)

	r := migration.Runner{Dir: c.Config.Database.MigrationsDir, Logger: c.Logger}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	c.usePostgres(db)
	return nil
}

func (c *Container) usePostgres(db database.DB) {
	c.Accounts = postgres.NewAccountRepository(db)
	c.Profiles = postgres.NewProfileRepository(db)
	c.Matches = postgres.NewMatchRepository(db)
	c.Checks["postgres"] = db.Ping
}

func (c *Container) openMemory() {
	c.Accounts = memory.NewAccountRepository()
	c.Profiles = memory.NewProfileRepository()
	c.Matches = memory.NewMatchRepository()
	c.Logger.Printf("[App] memory store in use, data is lost on restart")
}

// Close releases dependencies in reverse order of acquisition.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

func pingMongo(ctx context.Context, client *mongo.Client) error {
	return client.Ping(ctx, readpref.Primary())
}

func pairLockMode(r *lock.Redis) string {
	if r.Available() {
		return "redis"
	}
	return "local"
}
