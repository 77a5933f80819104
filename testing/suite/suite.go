package suite

import (
	"context"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe/internal/repository/storage"
)

const (
	redisRepository = "redis"
	redisTag        = "alpine"
	redisPort       = "6379/tcp"

	// docker kills the container after this many seconds even if cleanup never runs
	containerLifetime = 120
	connectTimeout    = 60 * time.Second
)

// Redis starts a throwaway Redis container and returns a connected client.
// The test is skipped when no Docker daemon answers.
func Redis(t *testing.T) (context.Context, *redis.Client) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker is not reachable: %v", err)
	}
	pool.MaxWait = connectTimeout

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisRepository,
		Tag:        redisTag,
	}, func(host *docker.HostConfig) {
		host.AutoRemove = true
		host.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start redis container: %v", err)
	}
	_ = resource.Expire(containerLifetime)

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Errorf("could not purge redis container: %v", err)
		}
	})

	ctx := context.Background()
	addr := resource.GetHostPort(redisPort)

	var client *redis.Client
	if err = pool.Retry(func() error {
		var connErr error
		client, connErr = storage.New(ctx, addr)
		return connErr
	}); err != nil {
		t.Fatalf("could not connect to redis at %s: %v", addr, err)
	}

	t.Cleanup(func() {
		_ = client.Close()
	})

	return ctx, client
}
