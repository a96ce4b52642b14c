package suite

import (
	"context"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	containerTTL = 120 // seconds before docker kills a leaked container
	startTimeout = 120 * time.Second
)

var redisContainer = dockertest.RunOptions{
	Repository: "redis",
	Tag:        "alpine",
}

// Suite is a throwaway redis:alpine container and a client connected to it.
type Suite struct {
	*testing.T

	Storage *redis.Client
}

// New starts a fresh redis for one test. The container is purged on cleanup.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	t.Cleanup(cancel)

	pool, resource := startRedis(t)
	client := connect(ctx, t, pool, resource)

	t.Cleanup(func() {
		_ = client.Close()

		if err := pool.Purge(resource); err != nil {
			t.Errorf("could not purge redis container: %v", err)
		}
	})

	return ctx, &Suite{
		T:       t,
		Storage: client,
	}
}

func startRedis(t *testing.T) (*dockertest.Pool, *dockertest.Resource) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("could not connect to docker: %v", err)
	}

	pool.MaxWait = startTimeout

	opts := redisContainer
	resource, err := pool.RunWithOptions(&opts, func(host *docker.HostConfig) {
		host.AutoRemove = true
		host.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start redis container: %v", err)
	}

	_ = resource.Expire(containerTTL)

	return pool, resource
}

// connect retries until redis answers PING, then empties it.
func connect(ctx context.Context, t *testing.T, pool *dockertest.Pool, resource *dockertest.Resource) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: resource.GetHostPort("6379/tcp"),
	})

	if err := pool.Retry(func() error {
		return client.Ping(ctx).Err()
	}); err != nil {
		_ = pool.Purge(resource)
		t.Fatalf("redis never became ready: %v", err)
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush redis: %v", err)
	}

	return client
}
