package containers

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

const image = "redis:7.4-alpine"

type RedisContainer struct {
	container *tcredis.RedisContainer
}

// NewRedisContainer starts a throwaway redis server. It returns an error rather
// than exiting so that callers can skip when no container runtime is available.
func NewRedisContainer(ctx context.Context) (c *RedisContainer, err error) {
	// testcontainers panics instead of returning an error on some hosts without docker.
	defer func() {
		if r := recover(); r != nil {
			c = nil
			err = fmt.Errorf("error starting redis container: %v", r)
		}
	}()

	container, err := tcredis.Run(ctx, image,
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, fmt.Errorf("error starting redis container: %w", err)
	}

	return &RedisContainer{container: container}, nil
}

func (c *RedisContainer) Shutdown(ctx context.Context) error {
	return c.container.Terminate(ctx)
}

func (c *RedisContainer) ConnectionString(ctx context.Context) (string, error) {
	return c.container.ConnectionString(ctx)
}
