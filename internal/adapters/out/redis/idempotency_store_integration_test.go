package redis_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"storefront/internal/adapters/out/redis"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type IdempotencyStoreTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *goredis.Client
}

func (suite *IdempotencyStoreTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	endpoint, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)

	client, err := redis.NewClient(ctx, endpoint, "", 0)
	suite.Require().NoError(err)
	suite.client = client
}

func (suite *IdempotencyStoreTestSuite) TearDownSuite() {
	if suite.client != nil {
		_ = suite.client.Close()
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *IdempotencyStoreTestSuite) SetupTest() {
	suite.Require().NoError(suite.client.FlushDB(context.Background()).Err())
}

func (suite *IdempotencyStoreTestSuite) TestClaim_SecondClaimFails() {
	ctx := context.Background()
	store := redis.NewIdempotencyStore(suite.client, "", 0)

	first, err := store.Claim(ctx, "checkout-1")
	suite.Require().NoError(err)
	suite.True(first)

	second, err := store.Claim(ctx, "checkout-1")
	suite.Require().NoError(err)
	suite.False(second)

	ttl, err := suite.client.TTL(ctx, redis.DefaultKeyPrefix+"checkout-1").Result()
	suite.Require().NoError(err)
	suite.Greater(ttl, 23*time.Hour)
}

func (suite *IdempotencyStoreTestSuite) TestRelease_AllowsReclaim() {
	ctx := context.Background()
	store := redis.NewIdempotencyStore(suite.client, "test:", time.Minute)

	claimed, err := store.Claim(ctx, "checkout-2")
	suite.Require().NoError(err)
	suite.True(claimed)

	suite.Require().NoError(store.Release(ctx, "checkout-2"))

	claimed, err = store.Claim(ctx, "checkout-2")
	suite.Require().NoError(err)
	suite.True(claimed)
}

func (suite *IdempotencyStoreTestSuite) TestClaim_ConcurrentClaimsHaveOneWinner() {
	ctx := context.Background()
	store := redis.NewIdempotencyStore(suite.client, "", time.Minute)

	var winners atomic.Int32
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.Claim(ctx, "checkout-3")
			if err == nil && ok {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	suite.Equal(int32(1), winners.Load())
}

func (suite *IdempotencyStoreTestSuite) TestClaim_ClosedClient_ReturnsError() {
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"})
	store := redis.NewIdempotencyStore(client, "", time.Minute)

	_, err := store.Claim(context.Background(), "checkout-4")

	suite.Require().Error(err)
	suite.Contains(err.Error(), "claim idempotency key")
}

func TestIdempotencyStoreTestSuite(t *testing.T) {
	suite.Run(t, new(IdempotencyStoreTestSuite))
}
