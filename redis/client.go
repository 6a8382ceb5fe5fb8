package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/bsm/redislock"
	"github.com/go-redis/redis/v8"
	"github.com/kelseyhightower/envconfig"
	"time"
)

type DB int
type ReleaseLock func() error

type Client struct {
	client         redis.UniversalClient
	lockExpiration time.Duration
	lockRetries    int
}

var ctx = context.Background()

type Config struct {
	LockExpirationSeconds   int     `envconfig:"DUYGU_REDIS_LOCK_EXPIRATION" default:"3"`
	LockRetries             int     `envconfig:"DUYGU_REDIS_LOCK_RETRIES" default:"20"`
	Host                    string  `envconfig:"DUYGU_REDIS_HOST" required:"true"`
	Port                    string  `envconfig:"DUYGU_REDIS_PORT" default:"6379"`
	HASentinelPort          string  `envconfig:"DUYGU_REDIS_HA_SENTINEL_PORT" default:"26379"`
	HASentinelMasterName    string  `envconfig:"DUYGU_REDIS_HA_MASTER_NAME" default:"mymaster"`
	Password                string  `envconfig:"DUYGU_REDIS_AUTH_PASSWORD" default:""`
	AuthRequired            bool    `envconfig:"DUYGU_REDIS_AUTH_REQUIRED" default:"false"`
	HAMode                  bool    `envconfig:"DUYGU_REDIS_HA_MODE" default:"false"`
	HASentinelSocketTimeout float32 `envconfig:"DUYGU_REDIS_SOCKET_TIMEOUT" default:"0.5"`
}

func NewClient(db DB) (Client, error) {
	cfg, err := readEnvironment()
	if err != nil {
		return Client{}, err
	}
	var client redis.UniversalClient
	if cfg.HAMode {
		client = createFailoverClient(cfg, db)
	} else {
		client = createClient(cfg, db)
	}
	return newClient(client, cfg), nil
}

func newClient(client redis.UniversalClient, cfg *Config) Client {
	return Client{
		client:         client,
		lockExpiration: time.Duration(cfg.LockExpirationSeconds) * time.Second,
		lockRetries:    cfg.LockRetries,
	}
}

func createFailoverClient(cfg *Config, db DB) *redis.ClusterClient {
	timeout := time.Duration(float64(cfg.HASentinelSocketTimeout) * float64(time.Second))
	options := redis.FailoverOptions{
		SentinelAddrs: []string{fmt.Sprintf("%s:%s", cfg.Host, cfg.HASentinelPort)},
		ReadTimeout:   timeout,
		WriteTimeout:  timeout,
		MaxRetries:    6,
		DB:            int(db),
		MasterName:    cfg.HASentinelMasterName,
	}
	if cfg.AuthRequired {
		options.Password = cfg.Password
	}
	return redis.NewFailoverClusterClient(&options)
}

func createClient(cfg *Config, db DB) *redis.Client {
	options := redis.Options{
		Addr:       fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		MaxRetries: 6,
		DB:         int(db),
	}
	if cfg.AuthRequired {
		options.Password = cfg.Password
	}
	return redis.NewClient(&options)
}

// Get returns the raw value under key. A missing key is not an error: found is false.
func (client *Client) Get(key string) (value string, found bool, err error) {
	value, err = client.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key. Zero ttl keeps the key forever.
func (client *Client) Set(key string, value string, ttl time.Duration) error {
	return client.client.Set(ctx, key, value, ttl).Err()
}

// GetDoc decodes the JSON document under key into doc.
func (client *Client) GetDoc(key string, doc interface{}) (found bool, err error) {
	value, found, err := client.Get(key)
	if err != nil || !found {
		return found, err
	}
	if err = json.Unmarshal([]byte(value), doc); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (client *Client) SaveDoc(key string, doc interface{}, ttl time.Duration) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return client.Set(key, string(b), ttl)
}

// UpdateDoc reads the document under key into doc while holding the key's lock, calls update and saves doc back.
// A missing document leaves doc untouched, so update starts from its zero value.
func (client *Client) UpdateDoc(key string, doc interface{}, update func()) (err error) {
	releaseLock, err := client.Lock(key)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := releaseLock(); err == nil {
			err = releaseErr
		}
	}()
	if _, err = client.GetDoc(key, doc); err != nil {
		return err
	}
	update()
	return client.SaveDoc(key, doc, 0)
}

func (client *Client) Lock(key string) (ReleaseLock, error) {
	locker := redislock.New(client.client)
	strategy := redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), client.lockRetries)
	lock, err := locker.Obtain(ctx, fmt.Sprintf("lock:%s", key), client.lockExpiration, &redislock.Options{RetryStrategy: strategy})
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", key, err)
	}
	return func() error {
		return lock.Release(ctx)
	}, nil
}

func (client *Client) Close() error {
	return client.client.Close()
}

func readEnvironment() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
