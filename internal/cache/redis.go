package cache

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of the go-redis API the store needs; tests
// provide a fake.
type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisStore keeps entries in Redis with the TTL applied on write, so
// expiry is enforced server-side and keys are bounded in practice.
type RedisStore struct {
	client RedisClient
	ttl    time.Duration
}

func NewRedisStore(client RedisClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, key string) (Entry, bool) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return Entry{}, false
	}
	if err != nil {
		log.Printf("redis cache read error for %s: %v", key, err)
		return Entry{}, false
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		log.Printf("redis cache decode error for %s: %v", key, err)
		return Entry{}, false
	}
	return entry, true
}

func (s *RedisStore) Put(ctx context.Context, key string, entry Entry) {
	data, err := json.Marshal(entry)
	if err != nil {
		log.Printf("redis cache encode error for %s: %v", key, err)
		return
	}
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		log.Printf("redis cache write error for %s: %v", key, err)
	}
}

var _ Store = (*RedisStore)(nil)

var (
	newRedisClient = func(opts *redis.Options) *redis.Client {
		return redis.NewClient(opts)
	}
	pingRedis = func(ctx context.Context, client *redis.Client) error {
		return client.Ping(ctx).Err()
	}
	parseRedisURL = redis.ParseURL
)

// ConnectRedis dials the given address (plain host:port or redis:// URL)
// and returns a client, or nil if the address is empty or unreachable. The
// caller falls back to the in-memory store on nil.
func ConnectRedis(ctx context.Context, addr string) *redis.Client {
	if addr == "" {
		return nil
	}

	opts := &redis.Options{Addr: addr}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := parseRedisURL(addr)
		if err != nil {
			log.Printf("failed to parse REDIS_URL: %v", err)
			return nil
		}
		opts = parsed
	}

	client := newRedisClient(opts)
	if err := pingRedis(ctx, client); err != nil {
		log.Printf("failed to connect to Redis at %s: %v", addr, err)
		return nil
	}
	log.Println("Connected to Redis")
	return client
}
