package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrNotConnected indicates the database was requested before Connect
// completed or after Close.
var ErrNotConnected = errors.New("mongodb: not connected")

// Options controls client pool and connectivity behavior.
type Options struct {
	MaxPoolSize    uint64
	ConnectTimeout time.Duration
	PingTimeout    time.Duration
}

// DefaultServerOptions returns defaults for long-running server processes.
func DefaultServerOptions() Options {
	return Options{
		MaxPoolSize:    100,
		ConnectTimeout: 10 * time.Second,
		PingTimeout:    5 * time.Second,
	}
}

// OptionsFromEnv overrides defaults with MONGO_* env vars if present.
func OptionsFromEnv(defaults Options) Options {
	opts := defaults
	if v, ok := readEnvUint("MONGO_MAX_POOL_SIZE"); ok {
		opts.MaxPoolSize = v
	}
	if v, ok := readEnvDuration("MONGO_CONNECT_TIMEOUT"); ok {
		opts.ConnectTimeout = v
	}
	if v, ok := readEnvDuration("MONGO_PING_TIMEOUT"); ok {
		opts.PingTimeout = v
	}
	return opts
}

// Client owns the Mongo client lifecycle for the life of the process.
// It is constructed once at startup and closed once at shutdown; handlers
// receive it (or the repositories built on it) by injection.
type Client struct {
	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes a client connection, verifies it with a ping, and
// selects the named database. On failure the caller must not serve requests.
func Connect(ctx context.Context, uri, dbName string, opts Options) (*Client, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, fmt.Errorf("MONGODB_URI is empty")
	}
	if strings.TrimSpace(dbName) == "" {
		return nil, fmt.Errorf("MONGODB_DB is empty")
	}

	clientOpts := options.Client().ApplyURI(uri)
	if opts.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(opts.MaxPoolSize)
	}
	if opts.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(opts.ConnectTimeout)
	}

	mc, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	pingTimeout := opts.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := mc.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = mc.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	log.Printf("mongodb connected: db=%s", dbName)
	return &Client{client: mc, db: mc.Database(dbName)}, nil
}

// Database returns the selected database handle. It fails loudly when the
// client is absent or already closed instead of handing out a nil handle.
func (c *Client) Database() (*mongo.Database, error) {
	if c == nil {
		return nil, ErrNotConnected
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil, ErrNotConnected
	}
	return c.db, nil
}

// Close releases the client connection. It is safe to call more than once.
func (c *Client) Close(ctx context.Context) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	mc := c.client
	c.client = nil
	c.db = nil
	c.mu.Unlock()
	if mc == nil {
		return nil
	}
	if err := mc.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongodb: %w", err)
	}
	log.Printf("mongodb connection closed")
	return nil
}

func readEnvUint(key string) (uint64, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false
	}
	val, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		log.Printf("mongodb env %s invalid uint: %v", key, err)
		return 0, false
	}
	return val, true
}

func readEnvDuration(key string) (time.Duration, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("mongodb env %s invalid duration: %v", key, err)
		return 0, false
	}
	return val, true
}
