package database

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gocql/gocql"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"

	"shop_backoffice/internal/config"
)

// --- ScyllaDB configuration ---
type ScyllaKeyspaceConfig struct {
	Hosts       []string
	Keyspace    string
	Username    string
	Password    string
	SSLEnabled  bool
	CACertPath  string
	Timeout     time.Duration
	NumConns    int
	Consistency gocql.Consistency
}

// ScyllaManager hands out one session per keyspace and recreates dead ones.
type ScyllaManager struct {
	sessions map[string]*gocql.Session // keyspace → session
	configs  map[string]ScyllaKeyspaceConfig
	cfg      config.Scylla
	mu       sync.Mutex
}

// =============================================
// SCYLLA DB (one keyspace per domain, SSL and roles)
// =============================================

// InitScylla opens a session for the catalog, users and orders keyspaces.
func InitScylla(cfg config.Scylla) (*ScyllaManager, error) {
	if len(cfg.Hosts) == 0 {
		return nil, fmt.Errorf("SCYLLA_HOSTS is not set")
	}
	sm := &ScyllaManager{
		sessions: make(map[string]*gocql.Session),
		configs:  keyspaceConfigs(cfg),
		cfg:      cfg,
	}

	for keyspace := range sm.configs {
		if _, err := sm.GetSession(keyspace); err != nil {
			return nil, fmt.Errorf("init keyspace %s: %w", keyspace, err)
		}
	}

	// Tables are created by scripts/scylladb_init.cql, not at startup.
	return sm, nil
}

func keyspaceConfigs(cfg config.Scylla) map[string]ScyllaKeyspaceConfig {
	configs := make(map[string]ScyllaKeyspaceConfig)
	timeout := 5 * time.Second
	numConns := 20

	for _, ks := range []config.ScyllaKeyspace{cfg.Catalog, cfg.Users, cfg.Orders} {
		if ks.Keyspace == "" {
			continue
		}
		configs[ks.Keyspace] = ScyllaKeyspaceConfig{
			Hosts:       cfg.Hosts,
			Keyspace:    ks.Keyspace,
			Username:    ks.Role,
			Password:    ks.Password,
			SSLEnabled:  cfg.SSLEnabled,
			CACertPath:  cfg.CACertPath,
			Timeout:     timeout,
			NumConns:    numConns,
			Consistency: gocql.Quorum,
		}
	}
	return configs
}

func createScyllaCluster(cfg ScyllaKeyspaceConfig) *gocql.ClusterConfig {
	cluster := gocql.NewCluster(cfg.Hosts...)
	cluster.Keyspace = cfg.Keyspace
	cluster.Consistency = cfg.Consistency
	cluster.Timeout = cfg.Timeout
	cluster.NumConns = cfg.NumConns

	cluster.MaxWaitSchemaAgreement = 30 * time.Second
	cluster.ReconnectInterval = 1 * time.Second
	if cfg.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: cfg.Username,
			Password: cfg.Password,
		}
	}

	if cfg.SSLEnabled {
		cluster.SslOpts = &gocql.SslOptions{
			CaPath:                 cfg.CACertPath,
			EnableHostVerification: cfg.CACertPath != "",
		}
	}

	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())
	return cluster
}

// GetSession returns the live session for keyspace, reconnecting if needed.
func (sm *ScyllaManager) GetSession(keyspace string) (*gocql.Session, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	cfg, exists := sm.configs[keyspace]
	if !exists {
		return nil, fmt.Errorf("keyspace '%s' is not configured", keyspace)
	}

	if session, exists := sm.sessions[keyspace]; exists {
		if err := session.Query("SELECT now() FROM system.local").Exec(); err == nil {
			return session, nil
		}
		session.Close()
	}

	session, err := createScyllaCluster(cfg).CreateSession()
	if err != nil {
		return nil, fmt.Errorf("create session for %s: %w", keyspace, err)
	}

	sm.sessions[keyspace] = session
	log.Printf("✅ ScyllaDB session opened for keyspace '%s' (role: %s)", keyspace, cfg.Username)
	return session, nil
}

// Sessions returns the catalog, users and orders sessions in that order.
func (sm *ScyllaManager) Sessions() (catalog, users, orders *gocql.Session, err error) {
	if catalog, err = sm.GetSession(sm.cfg.Catalog.Keyspace); err != nil {
		return
	}
	if users, err = sm.GetSession(sm.cfg.Users.Keyspace); err != nil {
		return
	}
	orders, err = sm.GetSession(sm.cfg.Orders.Keyspace)
	return
}

func (sm *ScyllaManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	for keyspace, session := range sm.sessions {
		session.Close()
		log.Printf("🔌 ScyllaDB session closed for keyspace '%s'", keyspace)
	}
}

// =============================================
// REDIS
// =============================================

// ConnectRedis returns nil without error when no host is configured.
func ConnectRedis(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	if cfg.Host == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Host,
		Password:     cfg.Password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	log.Println("✅ Connected to Redis")
	return client, nil
}

// =============================================
// ELASTICSEARCH
// =============================================

// ConnectElastic returns nil without error when no URL is configured.
func ConnectElastic(cfg config.Elastic) (*elasticsearch.Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.User,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch info: %s", res.Status())
	}

	log.Println("✅ Connected to Elasticsearch")
	return client, nil
}

// =============================================
// MINIO
// =============================================

// ConnectMinIO creates the bucket when missing. Returns nil without error
// when no endpoint is configured.
func ConnectMinIO(ctx context.Context, cfg config.MinIO) (*minio.Client, error) {
	if cfg.Endpoint == "" {
		return nil, nil
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
		log.Println("🪣 Bucket created:", cfg.Bucket)
	} else {
		log.Println("🪣 MinIO bucket already present:", cfg.Bucket)
	}

	log.Println("✅ Connected to MinIO:", cfg.Endpoint)
	return client, nil
}
