package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Load reads .env into the process environment when the file exists.
func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  No .env file found, using the process environment")
	} else {
		log.Println("✅ .env loaded")
	}
}

// ScyllaKeyspace is one keyspace and the role used to reach it.
type ScyllaKeyspace struct {
	Keyspace string
	Role     string
	Password string
}

type Scylla struct {
	Hosts      []string
	SSLEnabled bool
	CACertPath string
	Catalog    ScyllaKeyspace
	Users      ScyllaKeyspace
	Orders     ScyllaKeyspace
}

type Redis struct {
	Host     string
	Password string
}

type Elastic struct {
	URL      string
	User     string
	Password string
}

type MinIO struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// API configures cmd/server.
type API struct {
	Port             string
	Store            string // "scylla" or "memory"
	SeedFile         string
	CORSOrigins      []string
	ServiceJWTSecret string

	Scylla  Scylla
	Redis   Redis
	Elastic Elastic
	MinIO   MinIO
	SMTP    SMTP
}

// Console configures cmd/console.
type Console struct {
	Port             string
	APIBaseURL       string
	AdminUsername    string
	AdminPassword    string
	SessionSecret    string
	SecureCookie     bool
	ServiceJWTSecret string
	Redis            Redis
}

func LoadAPI() API {
	return API{
		Port:             getenv("PORT", "8080"),
		Store:            strings.ToLower(getenv("STORE", "memory")),
		SeedFile:         os.Getenv("SEED_FILE"),
		CORSOrigins:      splitList(getenv("CORS_ORIGINS", "http://localhost:8081")),
		ServiceJWTSecret: os.Getenv("SERVICE_JWT_SECRET"),
		Scylla: Scylla{
			Hosts:      splitList(os.Getenv("SCYLLA_HOSTS")),
			SSLEnabled: strings.ToLower(os.Getenv("SCYLLA_SSL_ENABLED")) == "true",
			CACertPath: os.Getenv("SCYLLA_SSL_CA_PATH"),
			Catalog:    keyspace("CATALOG", "catalog"),
			Users:      keyspace("USERS", "users"),
			Orders:     keyspace("ORDERS", "orders"),
		},
		Redis: loadRedis(),
		Elastic: Elastic{
			URL:      os.Getenv("ELASTIC_URL"),
			User:     os.Getenv("ELASTIC_USER"),
			Password: os.Getenv("ELASTIC_PASSWORD"),
		},
		MinIO: MinIO{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    getenv("MINIO_BUCKET", "product-images"),
			UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		},
		SMTP: SMTP{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getint("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
	}
}

func LoadConsole() Console {
	return Console{
		Port:             getenv("CONSOLE_PORT", "8081"),
		APIBaseURL:       strings.TrimRight(getenv("API_BASE_URL", "http://localhost:8080"), "/"),
		AdminUsername:    getenv("CONSOLE_ADMIN_USERNAME", "Admin"),
		AdminPassword:    getenv("CONSOLE_ADMIN_PASSWORD", "admin123"),
		SessionSecret:    getenv("SESSION_SECRET", "change-me-console-session-secret"),
		SecureCookie:     strings.ToLower(os.Getenv("SESSION_SECURE_COOKIE")) == "true",
		ServiceJWTSecret: os.Getenv("SERVICE_JWT_SECRET"),
		Redis:            loadRedis(),
	}
}

func loadRedis() Redis {
	return Redis{
		Host:     os.Getenv("REDIS_HOST"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}
}

func keyspace(name, fallback string) ScyllaKeyspace {
	prefix := "SCYLLA_KS_" + name + "_"
	return ScyllaKeyspace{
		Keyspace: getenv(prefix+"KEYSPACE", fallback),
		Role:     os.Getenv(prefix + "ROLE"),
		Password: os.Getenv(prefix + "PASSWORD"),
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ %s=%q is not a number, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
