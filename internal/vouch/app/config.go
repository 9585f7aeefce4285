package app

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Issuer     string        // JWT issuer claim and TOTP issuer label (default: vouch)
	SessionTTL time.Duration // Session token lifetime (default: 1h)

	DatabaseDriver string // sqlite or postgres (default: sqlite)
	DatabaseFile   string // SQLite database file (default: vouch.db)
	DatabaseURL    string // Postgres DSN, required for the postgres driver

	PepperFile     string // Password hashing pepper (default: pepper)
	MasterKeyPath  string // AES key sealing wallet secrets
	SigningKeyFile string // EdDSA session key; in-memory when empty

	ProvisioningToken string // Enables POST /v1/employers when set

	MintBackend    string        // local or remote (default: local)
	MintEndpoint   string        // Remote issuer base URL
	MintAPIKey     string        // Remote issuer bearer key
	MintTimeout    time.Duration // Deadline per mint call (default: 30s)
	IssuerKey      string        // Base64 ed25519 secret (ISSUER_PRIVATE_KEY)
	IssuerKeyFile  string        // JSON keypair file (default: issuer-keypair.json)
	MetadataStore  string        // memory or s3 (default: memory)
	MetadataImage  string        // Image URL put in token metadata documents
	S3Bucket       string
	S3Region       string
	S3Endpoint     string // MinIO or other S3 compatible endpoint
	S3AccessKey    string
	S3SecretKey    string
	S3PublicURL    string        // Prefix of the metadata URIs written to tokens
	ReconcileEvery time.Duration // Reconciler interval (default: 5m)
	StaleAfter     time.Duration // Age at which an in-flight mint is stale (default: 10m)

	Env                 string        // dev, test, prod (default: dev)
	LogLevel            string        // debug, info, warn, error (default: info)
	LogFormat           string        // json, text (default: json)
	Port                int           // HTTP port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads the environment. A .env file in the working directory
// is loaded first when present; real environment variables win over it.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	cfg := Config{
		Issuer:     getEnvOrDefault("VOUCH_ISSUER", "vouch"),
		SessionTTL: getEnvDurationOrDefault("VOUCH_SESSION_TTL", time.Hour),

		DatabaseDriver: strings.ToLower(getEnvOrDefault("VOUCH_DATABASE_DRIVER", "sqlite")),
		DatabaseFile:   getEnvOrDefault("VOUCH_DATABASE_FILE", "vouch.db"),
		DatabaseURL:    os.Getenv("VOUCH_DATABASE_URL"),

		PepperFile:     getEnvOrDefault("VOUCH_PEPPER_FILE", "pepper"),
		MasterKeyPath:  os.Getenv("VOUCH_MASTER_KEY_PATH"),
		SigningKeyFile: os.Getenv("VOUCH_SIGNING_KEY_FILE"),

		ProvisioningToken: os.Getenv("VOUCH_PROVISIONING_TOKEN"),

		MintBackend:    strings.ToLower(getEnvOrDefault("VOUCH_MINT_BACKEND", "local")),
		MintEndpoint:   os.Getenv("VOUCH_MINT_ENDPOINT"),
		MintAPIKey:     os.Getenv("VOUCH_MINT_API_KEY"),
		MintTimeout:    getEnvDurationOrDefault("VOUCH_MINT_TIMEOUT", 30*time.Second),
		IssuerKey:      os.Getenv("ISSUER_PRIVATE_KEY"),
		IssuerKeyFile:  getEnvOrDefault("VOUCH_ISSUER_KEY_FILE", "issuer-keypair.json"),
		MetadataStore:  strings.ToLower(getEnvOrDefault("VOUCH_METADATA_STORE", "memory")),
		MetadataImage:  os.Getenv("VOUCH_METADATA_IMAGE"),
		S3Bucket:       os.Getenv("VOUCH_S3_BUCKET"),
		S3Region:       getEnvOrDefault("VOUCH_S3_REGION", "us-east-1"),
		S3Endpoint:     os.Getenv("VOUCH_S3_ENDPOINT"),
		S3AccessKey:    os.Getenv("VOUCH_S3_ACCESS_KEY"),
		S3SecretKey:    os.Getenv("VOUCH_S3_SECRET_KEY"),
		S3PublicURL:    os.Getenv("VOUCH_S3_PUBLIC_URL"),
		ReconcileEvery: getEnvDurationOrDefault("VOUCH_RECONCILE_INTERVAL", 5*time.Minute),
		StaleAfter:     getEnvDurationOrDefault("VOUCH_RECONCILE_STALE_AFTER", 10*time.Minute),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg, cfg.Validate()
}

// Validate rejects combinations the application cannot start with.
func (c Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("VOUCH_DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, errors.New("VOUCH_DATABASE_DRIVER must be sqlite or postgres"))
	}

	switch c.MintBackend {
	case "local":
	case "remote":
		if c.MintEndpoint == "" {
			errs = append(errs, errors.New("VOUCH_MINT_ENDPOINT is required for the remote mint backend"))
		}
	default:
		errs = append(errs, errors.New("VOUCH_MINT_BACKEND must be local or remote"))
	}

	switch c.MetadataStore {
	case "memory":
	case "s3":
		if c.S3Bucket == "" {
			errs = append(errs, errors.New("VOUCH_S3_BUCKET is required for the s3 metadata store"))
		}
	default:
		errs = append(errs, errors.New("VOUCH_METADATA_STORE must be memory or s3"))
	}

	return errors.Join(errs...)
}

// IsDev reports whether missing keys may be generated on startup.
func (c Config) IsDev() bool {
	return c.Env == "dev" || c.Env == "test"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
