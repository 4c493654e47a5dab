package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "vendorx"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "VENDORX_DB_DSN"
	EnvDBHost = "VENDORX_DB_HOST"
	EnvDBUser = "VENDORX_DB_USER"
	EnvDBName = "VENDORX_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	OTP           OTPConfig
	SMTP          SMTPConfig
	Groq          GroqConfig
	AzureBlob     AzureBlobConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VENDORX_APP_ENV" required:"true"`
	Port         string `envconfig:"VENDORX_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"VENDORX_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VENDORX_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"VENDORX_DB_DSN"`
	Driver string `envconfig:"VENDORX_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"VENDORX_DB_HOST"`
	LegacyPort     int    `envconfig:"VENDORX_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VENDORX_DB_USER"`
	LegacyPassword string `envconfig:"VENDORX_DB_PASSWORD"`
	LegacyName     string `envconfig:"VENDORX_DB_NAME"`
	LegacySSLMode  string `envconfig:"VENDORX_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VENDORX_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VENDORX_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VENDORX_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VENDORX_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"VENDORX_REDIS_URL"`
	Address      string        `envconfig:"VENDORX_REDIS_ADDR"`
	Password     string        `envconfig:"VENDORX_REDIS_PASSWORD"`
	DB           int           `envconfig:"VENDORX_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VENDORX_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VENDORX_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VENDORX_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VENDORX_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VENDORX_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured at all. The OTP
// store and auth rate limiter fall back to process-local state without it.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"VENDORX_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"VENDORX_JWT_ISSUER" default:"vendorx"`
	ExpirationMinutes int    `envconfig:"VENDORX_JWT_EXPIRATION_MINUTES" default:"60"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"VENDORX_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"VENDORX_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"VENDORX_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"VENDORX_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"VENDORX_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	TokenWindow        time.Duration `envconfig:"VENDORX_AUTH_RATE_LIMIT_TOKEN_WINDOW" default:"1m"`
	TokenUsernameLimit int           `envconfig:"VENDORX_AUTH_RATE_LIMIT_TOKEN_USERNAME_LIMIT" default:"5"`
	TokenIPLimit       int           `envconfig:"VENDORX_AUTH_RATE_LIMIT_TOKEN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"VENDORX_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"VENDORX_AUTO_MIGRATE" default:"false"`
}

type OTPConfig struct {
	TTL        time.Duration `envconfig:"VENDORX_OTP_TTL" default:"4m"`
	CodeLength int           `envconfig:"VENDORX_OTP_CODE_LENGTH" default:"6"`
}

type SMTPConfig struct {
	Host     string `envconfig:"VENDORX_SMTP_HOST"`
	Port     int    `envconfig:"VENDORX_SMTP_PORT" default:"587"`
	Username string `envconfig:"VENDORX_SMTP_USERNAME"`
	Password string `envconfig:"VENDORX_SMTP_PASSWORD"`
	From     string `envconfig:"VENDORX_SMTP_FROM"`
}

type GroqConfig struct {
	APIKey  string `envconfig:"VENDORX_GROQ_API_KEY"`
	Model   string `envconfig:"VENDORX_GROQ_MODEL" default:"deepseek-r1-distill-llama-70b"`
	BaseURL string `envconfig:"VENDORX_GROQ_BASE_URL" default:"https://api.groq.com/openai/v1"`
}

type AzureBlobConfig struct {
	AccountName    string `envconfig:"VENDORX_AZURE_STORAGE_ACCOUNT"`
	AccountKey     string `envconfig:"VENDORX_AZURE_STORAGE_KEY"`
	Container      string `envconfig:"VENDORX_AZURE_STORAGE_CONTAINER" default:"vendorx"`
	EndpointSuffix string `envconfig:"VENDORX_AZURE_ENDPOINT_SUFFIX" default:"core.windows.net"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
