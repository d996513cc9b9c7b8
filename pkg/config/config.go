package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Idempotency   IdempotencyConfig
	Cron          CronConfig
	Seed          SeedConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DBDriverSQLite
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FUELSTATION_APP_ENV" required:"true"`
	Port         string `envconfig:"FUELSTATION_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FUELSTATION_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FUELSTATION_LOG_WARN_STACK" default:"false"`
	CORSOrigins  string `envconfig:"FUELSTATION_CORS_ORIGINS" default:"*"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// AllowedOrigins splits the comma separated CORS origin list.
func (a AppConfig) AllowedOrigins() []string {
	out := []string{}
	for _, origin := range strings.Split(a.CORSOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

type ServiceConfig struct {
	Kind string `envconfig:"FUELSTATION_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"FUELSTATION_DB_DSN"`
	Driver string `envconfig:"FUELSTATION_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FUELSTATION_DB_HOST"`
	LegacyPort     int    `envconfig:"FUELSTATION_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FUELSTATION_DB_USER"`
	LegacyPassword string `envconfig:"FUELSTATION_DB_PASSWORD"`
	LegacyName     string `envconfig:"FUELSTATION_DB_NAME"`
	LegacySSLMode  string `envconfig:"FUELSTATION_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FUELSTATION_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FUELSTATION_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FUELSTATION_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FUELSTATION_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver is the embedded sqlite store.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"FUELSTATION_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FUELSTATION_REDIS_ADDR"`
	Password     string        `envconfig:"FUELSTATION_REDIS_PASSWORD"`
	DB           int           `envconfig:"FUELSTATION_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FUELSTATION_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FUELSTATION_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FUELSTATION_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FUELSTATION_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FUELSTATION_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"FUELSTATION_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"FUELSTATION_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"FUELSTATION_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"FUELSTATION_REFRESH_TOKEN_TTL_MINUTES" default:"10080"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FUELSTATION_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FUELSTATION_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FUELSTATION_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FUELSTATION_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FUELSTATION_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"FUELSTATION_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"FUELSTATION_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"FUELSTATION_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"FUELSTATION_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"FUELSTATION_AUTO_MIGRATE" default:"false"`
	SeedDemo    bool `envconfig:"FUELSTATION_SEED_DEMO" default:"false"`
}

type IdempotencyConfig struct {
	SaleTTL time.Duration `envconfig:"FUELSTATION_IDEMPOTENCY_SALE_TTL" default:"24h"`
}

type CronConfig struct {
	Schedule           string        `envconfig:"FUELSTATION_CRON_SCHEDULE" default:"*/15 * * * *"`
	RollupCacheTTL     time.Duration `envconfig:"FUELSTATION_CRON_ROLLUP_CACHE_TTL" default:"48h"`
	RollupLookbackDays int           `envconfig:"FUELSTATION_CRON_ROLLUP_LOOKBACK_DAYS" default:"1"`
}

type SeedConfig struct {
	File          string `envconfig:"FUELSTATION_SEED_FILE"`
	AdminEmail    string `envconfig:"FUELSTATION_SEED_ADMIN_EMAIL" default:"admin@fuelstation.local"`
	AdminPassword string `envconfig:"FUELSTATION_SEED_ADMIN_PASSWORD"`
}

func (db *DBConfig) ensureDSN() error {
	if db.IsSQLite() {
		if strings.TrimSpace(db.DSN) == "" {
			db.DSN = DefaultSQLiteDSN
		}
		return nil
	}
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
