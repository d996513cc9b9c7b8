package config

const (
	EnvPrefix = "FUELSTATION"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
	DefaultSQLiteDSN = "file::memory:?cache=shared"
)

const (
	EnvAppEnv                 = "FUELSTATION_APP_ENV"
	EnvPort                   = "FUELSTATION_APP_PORT"
	EnvLogLevel               = "FUELSTATION_LOG_LEVEL"
	EnvDBDSN                  = "FUELSTATION_DB_DSN"
	EnvDBDriver               = "FUELSTATION_DB_DRIVER"
	EnvDBHost                 = "FUELSTATION_DB_HOST"
	EnvDBUser                 = "FUELSTATION_DB_USER"
	EnvDBPassword             = "FUELSTATION_DB_PASSWORD"
	EnvDBName                 = "FUELSTATION_DB_NAME"
	EnvRedisURL               = "FUELSTATION_REDIS_URL"
	EnvJWTSecret              = "FUELSTATION_JWT_SECRET"
	EnvJWTIssuer              = "FUELSTATION_JWT_ISSUER"
	EnvJWTExpMins             = "FUELSTATION_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "FUELSTATION_REFRESH_TOKEN_TTL_MINUTES"
	EnvUseSQLite              = "FUELSTATION_USE_SQLITE"
	EnvCronSchedule           = "FUELSTATION_CRON_SCHEDULE"
	EnvSeedFile               = "FUELSTATION_SEED_FILE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
