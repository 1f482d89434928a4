package config

// EnvPrefix seeds envconfig; variables also carry it explicitly for grep-ability.
const EnvPrefix = "THREADLINE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvAppEnv   = "THREADLINE_APP_ENV"
	EnvPort     = "THREADLINE_APP_PORT"
	EnvDBDSN    = "THREADLINE_DB_DSN"
	EnvDBDriver = "THREADLINE_DB_DRIVER"
	EnvDBHost   = "THREADLINE_DB_HOST"
	EnvDBUser   = "THREADLINE_DB_USER"
	EnvDBName   = "THREADLINE_DB_NAME"
	EnvRedisURL = "THREADLINE_REDIS_URL"

	EnvJWTSecret  = "THREADLINE_JWT_SECRET"
	EnvJWTIssuer  = "THREADLINE_JWT_ISSUER"
	EnvJWTExpMins = "THREADLINE_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
