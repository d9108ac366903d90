package config

// EnvPrefix is passed to envconfig; individual fields carry the full
// variable name so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv      = "JOBHIVE_APP_ENV"
	EnvPort        = "JOBHIVE_APP_PORT"
	EnvBaseURL     = "JOBHIVE_APP_BASE_URL"
	EnvDBDSN       = "JOBHIVE_DB_DSN"
	EnvDBHost      = "JOBHIVE_DB_HOST"
	EnvDBUser      = "JOBHIVE_DB_USER"
	EnvDBName      = "JOBHIVE_DB_NAME"
	EnvRedisURL    = "JOBHIVE_REDIS_URL"
	EnvJWTSecret   = "JOBHIVE_JWT_SECRET"
	EnvJWTIssuer   = "JOBHIVE_JWT_ISSUER"
	EnvSMTPHost    = "JOBHIVE_SMTP_HOST"
	EnvSMTPFrom    = "JOBHIVE_SMTP_FROM_MAIL"
	EnvCloudName   = "JOBHIVE_CLOUDINARY_CLOUD_NAME"
	EnvCloudKey    = "JOBHIVE_CLOUDINARY_API_KEY"
	EnvCloudSecret = "JOBHIVE_CLOUDINARY_API_SECRET"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
