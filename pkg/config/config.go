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
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	SMTP          SMTPConfig
	Cloudinary    CloudinaryConfig
	Reset         ResetCodeConfig
	Upload        UploadConfig
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
	Env          string `envconfig:"JOBHIVE_APP_ENV" required:"true"`
	Port         string `envconfig:"JOBHIVE_APP_PORT" required:"true"`
	BaseURL      string `envconfig:"JOBHIVE_APP_BASE_URL" default:"http://localhost:3000"`
	LogLevel     string `envconfig:"JOBHIVE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"JOBHIVE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"JOBHIVE_DB_DSN"`
	Driver string `envconfig:"JOBHIVE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"JOBHIVE_DB_HOST"`
	LegacyPort     int    `envconfig:"JOBHIVE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"JOBHIVE_DB_USER"`
	LegacyPassword string `envconfig:"JOBHIVE_DB_PASSWORD"`
	LegacyName     string `envconfig:"JOBHIVE_DB_NAME"`
	LegacySSLMode  string `envconfig:"JOBHIVE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"JOBHIVE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"JOBHIVE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"JOBHIVE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"JOBHIVE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"JOBHIVE_REDIS_URL" required:"true"`
	PoolSize     int           `envconfig:"JOBHIVE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"JOBHIVE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"JOBHIVE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"JOBHIVE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"JOBHIVE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret       string `envconfig:"JOBHIVE_JWT_SECRET" required:"true"`
	Issuer       string `envconfig:"JOBHIVE_JWT_ISSUER" required:"true"`
	BearerMarker string `envconfig:"JOBHIVE_BEARER_MARKER" default:"jobhive__"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"JOBHIVE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"JOBHIVE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"JOBHIVE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"JOBHIVE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"JOBHIVE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow      time.Duration `envconfig:"JOBHIVE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit  int           `envconfig:"JOBHIVE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit     int           `envconfig:"JOBHIVE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	SignupWindow     time.Duration `envconfig:"JOBHIVE_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignupEmailLimit int           `envconfig:"JOBHIVE_AUTH_RATE_LIMIT_SIGNUP_EMAIL_LIMIT" default:"3"`
	SignupIPLimit    int           `envconfig:"JOBHIVE_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
	ForgetWindow     time.Duration `envconfig:"JOBHIVE_AUTH_RATE_LIMIT_FORGET_WINDOW" default:"5m"`
	ForgetEmailLimit int           `envconfig:"JOBHIVE_AUTH_RATE_LIMIT_FORGET_EMAIL_LIMIT" default:"3"`
	ForgetIPLimit    int           `envconfig:"JOBHIVE_AUTH_RATE_LIMIT_FORGET_IP_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"JOBHIVE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"JOBHIVE_AUTO_MIGRATE" default:"false"`
}

type SMTPConfig struct {
	Host     string `envconfig:"JOBHIVE_SMTP_HOST" required:"true"`
	Port     int    `envconfig:"JOBHIVE_SMTP_PORT" default:"465"`
	Username string `envconfig:"JOBHIVE_SMTP_USERNAME"`
	Password string `envconfig:"JOBHIVE_SMTP_PASSWORD"`
	FromName string `envconfig:"JOBHIVE_SMTP_FROM_NAME" default:"JobHive"`
	FromMail string `envconfig:"JOBHIVE_SMTP_FROM_MAIL" required:"true"`
}

type CloudinaryConfig struct {
	CloudName  string `envconfig:"JOBHIVE_CLOUDINARY_CLOUD_NAME" required:"true"`
	APIKey     string `envconfig:"JOBHIVE_CLOUDINARY_API_KEY" required:"true"`
	APISecret  string `envconfig:"JOBHIVE_CLOUDINARY_API_SECRET" required:"true"`
	RootFolder string `envconfig:"JOBHIVE_CLOUDINARY_ROOT_FOLDER" default:"JobHive"`

	DefaultProfilePictureID  string `envconfig:"JOBHIVE_DEFAULT_PROFILE_PICTURE_ID" default:"JobHive/DefaultImages/placeholder"`
	DefaultProfilePictureURL string `envconfig:"JOBHIVE_DEFAULT_PROFILE_PICTURE_URL" default:"https://res.cloudinary.com/jobhive/image/upload/DefaultImages/placeholder.jpg"`
	DefaultCompanyPhotoID    string `envconfig:"JOBHIVE_DEFAULT_COMPANY_PHOTO_ID" default:"JobHive/DefaultImages/company"`
	DefaultCompanyPhotoURL   string `envconfig:"JOBHIVE_DEFAULT_COMPANY_PHOTO_URL" default:"https://res.cloudinary.com/jobhive/image/upload/DefaultImages/company.png"`
}

type ResetCodeConfig struct {
	TTL time.Duration `envconfig:"JOBHIVE_RESET_CODE_TTL" default:"10m"`
}

type UploadConfig struct {
	MaxUploadMB int    `envconfig:"JOBHIVE_MAX_UPLOAD_MB" default:"10"`
	ExportDir   string `envconfig:"JOBHIVE_EXPORT_DIR" default:"./jobApplicationsSheets"`
}

// MaxBytes converts the configured upload ceiling to bytes.
func (u UploadConfig) MaxBytes() int64 {
	return int64(u.MaxUploadMB) << 20
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
