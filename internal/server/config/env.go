package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays config with SCHOOL_* variables. Values from envFile are
// used when the process environment does not set the same key; a missing
// file is not an error, a malformed one panics.
func parseEnv(config *Config, envFile string) {
	fileVars, err := godotenv.Read(envFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
		fileVars = map[string]string{}
	}

	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return fileVars[key]
	}

	setString(&config.HTTPAddr, lookup("SCHOOL_HTTP_ADDR"))
	setString(&config.GRPCAddr, lookup("SCHOOL_GRPC_ADDR"))
	setString(&config.DatabaseDSN, lookup("SCHOOL_DATABASE_DSN"))
	setString(&config.StorageMode, lookup("SCHOOL_STORAGE_MODE"))
	setString(&config.SecretKey, lookup("SCHOOL_JWT_SECRET"))
	setString(&config.AdminEmail, lookup("SCHOOL_ADMIN_EMAIL"))
	setString(&config.AdminPassword, lookup("SCHOOL_ADMIN_PASSWORD"))
	setString(&config.S3RootUser, lookup("SCHOOL_S3_USER"))
	setString(&config.S3RootPassword, lookup("SCHOOL_S3_PASSWORD"))
	setString(&config.S3Bucket, lookup("SCHOOL_S3_BUCKET"))
	setString(&config.S3Region, lookup("SCHOOL_S3_REGION"))
	setString(&config.S3BaseEndpoint, lookup("SCHOOL_S3_ENDPOINT"))

	if v := lookup("SCHOOL_ACCESS_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.AccessTokenTTL = d
	}
	if v := lookup("SCHOOL_REFRESH_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.RefreshTokenTTL = d
	}
}
