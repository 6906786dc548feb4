package main

import (
	"bytes"
	"flag"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

// configKeys lists every variable parseConfig reads.
var configKeys = []string{
	"APP_HOST", "APP_PORT", "APP_LOG_LEVEL",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
	"POSTGRES_MAX_OPEN_CONNS", "POSTGRES_MAX_IDLE_CONNS",
	"REDIS_HOST", "REDIS_PORT", "REDIS_DB", "REDIS_PASSWORD", "REDIS_POOL_SIZE", "REDIS_MIN_IDLE_CONNS",
	"JWT_SECRET_KEY", "JWT_EXP_SECOND",
	"MEDIA_ROOT", "MEDIA_URL", "MAX_UPLOAD_MB",
	"KAFKA_BROKERS", "KAFKA_TOPIC",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
}

// resetEnv blanks env vars used by parseConfig; blank values fall back to defaults.
func resetEnv(t *testing.T) {
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	assert.Equal(t, "config.env", parseFlags())
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env"}
	assert.Equal(t, "myconfig.env", parseFlags())
}

func TestPrintBuildInfo_Output(t *testing.T) {
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	buildVersion = "v1.0.0"
	buildCommit = "abcd1234"
	buildDate = "2025-09-26"

	printBuildInfo()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	output := buf.String()
	assert.Contains(t, output, "Version: v1.0.0")
	assert.Contains(t, output, "Commit: abcd1234")
	assert.Contains(t, output, "Build: 2025-09-26")
}

func TestParseConfig_Defaults(t *testing.T) {
	resetEnv(t)

	cfg, err := parseConfig("nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, appConfig{
		AppHost:           "localhost",
		AppPort:           "8080",
		LogLevel:          "info",
		PGHost:            "localhost",
		PGPort:            5432,
		PGUser:            "user",
		PGPassword:        "password",
		PGDB:              "database",
		PGMaxOpenConns:    16,
		PGMaxIdleConns:    8,
		RedisHost:         "localhost",
		RedisPort:         6379,
		RedisDB:           0,
		RedisPoolSize:     10,
		RedisMinIdleConns: 2,
		JWTSecretKey:      "my_super_secret_key",
		JWTExpSecond:      86400,
		MediaRoot:         "./media",
		MediaURL:          "/media/",
		MediaPath:         "/media/",
		MaxUploadBytes:    10 << 20,
		KafkaTopic:        "recipe-events",
		RateLimitRPS:      5,
		RateLimitBurst:    10,
	}, cfg)
}

func TestParseConfig_CustomEnv(t *testing.T) {
	resetEnv(t)
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_LOG_LEVEL", "debug")

	t.Setenv("POSTGRES_HOST", "pg.example.com")
	t.Setenv("POSTGRES_PORT", "5433")
	t.Setenv("POSTGRES_USER", "admin")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "mydb")
	t.Setenv("POSTGRES_MAX_OPEN_CONNS", "20")
	t.Setenv("POSTGRES_MAX_IDLE_CONNS", "10")

	t.Setenv("REDIS_HOST", "redis.example.com")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_PASSWORD", "redispass")
	t.Setenv("REDIS_POOL_SIZE", "15")
	t.Setenv("REDIS_MIN_IDLE_CONNS", "5")

	t.Setenv("JWT_SECRET_KEY", "supersecret")
	t.Setenv("JWT_EXP_SECOND", "300")

	t.Setenv("MEDIA_ROOT", "/var/media")
	t.Setenv("MEDIA_URL", "https://cdn.example.com/media/")
	t.Setenv("MAX_UPLOAD_MB", "2")

	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("KAFKA_TOPIC", "recipes")

	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("RATE_LIMIT_BURST", "3")

	cfg, err := parseConfig("nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.AppHost)
	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "pg.example.com", cfg.PGHost)
	assert.Equal(t, 5433, cfg.PGPort)
	assert.Equal(t, "admin", cfg.PGUser)
	assert.Equal(t, "secret", cfg.PGPassword)
	assert.Equal(t, "mydb", cfg.PGDB)
	assert.Equal(t, 20, cfg.PGMaxOpenConns)
	assert.Equal(t, 10, cfg.PGMaxIdleConns)
	assert.Equal(t, "redis.example.com", cfg.RedisHost)
	assert.Equal(t, 6380, cfg.RedisPort)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, "redispass", cfg.RedisPassword)
	assert.Equal(t, 15, cfg.RedisPoolSize)
	assert.Equal(t, 5, cfg.RedisMinIdleConns)
	assert.Equal(t, "supersecret", cfg.JWTSecretKey)
	assert.Equal(t, 300, cfg.JWTExpSecond)
	assert.Equal(t, "/var/media", cfg.MediaRoot)
	assert.Equal(t, "https://cdn.example.com/media/", cfg.MediaURL)
	assert.Equal(t, "/media/", cfg.MediaPath)
	assert.Equal(t, int64(2<<20), cfg.MaxUploadBytes)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "recipes", cfg.KafkaTopic)
	assert.Equal(t, 0.5, cfg.RateLimitRPS)
	assert.Equal(t, 3, cfg.RateLimitBurst)
}

func TestParseConfig_EnvFile(t *testing.T) {
	resetEnv(t)
	for _, key := range configKeys {
		// godotenv.Load does not override variables that are already set.
		os.Unsetenv(key)
	}

	path := t.TempDir() + "/config.env"
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT=7070\nPOSTGRES_DB=recipes\n"), 0o600))

	cfg, err := parseConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.AppPort)
	assert.Equal(t, "recipes", cfg.PGDB)
	assert.Equal(t, "localhost", cfg.AppHost)
}

func TestParseConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"POSTGRES_PORT", "abc"},
		{"REDIS_DB", "one"},
		{"JWT_EXP_SECOND", "1h"},
		{"MAX_UPLOAD_MB", "ten"},
		{"RATE_LIMIT_RPS", "fast"},
		{"MEDIA_URL", "https://cdn.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			resetEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := parseConfig("nonexistent.env")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestMediaMountPath(t *testing.T) {
	tests := []struct {
		mediaURL string
		want     string
		wantErr  bool
	}{
		{mediaURL: "/media/", want: "/media/"},
		{mediaURL: "/media", want: "/media/"},
		{mediaURL: "uploads", want: "/uploads/"},
		{mediaURL: "/static/images/", want: "/static/images/"},
		{mediaURL: "https://cdn.example.com/m", want: "/m/"},
		{mediaURL: "/", wantErr: true},
		{mediaURL: "https://cdn.example.com", wantErr: true},
		{mediaURL: "://bad", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.mediaURL, func(t *testing.T) {
			got, err := mediaMountPath(tt.mediaURL)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
