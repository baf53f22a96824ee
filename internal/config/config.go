// Package config reads process settings from the environment, optionally seeded from a .env file.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	EnvFileKey      = "ENV_FILE"
	PortKey         = "PORT"
	SessionIDKey    = "SESSION_ID"
	SessionTTLKey   = "SESSION_TTL"
	NoticeTTLKey    = "NOTICE_TTL"
	LogLevelKey     = "LOG_LEVEL"
	EventsSNSArnKey = "EVENTS_SNS_ARN"
	SNSEndpointKey  = "SNS_ENDPOINT"

	DefaultPort       = 8080
	DefaultSessionTTL = 12 * time.Hour
	DefaultNoticeTTL  = 3 * time.Second
)

// Settings are the process wide knobs. Backend specific keys are read by the backends package.
type Settings struct {
	Port         int
	SessionID    string
	SessionTTL   time.Duration
	NoticeTTL    time.Duration
	LogLevel     log.Level
	EventsSNSArn string
	SNSEndpoint  string
}

// LoadEnvFile loads ENV_FILE (default ".env") into the environment. A missing file is not an error.
func LoadEnvFile() {
	envFile := os.Getenv(EnvFileKey)
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Debugf("The %s file not found.", envFile)
	}
}

// FromEnv builds Settings from the environment, falling back to defaults on missing or bad values.
func FromEnv() Settings {
	s := Settings{
		Port:         DefaultPort,
		SessionID:    os.Getenv(SessionIDKey),
		SessionTTL:   durationEnv(SessionTTLKey, DefaultSessionTTL),
		NoticeTTL:    durationEnv(NoticeTTLKey, DefaultNoticeTTL),
		LogLevel:     log.InfoLevel,
		EventsSNSArn: os.Getenv(EventsSNSArnKey),
		SNSEndpoint:  os.Getenv(SNSEndpointKey),
	}
	if v := os.Getenv(PortKey); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			s.Port = p
		} else {
			log.Warnf("ignoring invalid %s=%q", PortKey, v)
		}
	}
	if s.SessionID == "" {
		s.SessionID = uuid.NewString()
	}
	if v := os.Getenv(LogLevelKey); v != "" {
		if lvl, err := log.ParseLevel(v); err == nil {
			s.LogLevel = lvl
		} else {
			log.Warnf("ignoring invalid %s=%q", LogLevelKey, v)
		}
	}
	return s
}

func durationEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		log.Warnf("ignoring invalid %s=%q", key, v)
		return def
	}
	return d
}
