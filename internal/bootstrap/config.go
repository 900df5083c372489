package bootstrap

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort         string `mapstructure:"SERVER_PORT"`
	RulesGrpcPort      string `mapstructure:"RULES_GRPC_PORT"`
	RedisUrl           string `mapstructure:"REDIS_URL"`
	MongoUri           string `mapstructure:"MONGO_URI"`
	MongoDatabase      string `mapstructure:"MONGO_DATABASE"`
	DefaultBoardSize   int    `mapstructure:"DEFAULT_BOARD_SIZE"`
	SnapshotTTLSeconds int    `mapstructure:"SNAPSHOT_TTL_SECONDS"`
	IsLocalCors        bool   `mapstructure:"LOCAL_CORS"`
}

var defaults = map[string]any{
	"SERVER_PORT":          ":8080",
	"RULES_GRPC_PORT":      ":8082",
	"REDIS_URL":            "localhost:6379",
	"MONGO_URI":            "mongodb://localhost:27017",
	"MONGO_DATABASE":       "go_rules",
	"DEFAULT_BOARD_SIZE":   19,
	"SNAPSHOT_TTL_SECONDS": 86400,
	"LOCAL_CORS":           false,
}

// Setup reads cfgPath (a .env file) on top of the defaults; environment
// variables win over both. A missing file is not an error.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		v.SetConfigType("env")
		err := v.ReadInConfig()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c Config) SnapshotTTL() time.Duration {
	return time.Duration(c.SnapshotTTLSeconds) * time.Second
}
