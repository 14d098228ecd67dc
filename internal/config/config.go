package config

import (
	"time"

	"github.com/spf13/viper"
)

type AppConf struct {
	Env            string `mapstructure:"env"`
	Port           int    `mapstructure:"port"`
	ShutdownSecond int    `mapstructure:"shutdown_seconds"`
	CORSOrigin     string `mapstructure:"cors_origin"`
}

type MongoConf struct {
	URI              string `mapstructure:"uri"`
	Database         string `mapstructure:"database"`
	OpTimeoutSeconds int    `mapstructure:"op_timeout_seconds"`
}

type RedisConf struct {
	Addr               string `mapstructure:"addr"`
	Password           string `mapstructure:"password"`
	DB                 int    `mapstructure:"db"`
	DialTimeoutSeconds int    `mapstructure:"dial_timeout_seconds"`
	StatsTTLSeconds    int    `mapstructure:"stats_ttl_seconds"`
}

type AWSConf struct {
	Region               string `mapstructure:"region"`
	Bucket               string `mapstructure:"bucket"`
	UploadTimeoutSeconds int    `mapstructure:"upload_timeout_seconds"`
}

type JWTConf struct {
	Secret           string `mapstructure:"secret"`
	AccessTTLMinutes int    `mapstructure:"access_ttl_minutes"`
	RefreshTTLDays   int    `mapstructure:"refresh_ttl_days"`
}

type Config struct {
	App   AppConf   `mapstructure:"app"`
	Mongo MongoConf `mapstructure:"mongodb"`
	Redis RedisConf `mapstructure:"redis"`
	AWS   AWSConf   `mapstructure:"aws"`
	JWT   JWTConf   `mapstructure:"jwt"`

	// derived
	ShutdownTimeout  time.Duration
	MongoOpTimeout   time.Duration
	RedisDialTimeout time.Duration
	UploadTimeout    time.Duration
	StatsTTL         time.Duration
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.App.Port == 0 {
		cfg.App.Port = 8000
	}
	if cfg.App.ShutdownSecond == 0 {
		cfg.App.ShutdownSecond = 15
	}
	if cfg.App.CORSOrigin == "" {
		cfg.App.CORSOrigin = "*"
	}
	if cfg.Mongo.OpTimeoutSeconds == 0 {
		cfg.Mongo.OpTimeoutSeconds = 10
	}
	if cfg.AWS.UploadTimeoutSeconds == 0 {
		cfg.AWS.UploadTimeoutSeconds = 120
	}
	if cfg.Redis.DialTimeoutSeconds == 0 {
		cfg.Redis.DialTimeoutSeconds = 5
	}
	if cfg.Redis.StatsTTLSeconds == 0 {
		cfg.Redis.StatsTTLSeconds = 60
	}
	if cfg.JWT.AccessTTLMinutes == 0 {
		cfg.JWT.AccessTTLMinutes = 15
	}
	if cfg.JWT.RefreshTTLDays == 0 {
		cfg.JWT.RefreshTTLDays = 10
	}
	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSecond) * time.Second
	cfg.MongoOpTimeout = time.Duration(cfg.Mongo.OpTimeoutSeconds) * time.Second
	cfg.RedisDialTimeout = time.Duration(cfg.Redis.DialTimeoutSeconds) * time.Second
	cfg.UploadTimeout = time.Duration(cfg.AWS.UploadTimeoutSeconds) * time.Second
	cfg.StatsTTL = time.Duration(cfg.Redis.StatsTTLSeconds) * time.Second
	return &cfg, nil
}
