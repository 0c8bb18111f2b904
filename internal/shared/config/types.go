package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port" validate:"min=1,max=65535"`
	Mode           string   `mapstructure:"mode" validate:"oneof=debug release test"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// Timezone is the business timezone used for calendar-day boundaries.
	Timezone string `mapstructure:"timezone"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver" validate:"oneof=mysql sqlite"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database" validate:"required"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// GetDSN returns the driver-specific data source name. For sqlite the
// database field is the file path (or ":memory:").
func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == DriverSQLite {
		return d.Database
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret" validate:"required,min=16"`
	Issuer string `mapstructure:"issuer"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
	// CasbinModelPath overrides the built-in RBAC model when set.
	CasbinModelPath string `mapstructure:"casbin_model_path"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// LockTTLMs bounds how long a delivery mutation may hold its lock.
	LockTTLMs int `mapstructure:"lock_ttl_ms"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

func (r *RedisConfig) LockTTL() time.Duration {
	if r.LockTTLMs <= 0 {
		return 5 * time.Second
	}
	return time.Duration(r.LockTTLMs) * time.Millisecond
}

type SubscriptionConfig struct {
	DefaultTotalDays int `mapstructure:"default_total_days" validate:"min=1,max=366"`
}
