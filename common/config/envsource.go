package config

import (
	"os"
	"strings"
)

// EnvSource reads options from the environment, "yagmod.db_dsn" is looked up as YAGMOD_DB_DSN
type EnvSource struct{}

func (e *EnvSource) GetValue(key string) interface{} {
	v := os.Getenv(EnvKey(key))
	if v == "" {
		return nil
	}
	return v
}

func (e *EnvSource) Name() string {
	return "env"
}

func EnvKey(option string) string {
	return strings.ReplaceAll(strings.ToUpper(option), ".", "_")
}
