package config

import (
	"os"
	"strconv"
)

// FromEnv applies environment variable overrides on top of a loaded config.
// Unset variables leave the file/default values alone.
func FromEnv(cfg *Config) *Config {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		cfg.Server.StaticDir = v
	}
	if v := os.Getenv("USE_DISK_STATIC"); v != "" {
		cfg.Server.UseDiskStatic = v == "1" || v == "true"
	}
	if val := getEnvInt("DEFAULT_WEEKS"); val > 0 {
		cfg.Schedule.DefaultWeeks = val
	}
	if val := getEnvInt("HISTORY_LIMIT"); val > 0 {
		cfg.Schedule.HistoryLimit = val
	}
	if v := os.Getenv("SEED_PATH"); v != "" {
		cfg.Schedule.SeedPath = v
	}
	return cfg
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}
