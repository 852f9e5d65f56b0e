package config

import (
	"log"
	"os"
	"strconv"
)

const (
	DefaultImportGroup = "Unassigned"

	// defaultSequenceFloor is the value the allocator starts above when no
	// sequence number has ever been assigned, so the first person gets 2.
	defaultSequenceFloor = 1
)

type Config struct {
	// database path
	DatabasePath string

	// HTTP listen address for the command adapter
	ListenAddr string

	// group that bulk import inserts newly created people into
	ImportDefaultGroup string

	// floor for sequence number allocation (first assignment is floor+1)
	SequenceFloor int64
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int64) int64 {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseInt(valStr, 10, 64)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	cfg := Config{
		DatabasePath:       getEnvOrDefault("DATABASE_PATH", "roster.db"),
		ListenAddr:         getEnvOrDefault("LISTEN_ADDR", ":8080"),
		ImportDefaultGroup: getEnvOrDefault("IMPORT_DEFAULT_GROUP", DefaultImportGroup),
		SequenceFloor:      getEnvIntOrDefault("SEQUENCE_FLOOR", defaultSequenceFloor),
	}

	return cfg, nil
}
