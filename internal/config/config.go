package config

import (
	"os"
	"strconv"
	"time"

	// Load environment variables from a .env file when present.
	_ "github.com/joho/godotenv/autoload"
)

// Config holds all gateway configuration.
type Config struct {
	Server    ServerConfig
	Converter ConverterConfig
	Storage   StorageConfig
	Audit     AuditConfig
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr           string
	BaseURL        string
	MaxUploadBytes int
}

// ConverterConfig describes the external converter process.
type ConverterConfig struct {
	// Command is the converter invocation prefix; input and output paths
	// are appended as the final two arguments.
	Command string
	Timeout time.Duration
	// BankTablePath optionally points at a JSON file overriding the
	// built-in bank identifier table.
	BankTablePath string
}

// StorageConfig holds the upload and output directories.
type StorageConfig struct {
	UploadDir string
	OutputDir string
}

// AuditConfig holds the audit log destination.
type AuditConfig struct {
	LogPath string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Addr:           getenv("GATEWAY_ADDR", ":8080"),
			BaseURL:        getenv("GATEWAY_BASE_URL", "http://localhost:8080"),
			MaxUploadBytes: getenvInt("GATEWAY_MAX_UPLOAD_MB", 32) << 20,
		},
		Converter: ConverterConfig{
			Command:       getenv("GATEWAY_CONVERTER_CMD", "convert"),
			Timeout:       time.Duration(getenvInt("GATEWAY_TIMEOUT_SECONDS", 60)) * time.Second,
			BankTablePath: os.Getenv("GATEWAY_BANK_TABLE"),
		},
		Storage: StorageConfig{
			UploadDir: getenv("GATEWAY_UPLOAD_DIR", "uploads"),
			OutputDir: getenv("GATEWAY_OUTPUT_DIR", "outputs"),
		},
		Audit: AuditConfig{
			LogPath: getenv("GATEWAY_AUDIT_LOG", "conversions.log"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
