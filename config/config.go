package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	// BackendLocal selects the file-backed JSON store.
	BackendLocal = "local"
	// BackendFirebase selects the hosted Realtime Database store.
	BackendFirebase = "firebase"
)

type Config struct {
	ServerPort int
	Store      StoreConfig
}

type StoreConfig struct {
	Backend  string
	DataDir  string
	Firebase FirebaseConfig
}

type FirebaseConfig struct {
	// CredentialsFile points at a service-account JSON file on disk.
	CredentialsFile string
	// CredentialsJSON is the raw credential blob, for platforms that inject
	// secrets through the environment.
	CredentialsJSON string
	DatabaseURL     string
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	storeConfig := StoreConfig{
		Backend: getEnv("STORE_BACKEND", BackendLocal),
		DataDir: getEnv("DATA_DIR", "data"),
		Firebase: FirebaseConfig{
			CredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", "firebase_credentials.json"),
			CredentialsJSON: getEnv("FIREBASE_CREDENTIALS", ""),
			DatabaseURL:     getEnv("FIREBASE_DATABASE_URL", ""),
		},
	}

	return Config{
		ServerPort: getEnvInt("SERVER_PORT", 8080),
		Store:      storeConfig,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}
