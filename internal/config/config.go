package config

import (
	"fmt"
	"os"
)

const defaultPort = "8080"

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（未指定なら8080）

	DatabaseURL string // Postgres接続文字列

	StorageConnectionString string // Azure Storage接続文字列（Table/Blob/Queue/File共通）

	JWTSecret string // JWT署名シークレット
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port: os.Getenv("PORT"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		StorageConnectionString: os.Getenv("AZURE_STORAGE_CONNECTION_STRING"),

		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	//必須チェック
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.StorageConnectionString == "" {
		return Config{}, fmt.Errorf("AZURE_STORAGE_CONNECTION_STRING is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}
