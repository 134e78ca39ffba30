package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// Configはアプリ全体の設定。
// 接続先やレートはコードに埋め込まず、起動時に環境変数から渡す。
type Config struct {
	Port string // サーバーポート（8080）

	JWTSecret string // 外部IDプロバイダと共有する検証シークレット

	TaxRate decimal.Decimal // 消費税率（TAX_RATE、デフォルト0.10）

	GoEnv string // dev/prod
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port:      os.Getenv("PORT"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		GoEnv:     os.Getenv("GO_ENV"),
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.GoEnv == "" {
		cfg.GoEnv = "dev"
	}

	//税率（未指定は10%）
	rate := os.Getenv("TAX_RATE")
	if rate == "" {
		rate = "0.10"
	}
	d, err := decimal.NewFromString(rate)
	if err != nil {
		return Config{}, fmt.Errorf("TAX_RATE must be number: %w", err)
	}
	if d.IsNegative() {
		return Config{}, fmt.Errorf("TAX_RATE must not be negative")
	}
	cfg.TaxRate = d

	return cfg, nil
}
