// Package gemini はGoogle Gemini APIを使った決算書分析とAI比較評価を提供します。
package gemini

import "os"

// DefaultModel はGemini APIのデフォルトモデルです。
const DefaultModel = "gemini-2.5-flash"

// Config はGeminiクライアントの設定です。
type Config struct {
	APIKey string
	Model  string
}

// LoadConfig は環境変数からGeminiの設定を読み込みます。
func LoadConfig() Config {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = DefaultModel
	}
	return Config{
		APIKey: os.Getenv("GEMINI_API_KEY"),
		Model:  model,
	}
}
