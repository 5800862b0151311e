package logger

import "go.uber.org/zap"

// New は環境に応じたzapロガーを返す。
// devでは読みやすい出力、それ以外はJSON。
func New(env string) (*zap.Logger, error) {
	if env == "dev" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
