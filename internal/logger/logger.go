package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New builds a SugaredLogger for the given application environment.
// Production uses JSON output, everything else the development console encoder.
func New(appEnv string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	switch strings.ToLower(appEnv) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return zapLogger.Sugar(), nil
}
