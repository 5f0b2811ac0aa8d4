package utils

import (
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	current      atomic.Pointer[zap.Logger]
	fallbackOnce sync.Once
)

// InitializeLogger builds a JSON production logger or a colourised development one.
func InitializeLogger(production bool, level string) error {
	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	lvl := zapcore.InfoLevel
	if strings.TrimSpace(level) != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
			log.Printf("unknown LOG_LEVEL %q, falling back to info", level)
			lvl = zapcore.InfoLevel
		}
	} else if !production {
		lvl = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	built, err := cfg.Build()
	if err != nil {
		return err
	}
	current.Store(built)
	zap.ReplaceGlobals(built)
	return nil
}

// GetLogger returns the process logger, building a development one on first use.
func GetLogger() *zap.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	fallbackOnce.Do(func() {
		if current.Load() != nil {
			return
		}
		if err := InitializeLogger(false, "info"); err != nil {
			log.Printf("failed to initialize logger: %v", err)
			current.CompareAndSwap(nil, zap.NewNop())
		}
	})
	return current.Load()
}
