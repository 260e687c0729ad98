// Package logger provides a process-wide zap logger with request scoping.
//
// Initialize once in main:
//
//	logger.Init(logger.Config{Env: cfg.AppEnv, Level: cfg.LogLevel})
//	defer logger.Sync()
//
// Anywhere a context is available:
//
//	logger.From(ctx).Info("login completed", logger.Provider("battlenet"))
package logger
