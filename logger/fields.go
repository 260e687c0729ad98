package logger

import (
	"time"

	"go.uber.org/zap"
)

// HTTP fields

func RequestID(v string) zap.Field { return zap.String("request_id", v) }

func Method(v string) zap.Field { return zap.String("method", v) }

func Path(v string) zap.Field { return zap.String("path", v) }

func Status(v int) zap.Field { return zap.Int("status", v) }

func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }

func ClientIP(v string) zap.Field { return zap.String("client_ip", v) }

// Domain fields

func Provider(v string) zap.Field { return zap.String("provider", v) }

func UserID(v string) zap.Field { return zap.String("user_id", v) }

func Op(v string) zap.Field { return zap.String("op", v) }

func Scopes(v []string) zap.Field { return zap.Strings("scopes", v) }

func Err(err error) zap.Field { return zap.Error(err) }
