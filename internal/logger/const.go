package logger

import (
	"go.uber.org/zap"
)

type Field = zap.Field

var (
	Int      = zap.Int
	Uint     = zap.Uint
	Int64    = zap.Int64
	String   = zap.String
	Error    = zap.Error
	Bool     = zap.Bool
	Any      = zap.Any
	Duration = zap.Duration
)
