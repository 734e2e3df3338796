// Package logger holds the process-wide structured logger.
package logger

import "log/slog"

func Debug(msg string, args ...any) { Logger().Debug(msg, args...) }

func Info(msg string, args ...any) { Logger().Info(msg, args...) }

func Warn(msg string, args ...any) { Logger().Warn(msg, args...) }

func Error(msg string, args ...any) { Logger().Error(msg, args...) }

// With returns the default logger annotated with args, for code that logs
// several lines about the same subject.
func With(args ...any) *slog.Logger { return Logger().With(args...) }
