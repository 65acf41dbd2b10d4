package logger

import (
	"os"
	"time"

	"spotex/conf"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 基于zap的全局日志，支持文件切割和控制台双输出

var log *zap.Logger

func init() {
	// 未初始化时兜底，避免测试里空指针
	log, _ = zap.NewDevelopment(zap.AddCallerSkip(1))
}

// InitLogger 根据配置初始化全局logger
func InitLogger(cfg *conf.LogConfig, appName string) {
	encoderCfg := zap.NewProductionEncoderConfig()
	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = "2006-01-02 15:04:05.000"
	}
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeFormat)
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var cores []zapcore.Core
	if cfg.FileName != "" {
		// 日志文件切割
		writer := &lumberjack.Logger{
			Filename:   cfg.FileName,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.AddSync(writer),
			level,
		))
	}
	if cfg.Console || cfg.FileName == "" {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderCfg),
			zapcore.AddSync(os.Stdout),
			level,
		))
	}

	log = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)).
		Named(appName)
}

// Default 返回全局zap logger
func Default() *zap.Logger {
	return log
}

// Pair 构造一个结构化日志字段
func Pair(key string, value interface{}) zap.Field {
	switch v := value.(type) {
	case string:
		return zap.String(key, v)
	case int:
		return zap.Int(key, v)
	case int64:
		return zap.Int64(key, v)
	case time.Duration:
		return zap.Duration(key, v)
	case error:
		return zap.NamedError(key, v)
	default:
		return zap.Any(key, v)
	}
}

func Debug(msg string, fields ...zap.Field) { log.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { log.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { log.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { log.Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { log.Fatal(msg, fields...) }

func Debugf(format string, args ...interface{}) { log.Sugar().Debugf(format, args...) }
func Infof(format string, args ...interface{})  { log.Sugar().Infof(format, args...) }
func Warnf(format string, args ...interface{})  { log.Sugar().Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { log.Sugar().Errorf(format, args...) }
func Fatalf(format string, args ...interface{}) { log.Sugar().Fatalf(format, args...) }
