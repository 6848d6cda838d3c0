// Package logger 基于zap的日志初始化
//
// 用法：
//
//	if err := logger.Init(cfg.Log, cfg.Server.Mode); err != nil {
//	    panic(err)
//	}
//	zap.L().Info("service start...")
//
// Init会调用zap.ReplaceGlobals，业务代码统一使用zap.L()，不需要到处传递*zap.Logger
package logger

import (
	"fmt"
	"os"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xiebiao/jpashop/internal/infrastructure/config"
)

// Init 初始化全局Logger
// mode为debug时额外把日志打印到终端，方便本地观察SQL
func Init(cfg config.LogConfig, mode string) error {
	lg, err := New(cfg, mode)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(lg)
	return nil
}

// New 按配置创建Logger（不替换全局Logger，测试时使用）
func New(cfg config.LogConfig, mode string) (*zap.Logger, error) {
	level := new(zapcore.Level)
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("无效的日志级别 %q: %w", cfg.Level, err)
	}

	writer := getLogWriter(cfg)
	core := zapcore.NewCore(getEncoder(cfg.Format), writer, level)

	// 输出到文件时，开发模式同时打印到终端
	if mode == "debug" && isFileOutput(cfg.Output) {
		consoleEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		core = zapcore.NewTee(
			core,
			zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), zapcore.DebugLevel),
		)
	}

	var opts []zap.Option
	if cfg.EnableCaller {
		opts = append(opts, zap.AddCaller())
	}
	return zap.New(core, opts...), nil
}

func getEncoder(format string) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	if format == "json" {
		return zapcore.NewJSONEncoder(encoderConfig)
	}
	return zapcore.NewConsoleEncoder(encoderConfig)
}

// getLogWriter stdout/stderr直接输出，其它值视为文件路径，由lumberjack负责切割
func getLogWriter(cfg config.LogConfig) zapcore.WriteSyncer {
	switch cfg.Output {
	case "", "stdout":
		return zapcore.Lock(os.Stdout)
	case "stderr":
		return zapcore.Lock(os.Stderr)
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:   cfg.Output,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
	}
	return zapcore.AddSync(lumberJackLogger)
}

func isFileOutput(output string) bool {
	return output != "" && output != "stdout" && output != "stderr"
}
