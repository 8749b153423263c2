package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config 进程级配置，来自环境变量（可选 .env 文件）
type Config struct {
	Port       string  // 监听端口 PORT
	LogFile    string  // 日志文件 LOG_FILE
	LogLevel   string  // 日志级别 LOG_LEVEL
	LogConsole bool    // 是否同时输出到控制台 LOG_CONSOLE
	MoveStep   float64 // 向右移动步长 MOVE_STEP
	SendQueue  int     // 每连接发送队列长度 SEND_QUEUE
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		Port:       "3000",
		LogFile:    "app.log",
		LogLevel:   "debug",
		LogConsole: true,
		MoveStep:   DefaultMoveStep,
		SendQueue:  64,
	}
}

// Addr 监听地址
func (c Config) Addr() string { return ":" + c.Port }

// LoadConfig 读取 .env（不存在则跳过）并用环境变量覆盖默认值
func LoadConfig(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	cfg := DefaultConfig()
	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		cfg.Port = v
	}
	if v, ok := os.LookupEnv("LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = v
	}

	var err error
	if cfg.LogConsole, err = getEnvAsBool("LOG_CONSOLE", cfg.LogConsole); err != nil {
		return Config{}, err
	}
	if cfg.MoveStep, err = getEnvAsFloat("MOVE_STEP", cfg.MoveStep); err != nil {
		return Config{}, err
	}
	if cfg.SendQueue, err = getEnvAsInt("SEND_QUEUE", cfg.SendQueue); err != nil {
		return Config{}, err
	}
	if cfg.SendQueue <= 0 {
		return Config{}, fmt.Errorf("SEND_QUEUE must be positive, got %d", cfg.SendQueue)
	}
	return cfg, nil
}

func getEnvAsInt(key string, def int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvAsFloat(key string, def float64) (float64, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be a number: %w", key, err)
	}
	return f, nil
}

func getEnvAsBool(key string, def bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("environment variable %s must be a boolean: %w", key, err)
	}
	return b, nil
}
