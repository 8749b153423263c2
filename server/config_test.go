package server

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LOG_FILE", "LOG_LEVEL", "LOG_CONSOLE", "MOVE_STEP", "SEND_QUEUE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("expected defaults without env file, got %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("expected %+v, got %+v", DefaultConfig(), cfg)
	}
	if cfg.Addr() != ":3000" {
		t.Fatalf("expected :3000, got %s", cfg.Addr())
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("LOG_FILE", "")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_CONSOLE", "false")
	t.Setenv("MOVE_STEP", "0.25")
	t.Setenv("SEND_QUEUE", "8")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Config{Port: "8081", LogFile: "", LogLevel: "warn", LogConsole: false, MoveStep: 0.25, SendQueue: 8}
	if cfg != want {
		t.Fatalf("expected %+v, got %+v", want, cfg)
	}
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MOVE_STEP", "")
	// godotenv 不覆盖已存在的变量，先清掉再让文件生效
	os.Unsetenv("PORT")
	os.Unsetenv("MOVE_STEP")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PORT=4000\nMOVE_STEP=0.5\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "4000" || cfg.MoveStep != 0.5 {
		t.Fatalf("expected values from env file, got %+v", cfg)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"SEND_QUEUE":  "lots",
		"MOVE_STEP":   "fast",
		"LOG_CONSOLE": "maybe",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env")); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}

	t.Run("non-positive queue", func(t *testing.T) {
		t.Setenv("SEND_QUEUE", "0")
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env")); err == nil {
			t.Fatalf("expected error for SEND_QUEUE=0")
		}
	})
}

func TestInitLoggerWritesFile(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	path := filepath.Join(t.TempDir(), "app.log")
	if err := InitLogger(path, "info", false); err != nil {
		t.Fatalf("init logger: %v", err)
	}
	Log.Infof("hello %s", "arena")
	SyncLogger()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected log file to contain output")
	}

	if err := InitLogger(path, "loud", false); err == nil {
		t.Fatalf("expected invalid level to be rejected")
	}
}
