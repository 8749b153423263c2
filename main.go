package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arena3d/server"
)

// arena3d 入口：读取配置，启动 WebSocket 中继与管理接口
func main() {
	cfg, err := server.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var addr string
	flag.StringVar(&addr, "addr", cfg.Addr(), "server listen address, e.g. :3000")
	flag.Parse()

	if err := server.InitLogger(cfg.LogFile, cfg.LogLevel, cfg.LogConsole); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer server.SyncLogger()

	// 世界注册表显式创建并注入中继，不使用包级单例
	world := server.NewWorld(nil)
	hub := server.NewHub(world,
		server.WithMoveStep(cfg.MoveStep),
		server.WithSendQueue(cfg.SendQueue),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	// 管理与监控接口
	mux.HandleFunc("/admin/config", hub.HandleAdminConfig)
	mux.HandleFunc("/admin/state", hub.HandleAdminState)
	mux.HandleFunc("/metrics", hub.HandleMetrics)
	mux.HandleFunc("/schema", server.HandleSchema)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		server.Log.Infof("arena3d listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			server.Log.Fatalf("listen: %v", err)
		}
	}()

	// 优雅退出（Ctrl+C）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	server.Log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		server.Log.Warnf("shutdown: %v", err)
	}
	// Shutdown 不会关闭已升级的 WebSocket，需由 Hub 逐个关闭
	hub.Close()
}
