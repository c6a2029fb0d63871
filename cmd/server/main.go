package main

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/naembfh/staff-schedule/internal/auth"
	"github.com/naembfh/staff-schedule/internal/config"
	"github.com/naembfh/staff-schedule/internal/database"
	"github.com/naembfh/staff-schedule/internal/handlers"
	"github.com/naembfh/staff-schedule/internal/middleware"
	"github.com/naembfh/staff-schedule/web"
)

var Version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := cfg.Logger

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		logger.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.Seed(seedCtx, cfg.SeedFile); err != nil {
		cancel()
		logger.Fatalf("Failed to seed database: %v", err)
	}
	cancel()

	var authSvc *auth.Service
	if cfg.AuthEnabled() {
		authSvc, err = auth.NewService(cfg.JWTSecret, "staff-schedule", cfg.EditorPassword)
		if err != nil {
			logger.Fatalf("Failed to set up auth: %v", err)
		}
		logger.Println("🔒 Editor login enabled")
	}

	r := gin.Default()

	tmpl := template.Must(template.ParseFS(web.FS, "templates/*.html"))
	r.SetHTMLTemplate(tmpl)

	staticFS, err := fs.Sub(web.FS, "static")
	if err != nil {
		logger.Fatalf("Failed to mount static assets: %v", err)
	}
	r.StaticFS("/static", http.FS(staticFS))

	r.Use(middleware.RequestID())
	r.Use(middleware.WithConfig(cfg))
	r.Use(middleware.WithDB(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		if err := db.Ping(2 * time.Second); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "version": Version})
	})

	if cfg.AuthEnabled() {
		r.GET("/login", handlers.LoginPage(authSvc))
		r.POST("/login", handlers.LoginPage(authSvc))
		r.GET("/logout", handlers.Logout)
	}

	// Read-only pages and exports stay open; only writes sit behind the
	// editor gate.
	r.GET("/", handlers.Home)
	r.GET("/staff", handlers.StaffPage)
	r.GET("/slots", handlers.SlotsPage)
	r.GET("/theme", handlers.ThemePage)
	r.GET("/week/:start", handlers.WeekEditor)
	r.GET("/week/:start/pdf", handlers.WeekPDF)
	r.GET("/week/:start/png", handlers.WeekPNG)

	edit := r.Group("/", middleware.RequireEditor(authSvc))

	edit.POST("/", handlers.OpenWeek)
	edit.POST("/staff", handlers.StaffPage)
	edit.POST("/staff/:id/delete", handlers.StaffDelete)
	edit.POST("/slots", handlers.SlotsPage)
	edit.POST("/slots/:id/delete", handlers.SlotDelete)
	edit.POST("/theme", handlers.ThemePage)
	edit.POST("/week/:start", handlers.WeekEditor)

	edit.POST("/api/week/:start/cell/update", handlers.CellUpdate)
	edit.POST("/api/week/:start/cell/block", handlers.CellBlock)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		logger.Printf("🚀 Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Println("🛑 Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Println("✅ Server exited")
}
