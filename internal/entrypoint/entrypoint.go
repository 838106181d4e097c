package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcatalog/internal/cache"
	"github.com/mrlokans/bookcatalog/internal/config"
	"github.com/mrlokans/bookcatalog/internal/database"
	"github.com/mrlokans/bookcatalog/internal/database/books"
	http_controllers "github.com/mrlokans/bookcatalog/internal/http"
	"github.com/mrlokans/bookcatalog/internal/scheduler"
	"github.com/mrlokans/bookcatalog/internal/session"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Book Catalog v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	store := books.NewRepository(db.DB)

	// Pick the response cache backend: redis when configured, the
	// in-process map otherwise
	var responseCache cache.ResponseCache
	var sweeper *scheduler.CacheSweeper
	var redisCache *cache.RedisCache
	if cfg.Cache.Enabled {
		if cfg.Cache.RedisURL != "" {
			redisCache, err = cache.NewRedisCache(cfg.Cache.RedisURL)
			if err != nil {
				log.Fatalf("Failed to initialize redis cache: %v", err)
			}
			responseCache = redisCache
			log.Printf("Response cache backend: redis (%s)", cfg.Cache.RedisURL)
		} else {
			memoryCache := cache.NewMemoryCache()
			responseCache = memoryCache
			sweeper = scheduler.NewCacheSweeper(memoryCache, cfg.Cache.SweepSchedule)
			if err := sweeper.Start(); err != nil {
				log.Fatalf("Failed to start cache sweeper: %v", err)
			}
			log.Printf("Response cache backend: memory")
		}
	} else {
		log.Printf("Response cache disabled")
	}

	// Session manager stores flash messages in the app database
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessionManager, err := session.NewManager(sqlDB, cfg.Session)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	// CSRF secret: configured or generated per process
	secret := cfg.Session.Secret
	if secret == "" {
		secret, err = session.GenerateCSRFSecret()
		if err != nil {
			log.Fatalf("Failed to generate CSRF secret: %v", err)
		}
		log.Printf("Generated session secret (set SESSION_SECRET to persist)")
	}
	csrfSecret, err := hex.DecodeString(secret)
	if err != nil {
		// Not hex, use as raw bytes
		csrfSecret = []byte(secret)
	}

	routerCfg := http_controllers.RouterConfig{
		Store:         store,
		Database:      db,
		Sessions:      sessionManager,
		Cache:         responseCache,
		CacheTTL:      cfg.Cache.TTL,
		PageSize:      cfg.Catalog.PageSize,
		QueryTimeout:  cfg.Catalog.QueryTimeout,
		TemplatesPath: cfg.UI.TemplatesPath,
		StaticPath:    cfg.UI.StaticPath,
		CSRFSecret:    csrfSecret,
		SecureCookies: cfg.Session.SecureCookies,
		Version:       version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if sweeper != nil {
			sweeper.Stop()
		}
		if redisCache != nil {
			if err := redisCache.Close(); err != nil {
				log.Printf("Error closing redis cache: %v", err)
			}
		}
	}

	Serve(router, cfg, onShutdown)
}
