package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	gormMysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/movietalk/feed-client/domain"
	"github.com/movietalk/feed-client/internal/config"
	"github.com/movietalk/feed-client/internal/repository"
	"github.com/movietalk/feed-client/internal/repository/api"
	"github.com/movietalk/feed-client/internal/repository/cache"
	"github.com/movietalk/feed-client/internal/repository/memory"
	mysqlRepo "github.com/movietalk/feed-client/internal/repository/mysql"
	redisRepo "github.com/movietalk/feed-client/internal/repository/redis"
	"github.com/movietalk/feed-client/internal/rest"
	"github.com/movietalk/feed-client/internal/rest/middleware"
	"github.com/movietalk/feed-client/internal/usecase/account"
	"github.com/movietalk/feed-client/internal/usecase/comment"
	"github.com/movietalk/feed-client/internal/usecase/feed"
	"github.com/movietalk/feed-client/internal/usecase/like"
	"github.com/movietalk/feed-client/internal/workers"
)

const (
	dbMaxRetry         = 10
	dbRetryIntervalSec = 2
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}
	cfg.ConfigureLogging()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// prepare session store
	store, closeStore := openSessionStore(ctx, cfg)
	defer closeStore()
	session := repository.NewSessionRepository(store)

	// prepare backend client
	client, err := api.NewClient(cfg.APIBaseURL, session,
		api.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		api.WithRateLimit(cfg.APIRateLimit, cfg.APIRateBurst),
	)
	if err != nil {
		logrus.Fatalf("failed to build api client: %v", err)
	}
	postRepo := api.NewPostRepository(client)
	commentRepo := api.NewCommentRepository(client)
	authRepo := api.NewAuthRepository(client)

	// Start worker
	notifier := workers.NewNoticeWorker(cfg.NoticeBuffer, workers.DefaultNoticeTTL)
	go notifier.Start(ctx)

	// Build service Layer
	feedCache := cache.NewFeedCache()
	feedSvc := feed.NewService(cfg.Scope, postRepo, commentRepo, authRepo, feedCache, client, notifier, cfg.CountConcurrency)
	likeSvc := like.NewService(postRepo, feedCache, feedSvc, notifier)
	commentSvc := comment.NewService(commentRepo, feedCache)
	accountSvc := account.NewService(authRepo, session, feedSvc)

	// initial load; a failure is kept in the feed view with a retry action
	loadCtx, cancelLoad := context.WithTimeout(ctx, cfg.ContextTimeout)
	if err := feedSvc.Load(loadCtx); err != nil {
		logrus.Warnf("initial feed load failed: %v", err)
	}
	cancelLoad()

	// prepare gin
	route := gin.New()
	route.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS())
	route.Use(middleware.SetRequestContextWithTimeout(cfg.ContextTimeout))

	feedHandler := rest.NewFeedHandler(feedSvc, likeSvc)
	commentHandler := rest.NewCommentHandler(commentSvc, feedSvc)
	sessionHandler := rest.NewSessionHandler(accountSvc, feedSvc)
	noticeHandler := rest.NewNoticeHandler(notifier)

	// Register routes
	route.GET("/feed", feedHandler.View)
	route.POST("/feed/reload", feedHandler.Reload)
	route.POST("/posts", feedHandler.CreatePost)
	route.POST("/posts/:id/like", feedHandler.ToggleLike)
	route.POST("/posts/:id/comments", commentHandler.CreateComment)

	route.GET("/dialog", commentHandler.GetDialog)
	route.POST("/dialog", commentHandler.OpenDialog)
	route.POST("/dialog/retry", commentHandler.RetryDialog)
	route.DELETE("/dialog", commentHandler.CloseDialog)

	route.POST("/session/login", sessionHandler.Login)
	route.POST("/session/google", sessionHandler.LoginWithGoogle)
	route.POST("/session/register", sessionHandler.Register)
	route.DELETE("/session", sessionHandler.Logout)

	route.GET("/notices", noticeHandler.Recent)

	// Start Server
	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: route,
	}
	go func() {
		logrus.Infof("Server is running on %s", cfg.ServerAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("listen: %s", err)
		}
	}()

	// shutdown
	<-ctx.Done()
	logrus.Info("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}
	logrus.Info("Server exiting")
}

// openSessionStore picks the persistent token store named by SESSION_BACKEND.
func openSessionStore(ctx context.Context, cfg config.Config) (domain.Session, func()) {
	switch cfg.SessionBackend {
	case config.SessionRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.CacheHost + ":" + cfg.CachePort,
			Password: cfg.CachePass,
			DB:       cfg.CacheDB,
		})
		if _, err := client.Ping(ctx).Result(); err != nil {
			logrus.Fatalf("failed to open connection to cache: %v", err)
		}
		return redisRepo.NewSessionStore(client, cfg.SessionTTL), func() {
			if err := client.Close(); err != nil {
				logrus.Errorf("got error when closing the cache connection: %v", err)
			}
		}

	case config.SessionMySQL:
		db := openDatabase(cfg)
		if err := mysqlRepo.Migrate(db); err != nil {
			logrus.Fatalf("failed to migrate session table: %v", err)
		}
		return mysqlRepo.NewSessionStore(db), func() {
			sqlDB, err := db.DB()
			if err != nil {
				logrus.Errorf("got error when getting sql.DB from gorm.DB: %v", err)
				return
			}
			if err := sqlDB.Close(); err != nil {
				logrus.Errorf("got error when closing the DB connection: %v", err)
			}
		}

	default:
		return memory.NewSession(), func() {}
	}
}

func openDatabase(cfg config.Config) *gorm.DB {
	dsn := mysqlRepo.DSN(cfg.DatabaseHost, cfg.DatabasePort, cfg.DatabaseUser, cfg.DatabasePass, cfg.DatabaseName)

	var (
		db  *gorm.DB
		err error
	)
	for i := range dbMaxRetry {
		db, err = gorm.Open(gormMysql.Open(dsn), &gorm.Config{Logger: gormLogger.Default.LogMode(gormLogger.Warn)})
		if err != nil {
			logrus.Warnf("failed to open connection to database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
		} else {
			sqlDB, dbErr := db.DB()
			if dbErr != nil {
				err = dbErr
				logrus.Warnf("failed to get sql.DB from gorm.DB (attempt %d/%d): %v", i+1, dbMaxRetry, err)
			} else if err = sqlDB.Ping(); err == nil {
				return db
			} else {
				logrus.Warnf("failed to ping database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
				_ = sqlDB.Close()
			}
		}
		time.Sleep(dbRetryIntervalSec * time.Second)
	}

	logrus.Fatalf("could not connect to database after retries: %v", err)
	return nil
}
