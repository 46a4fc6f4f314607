package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"pronet/internal/blob"
	"pronet/internal/config"
	"pronet/internal/database"
	"pronet/internal/domain/account"
	"pronet/internal/domain/comment"
	"pronet/internal/domain/entitlement"
	"pronet/internal/domain/like"
	"pronet/internal/domain/media"
	"pronet/internal/domain/notification"
	"pronet/internal/domain/post"
	"pronet/internal/middleware"
	jwtsvc "pronet/internal/pkg/jwt"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := migrate(db); err != nil {
		log.Fatal(err)
	}

	r, err := buildRouter(db, cfg)
	if err != nil {
		log.Fatal(err)
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&account.Account{},
		&entitlement.Entitlement{},
		&media.Media{},
		&post.Post{},
		&post.PostMedia{},
		&comment.Comment{},
		&like.Like{},
		&notification.Notification{},
	)
}

func buildRouter(db *gorm.DB, cfg *config.Runtime) (*gin.Engine, error) {
	store := blob.NewLocalStore(cfg.BlobBaseDir, cfg.BlobURLPath, cfg.BlobSignSecret)
	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	accountRepo := account.NewRepository(db)

	entitlementSvc := entitlement.NewService(entitlement.NewRepository(db), accountRepo, cfg.FreePostLimit)
	mediaSvc := media.NewService(media.NewRepository(db), store, cfg.BlobURLTTL)

	postRepo := post.NewRepository(db)

	hub := notification.NewHub()
	notificationSvc := notification.NewService(notification.NewRepository(db), hub)
	dispatcher := notification.NewDispatcher(notificationSvc, postRepo)

	likeSvc := like.NewService(db, postRepo, dispatcher)
	postSvc := post.NewService(postRepo, accountRepo, entitlementSvc, mediaSvc, likeSvc)
	commentSvc := comment.NewService(comment.NewRepository(db), postRepo, accountRepo, dispatcher)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	protected := v1.Group("/")
	protected.Use(middleware.RequireAuth(j))

	blob.RegisterRoutes(v1, blob.NewHandler(store))
	post.NewHandler(postSvc).RegisterRoutes(v1, protected)
	comment.NewHandler(commentSvc).RegisterRoutes(v1, protected)
	like.NewHandler(likeSvc).RegisterRoutes(v1, protected)
	notification.NewHandler(notificationSvc, hub).RegisterRoutes(protected)

	return r, nil
}
