package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bunaihills/shop-service/internal/app"
	"github.com/bunaihills/shop-service/internal/config"
	"github.com/bunaihills/shop-service/internal/events"
	"github.com/bunaihills/shop-service/internal/handler"
	"github.com/bunaihills/shop-service/internal/mailer"
	"github.com/bunaihills/shop-service/internal/postgres"
	"github.com/bunaihills/shop-service/internal/repo"
	"github.com/bunaihills/shop-service/internal/service"
	"github.com/bunaihills/shop-service/internal/uploads"
	"github.com/bunaihills/shop-service/pkg/cache"
	"github.com/bunaihills/shop-service/pkg/trm"

	"github.com/joho/godotenv"
)

func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	db, err := postgres.New(conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")

	ordersRepo := repo.NewOrdersRepo(db)
	productsRepo := repo.NewProductsRepo(db)
	galleryRepo := repo.NewGalleryRepo(db)
	blogRepo := repo.NewBlogRepo(db)
	contactRepo := repo.NewContactRepo(db)

	txManager := trm.NewManager(db)
	orderCache := cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)

	mail := mailer.New(conf.SMTP, conf.ShopName)
	if !mail.Configured() {
		logger.Warn("mail transport unconfigured, notifications disabled")
	}

	uploader, err := uploads.New(conf.Cloudinary)
	panicIfErr("failed to init uploader", err)
	if !uploader.Configured() {
		logger.Warn("image host unconfigured, uploads disabled")
	}

	publisher := events.NewPublisher(conf.Kafka)

	notifier := service.NewOrderNotifier(logger, mail, conf.ShopName)
	orderService := service.NewOrderService(logger, txManager, ordersRepo, orderCache, notifier, publisher)

	adminEmail := conf.SMTP.ContactEmail
	if adminEmail == "" {
		adminEmail = conf.SMTP.From
	}

	application := app.New(logger, conf)
	application.SetHttpHandlers(
		handler.NewHealthHandler(conf.ShopName),
		handler.NewOrdersHandler(logger, orderService),
		handler.NewProductsHandler(logger, productsRepo, uploader),
		handler.NewGalleryHandler(logger, galleryRepo, uploader),
		handler.NewBlogHandler(logger, blogRepo),
		handler.NewContactHandler(logger, contactRepo, mail, conf.ShopName, adminEmail),
	)
	application.SetStarters(orderCache)
	application.SetClosers(publisher)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	application.Start(ctx)
	<-ctx.Done()
	panicIfErr("failed to stop app", application.Stop())
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}
