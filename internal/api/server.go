package api

import (
	"log"

	"github.com/confluencehack/registration_service/config"
	"github.com/confluencehack/registration_service/infra/queue"
	"github.com/confluencehack/registration_service/internal/api/rest/handlers"
	"github.com/confluencehack/registration_service/internal/domain"
	"github.com/confluencehack/registration_service/internal/helper"
	"github.com/confluencehack/registration_service/internal/otp"
	"github.com/confluencehack/registration_service/internal/repository"
	"github.com/confluencehack/registration_service/internal/services"
	"github.com/confluencehack/registration_service/pkg/cloudinary"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New(fiber.Config{
		BodyLimit: cfg.BodyLimitMB * 1024 * 1024,
	})

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	if err := migrate(db); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)

	cld, err := cloudinary.New()
	if err != nil {
		log.Fatalf("cloudinary init error: %v", err)
	}
	up := cloudinary.NewCloudinaryUploader(cld)

	mailer := services.NewMailService(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUsername,
		cfg.SMTPPassword,
		cfg.MailFrom,
		cfg.MailFromName,
	)

	var codes otp.Store
	if cfg.RedisAddr != "" {
		codes = otp.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), otp.DefaultTTL)
		log.Println("otp store: redis")
	} else {
		codes = otp.NewMemoryStore(otp.DefaultTTL)
		log.Println("otp store: in-memory (codes do not survive restart)")
	}

	authHelper := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	regRepo := repository.NewRegistrationRepository(db)

	// ---------- Services ----------
	authSvc := services.NewAuthService(userRepo, codes, mailer, kafkaProducer, authHelper)
	regSvc := services.NewRegistrationService(regRepo, userRepo, up, mailer, kafkaProducer)

	// ---------- Handlers ----------
	handlers.NewAuthHandler(authSvc, authHelper).SetupRoutes(app)
	handlers.NewRegistrationHandler(regSvc).SetupRoutes(app)
	handlers.NewAdminHandler(regSvc).SetupRoutes(app, authHelper, cfg.AdminEmails)

	// ---------- Health / Ops ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/setup-db", func(c *fiber.Ctx) error {
		if err := migrate(db); err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
		}
		return c.SendString("Database Tables Created Successfully!")
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.HackathonRegistration{},
	)
}
