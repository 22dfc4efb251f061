package routes

import (
	"learnhub/backend/config"
	"learnhub/backend/controllers"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/repository"
	"learnhub/backend/storage"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// multipartOverhead leaves room for boundaries and text fields on top of the
// largest accepted video.
const multipartOverhead = 1 << 20

// NewApp builds the fiber app with the global middleware and every route.
func NewApp(db *gorm.DB, cfg *config.Config, log *zap.SugaredLogger) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    int(cfg.MaxUploadSize) + multipartOverhead,
		ErrorHandler: utils.FiberErrorHandler,
	})

	// Middleware. The logger wraps recover so panics still get an access line.
	app.Use(middleware.LoggingMiddleware(log))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	SetupRoutes(app, db, cfg, log)
	return app
}

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, log *zap.SugaredLogger) {
	userRepo := repository.NewUserRepository(db, log)
	courseRepo := repository.NewCourseRepository(db, log)
	sectionRepo := repository.NewSectionRepository(db, log)
	reviewRepo := repository.NewReviewRepository(db, log)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	authorOnly := middleware.RequireRole(models.RoleAuthor)
	learnerOnly := middleware.RequireRole(models.RoleLearner)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Welcome to the learning platform API")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			return utils.Error(c, fiber.StatusServiceUnavailable, "Database unavailable")
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Uploaded videos, read-only
	app.Static(cfg.VideoURLPrefix, cfg.VideoStoragePath, fiber.Static{Browse: false})

	// User routes
	authController := controllers.NewAuthController(userRepo, cfg, log)
	userController := controllers.NewUserController(userRepo, courseRepo)
	users := app.Group("/users")
	users.Post("/register", authController.Register)
	users.Post("/login", authController.Login)
	users.Get("/me", authMiddleware, userController.GetProfile)

	// Courses routes
	coursesController := controllers.NewCoursesController(courseRepo, log)
	courseAuthor := middleware.CourseAuthorGuard(cfg, courseRepo, "id")
	courses := app.Group("/courses", authMiddleware)
	courses.Get("/", coursesController.GetCourses)
	courses.Get("/enrolled", learnerOnly, coursesController.GetEnrolledCourses)
	courses.Get("/:id", coursesController.GetCourse)
	courses.Post("/", authorOnly, coursesController.CreateCourse)
	courses.Put("/:id", courseAuthor, coursesController.UpdateCourse)
	courses.Delete("/:id", courseAuthor, coursesController.DeleteCourse)
	courses.Post("/:id/enroll", learnerOnly, coursesController.EnrollCourse)

	// Sections routes
	sectionsController := controllers.NewSectionsController(sectionRepo, courseRepo, storage.NewVideoStore(cfg, log), cfg, log)
	sections := app.Group("/sections", authMiddleware)
	sections.Post("/", authorOnly, sectionsController.CreateSection)
	sections.Post("/upload-video", authorOnly, sectionsController.UploadVideo)
	sections.Get("/:courseId", middleware.EnrollmentGuard(courseRepo, "courseId"), sectionsController.GetSectionsByCourse)
	sections.Put("/:id", authorOnly, sectionsController.UpdateSection)
	sections.Delete("/:id", authorOnly, sectionsController.DeleteSection)

	// Reviews routes
	reviewsController := controllers.NewReviewsController(reviewRepo)
	reviews := app.Group("/reviews", authMiddleware)
	reviews.Post("/", learnerOnly, reviewsController.AddReview)
	reviews.Get("/:id", reviewsController.GetCourseReviews)
	reviews.Put("/:id", learnerOnly, reviewsController.UpdateReview)
	reviews.Delete("/:id", learnerOnly, reviewsController.DeleteReview)
}
