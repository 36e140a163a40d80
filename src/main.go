package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/Adribv/Placement-Site-Backend/docs"
	"github.com/Adribv/Placement-Site-Backend/src/controllers"
	"github.com/Adribv/Placement-Site-Backend/src/database"
	"github.com/Adribv/Placement-Site-Backend/src/jobs"
	"github.com/Adribv/Placement-Site-Backend/src/repository"
	"github.com/Adribv/Placement-Site-Backend/src/routes"
	"github.com/Adribv/Placement-Site-Backend/src/services/admins"
	"github.com/Adribv/Placement-Site-Backend/src/services/leaderboard"
	"github.com/Adribv/Placement-Site-Backend/src/services/modules"
	"github.com/Adribv/Placement-Site-Backend/src/services/progress"
	"github.com/Adribv/Placement-Site-Backend/src/services/staffs"
	"github.com/Adribv/Placement-Site-Backend/src/services/students"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
)

// @title Placement Training API
// @version 1.0
// @description Backend for the placement training program: students, staff, training modules, attendance and exam scores.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := database.ConnectMongoDB(); err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.DisconnectMongoDB()

	database.InitRedis()
	database.InitAsynq()

	adminRepo := repository.NewAdminRepository(database.AdminCollection)
	studentRepo := repository.NewStudentRepository(database.StudentCollection)
	moduleRepo := repository.NewModuleRepository(database.ModuleCollection)
	staffRepo := repository.NewStaffRepository(database.StaffCollection)
	progressRepo := repository.NewProgressRepository(database.ProgressCollection)

	adminSvc := admins.NewService(adminRepo)
	progressSvc := progress.NewService(progressRepo, studentRepo, moduleRepo)
	studentSvc := students.NewService(studentRepo, progressRepo, moduleRepo)
	moduleSvc := modules.NewService(moduleRepo, studentRepo, progressSvc, staffRepo)
	staffSvc := staffs.NewService(staffRepo, moduleRepo, studentRepo)
	leaderboardSvc := leaderboard.NewService(progressRepo, studentRepo, database.RedisClient)

	app := fiber.New()

	origins := os.Getenv("ALLOWED_ORIGINS")
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Static("/uploads", "./uploads")

	routes.InitRoutes(app, routes.Controllers{
		Admin:      controllers.NewAdminController(adminSvc, studentSvc, moduleSvc, progressSvc, leaderboardSvc),
		Staff:      controllers.NewStaffController(staffSvc, progressSvc),
		Student:    controllers.NewStudentController(studentSvc, progressSvc, leaderboardSvc),
		Attendance: controllers.NewAttendanceController(progressSvc),
	})

	go jobs.StartWorker()

	port := os.Getenv("PORT")
	if port == "" {
		port = "3500"
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down...")
		_ = app.Shutdown()
	}()

	log.Println("Server is running on port " + port)
	if err := app.Listen(fmt.Sprintf(":%s", port)); err != nil {
		log.Fatal(err)
	}
}
