package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/smilepoint/clinic-api/config"
	"github.com/smilepoint/clinic-api/controllers"
	dentistctl "github.com/smilepoint/clinic-api/controllers/dentist"
	patientctl "github.com/smilepoint/clinic-api/controllers/patient"
	"github.com/smilepoint/clinic-api/cron"
	"github.com/smilepoint/clinic-api/db"
	"github.com/smilepoint/clinic-api/identity"
	"github.com/smilepoint/clinic-api/middleware"
	"github.com/smilepoint/clinic-api/routes"
	"github.com/smilepoint/clinic-api/session"
	"github.com/smilepoint/clinic-api/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close(conn)
	if err := db.Migrate(conn); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}
	log.Println("✅ Database connection established successfully!")

	sessions, err := session.New(cfg.RedisAddr)
	if err != nil {
		log.Fatal(err)
	}
	defer sessions.Close()
	log.Println("✅ Connected to Redis")

	identityClient := identity.NewClient(cfg.IdentityURL, cfg.IdentityAnonKey)

	serverKey, insecureFallback := cfg.ServerKey()
	if insecureFallback {
		log.Println("Warning: IDENTITY_SERVICE_ROLE not set — falling back to the anon key for local development (insecure).")
	}
	privilegedIdentity := identity.NewClient(cfg.IdentityURL, serverKey)

	uploader, err := utils.NewUploader(cfg)
	if err != nil {
		log.Fatal("Failed to initialise Cloudinary: ", err)
	}

	inFlight := utils.NewInFlightSet()

	authCtl := &controllers.AuthController{
		DB:       conn,
		Identity: identityClient,
		Sessions: sessions,
		Secret:   cfg.JWTSecret,
	}
	patientsCtl := &controllers.PatientController{DB: conn}
	dentistsCtl := &controllers.DentistController{DB: conn}
	treatmentsCtl := &controllers.TreatmentController{DB: conn}
	appointmentsCtl := &controllers.AppointmentController{DB: conn}
	paymentsCtl := &controllers.PaymentController{DB: conn}
	inventoryCtl := &controllers.InventoryController{
		DB:               conn,
		Identity:         privilegedIdentity,
		MissingServerKey: serverKey == "",
	}
	supplyCtl := &controllers.SupplyRequestController{DB: conn}
	dashboardCtl := &controllers.DashboardController{DB: conn}
	dentistPortal := &dentistctl.Controller{DB: conn, InFlight: inFlight}
	patientPortal := &patientctl.Controller{DB: conn, InFlight: inFlight, Uploader: uploader}

	mailer := utils.NewMailer(cfg)
	scheduler, err := cron.Start(conn, mailer)
	if err != nil {
		log.Fatal(err)
	}
	defer scheduler.Stop()

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("SmilePoint Clinic API")
	})

	protected := middleware.Protected(cfg.JWTSecret, sessions)
	routes.SetupAuthRoutes(app, authCtl, protected)
	routes.SetupCatalogRoutes(app, patientsCtl, dentistsCtl, treatmentsCtl, protected)
	routes.SetupAppointmentRoutes(app, appointmentsCtl, protected)
	routes.SetupPaymentRoutes(app, paymentsCtl, protected)
	routes.SetupInventoryRoutes(app, inventoryCtl, supplyCtl, protected)
	routes.SetupDentistRoutes(app, dentistPortal, protected)
	routes.SetupPatientRoutes(app, patientPortal, protected)
	routes.SetupDashboardRoutes(app, dashboardCtl, protected)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
