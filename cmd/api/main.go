package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/eximdesk/exim-backend-go/internal/config"
	"github.com/eximdesk/exim-backend-go/internal/domain/kpi"
	"github.com/eximdesk/exim-backend-go/internal/fixtures"
	appHTTP "github.com/eximdesk/exim-backend-go/internal/handler/http"
	"github.com/eximdesk/exim-backend-go/internal/pkg/cron"
	"github.com/eximdesk/exim-backend-go/internal/pkg/database"
	"github.com/eximdesk/exim-backend-go/internal/pkg/email"
	"github.com/eximdesk/exim-backend-go/internal/pkg/jwt"
	"github.com/eximdesk/exim-backend-go/internal/pkg/storage"
	"github.com/eximdesk/exim-backend-go/internal/repository/postgresql"
	auditService "github.com/eximdesk/exim-backend-go/internal/service/audit"
	serviceAuth "github.com/eximdesk/exim-backend-go/internal/service/auth"
	feedbackService "github.com/eximdesk/exim-backend-go/internal/service/feedback"
	"github.com/eximdesk/exim-backend-go/internal/service/file"
	kpiService "github.com/eximdesk/exim-backend-go/internal/service/kpi"
	openPointService "github.com/eximdesk/exim-backend-go/internal/service/openpoints"
	operationsService "github.com/eximdesk/exim-backend-go/internal/service/operations"
	releaseNoteService "github.com/eximdesk/exim-backend-go/internal/service/releasenote"
	userService "github.com/eximdesk/exim-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	templateRepo := postgresql.NewKPITemplateRepository(db)
	sheetRepo := postgresql.NewKPISheetRepository(db)
	projectRepo := postgresql.NewOpenPointProjectRepository(db)
	pointRepo := postgresql.NewOpenPointRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)
	feedbackRepo := postgresql.NewFeedbackRepository(db)
	noteRepo := postgresql.NewReleaseNoteRepository(db)
	operationsRepo := postgresql.NewOperationsRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.SessionExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	fileService := file.NewFileService(fileStorage)
	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	usersService := userService.NewUserService(userRepo)
	kpiSvc := kpiService.NewKPIService(sheetRepo, templateRepo, userRepo, auditRepo, emailService)
	openPointSvc := openPointService.NewOpenPointService(projectRepo, pointRepo, userRepo)
	auditSvc := auditService.NewAuditService(auditRepo)
	feedbackSvc := feedbackService.NewFeedbackService(feedbackRepo)
	noteSvc := releaseNoteService.NewReleaseNoteService(noteRepo)
	operationsSvc := operationsService.NewOperationsService(operationsRepo)

	if err := seedDefaultTemplate(context.Background(), templateRepo); err != nil {
		log.Fatal("Failed to seed default KPI template:", err)
	}

	scheduler := cron.NewScheduler()
	cron.NewKPIJobs(kpiSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, JWTService, appHTTP.Handlers{
		Auth:        appHTTP.NewAuthHandler(JWTService, authService),
		User:        appHTTP.NewUserHandler(usersService),
		KPI:         appHTTP.NewKPIHandler(kpiSvc),
		OpenPoint:   appHTTP.NewOpenPointHandler(openPointSvc),
		Audit:       appHTTP.NewAuditHandler(auditSvc),
		Feedback:    appHTTP.NewFeedbackHandler(feedbackSvc),
		ReleaseNote: appHTTP.NewReleaseNoteHandler(noteSvc),
		Operations:  appHTTP.NewOperationsHandler(operationsSvc),
		Upload:      appHTTP.NewUploadHandler(fileService),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

// seedDefaultTemplate makes sure at least one KPI template exists.
func seedDefaultTemplate(ctx context.Context, templates kpi.TemplateRepository) error {
	_, err := templates.GetByName(ctx, fixtures.DefaultKPITemplateName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, kpi.ErrTemplateNotFound) {
		return err
	}

	_, err = templates.Create(ctx, kpi.Template{
		Name:      fixtures.DefaultKPITemplateName,
		Rows:      fixtures.GetDefaultKPITemplateRows(),
		CreatedBy: "system",
	})
	return err
}
