package api

import (
	"fmt"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/designclub49123/kalakranti/docs"
	v1 "github.com/designclub49123/kalakranti/internal/api/handler/v1"
	"github.com/designclub49123/kalakranti/internal/api/middleware"
	"github.com/designclub49123/kalakranti/internal/config"
	"github.com/designclub49123/kalakranti/internal/repository"
	"github.com/designclub49123/kalakranti/internal/repository/dao"
	"github.com/designclub49123/kalakranti/internal/service"
	"github.com/designclub49123/kalakranti/internal/storage"
)

type Server struct {
	Config *config.Config
	Router *gin.Engine
}

func NewServer(conf *config.Config, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	uSvc := initUserService(db)
	auditSvc := initAuditService(db)

	authHandler := v1.NewAuthHandler(conf.API, initAuthService(db))
	userHandler := v1.NewUserHandler(uSvc)
	eventHandler := v1.NewEventHandler(initEventService(db, auditSvc), uSvc)
	stallHandler := v1.NewStallHandler(initStallService(db, auditSvc), uSvc)
	certificateHandler := v1.NewCertificateHandler(initCertificateService(db, auditSvc), uSvc)
	formHandler := v1.NewFormHandler(initFormService(db), uSvc)
	galleryHandler := s.initGalleryHandler(db, uSvc)
	contactHandler := v1.NewContactHandler(initContactService(db), uSvc)
	communicationHandler := v1.NewCommunicationHandler(initCommunicationService(db), uSvc)
	auditHandler := v1.NewAuditHandler(auditSvc, uSvc)

	s.MountHandlers(
		authHandler,
		userHandler,
		eventHandler,
		stallHandler,
		certificateHandler,
		formHandler,
		galleryHandler,
		contactHandler,
		communicationHandler,
		auditHandler,
	)

	return s
}

func initUserService(db *gorm.DB) *service.UserService {
	return service.NewUserService(repository.NewProfileRepository(dao.NewProfileDAO(db)))
}

func initAuthService(db *gorm.DB) *service.AuthService {
	return service.NewAuthService(repository.NewProfileRepository(dao.NewProfileDAO(db)))
}

func initAuditService(db *gorm.DB) *service.AuditService {
	return service.NewAuditService(repository.NewAuditRepository(dao.NewAuditDAO(db)), zap.L())
}

func initEventService(db *gorm.DB, audit service.AuditRecorder) *service.EventService {
	return service.NewEventService(repository.NewEventRepository(dao.NewEventDAO(db)), audit)
}

func initStallService(db *gorm.DB, audit service.AuditRecorder) *service.StallService {
	uRepo := repository.NewProfileRepository(dao.NewProfileDAO(db))
	stallRepo := repository.NewStallRepository(dao.NewStallDAO(db), uRepo)
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))

	return service.NewStallService(stallRepo, uRepo, eventRepo, audit)
}

func initCertificateService(db *gorm.DB, audit service.AuditRecorder) *service.CertificateService {
	uRepo := repository.NewProfileRepository(dao.NewProfileDAO(db))
	stallRepo := repository.NewStallRepository(dao.NewStallDAO(db), uRepo)
	certRepo := repository.NewCertificateRepository(dao.NewCertificateDAO(db))

	return service.NewCertificateService(certRepo, stallRepo, audit)
}

func initFormService(db *gorm.DB) *service.FormService {
	return service.NewFormService(repository.NewFormRepository(dao.NewFormDAO(db)))
}

func (s *Server) initGalleryHandler(db *gorm.DB, uSvc v1.UserService) *v1.GalleryHandler {
	store, err := storage.NewLocalStore(s.Config.Uploads.Dir, s.Config.Uploads.BaseURL)
	if err != nil {
		panic(fmt.Errorf("storage.NewLocalStore -> %w", err))
	}

	galleryRepo := repository.NewGalleryRepository(dao.NewGalleryDAO(db))
	svc := service.NewGalleryService(galleryRepo, store)

	return v1.NewGalleryHandler(svc, uSvc)
}

func initContactService(db *gorm.DB) *service.ContactService {
	return service.NewContactService(repository.NewContactRepository(dao.NewContactDAO(db)))
}

func initCommunicationService(db *gorm.DB) *service.CommunicationService {
	uRepo := repository.NewProfileRepository(dao.NewProfileDAO(db))
	stallRepo := repository.NewStallRepository(dao.NewStallDAO(db), uRepo)

	return service.NewCommunicationService(stallRepo, uRepo)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	eventHandler *v1.EventHandler,
	stallHandler *v1.StallHandler,
	certificateHandler *v1.CertificateHandler,
	formHandler *v1.FormHandler,
	galleryHandler *v1.GalleryHandler,
	contactHandler *v1.ContactHandler,
	communicationHandler *v1.CommunicationHandler,
	auditHandler *v1.AuditHandler,
) {
	const basePath = "/api/v1"

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", authHandler.HandleSignup)
		public.POST("/auth/login", authHandler.HandleLogin)

		public.GET("/events", eventHandler.HandleListEvents)
		public.GET("/events/open", eventHandler.HandleListOpenEvents)
		public.GET("/events/:eventID", eventHandler.HandleGetEvent)

		public.GET("/gallery", galleryHandler.HandleListImages)

		public.POST("/contact", contactHandler.HandleSubmitContact)

		public.GET("/forms/:formID", formHandler.HandleGetForm)
		public.POST("/forms/:formID/responses", authenticator.OptionalJWT(), formHandler.HandleSubmitResponse)
	}

	protected := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		protected.GET("/users/me", userHandler.HandleGetMe)
		protected.PUT("/users/me", userHandler.HandleUpdateMe)
		protected.GET("/users/:userID", userHandler.HandleGetUser)

		protected.POST("/events", eventHandler.HandleCreateEvent)
		protected.PUT("/events/:eventID", eventHandler.HandleUpdateEvent)
		protected.DELETE("/events/:eventID", eventHandler.HandleDeleteEvent)

		protected.POST("/stalls", stallHandler.HandleRegisterStall)
		protected.GET("/stalls", stallHandler.HandleListStalls)
		protected.GET("/stalls/mine", stallHandler.HandleMyStalls)
		protected.GET("/stalls/:stallID", stallHandler.HandleGetStall)
		protected.POST("/stalls/:stallID/decision", stallHandler.HandleDecideStall)
		protected.POST("/stalls/:stallID/number", stallHandler.HandleAssignStallNumber)

		protected.GET("/certificates/mine", certificateHandler.HandleMyCertificates)
		protected.POST("/certificates/stalls/:stallID", certificateHandler.HandleIssueForStall)
		protected.POST("/certificates/events/:eventID", certificateHandler.HandleIssueForEvent)

		protected.POST("/forms", formHandler.HandleCreateForm)
		protected.GET("/forms", formHandler.HandleListForms)
		protected.PUT("/forms/:formID", formHandler.HandleUpdateForm)
		protected.PATCH("/forms/:formID/active", formHandler.HandleSetFormActive)
		protected.DELETE("/forms/:formID", formHandler.HandleDeleteForm)
		protected.GET("/forms/:formID/responses", formHandler.HandleListResponses)

		protected.POST("/gallery", galleryHandler.HandleUploadImage)
		protected.DELETE("/gallery/:imageID", galleryHandler.HandleDeleteImage)

		protected.GET("/contact", contactHandler.HandleListContacts)

		protected.GET("/communications/recipients", communicationHandler.HandleListRecipients)

		protected.GET("/audit-logs", auditHandler.HandleListAuditLogs)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.Static("/uploads", s.Config.Uploads.Dir)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Kalakranti API"
	docs.SwaggerInfo.Description = "Campus event and stall registration API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
