package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/scolarest/cantine-api/docs"
	v1 "github.com/scolarest/cantine-api/internal/api/handler/v1"
	"github.com/scolarest/cantine-api/internal/api/middleware"
	"github.com/scolarest/cantine-api/internal/config"
	"github.com/scolarest/cantine-api/internal/repository"
	"github.com/scolarest/cantine-api/internal/repository/dao"
	"github.com/scolarest/cantine-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	audit := initAuditService(db)
	authSvc := initAuthService(db)

	authHandler := v1.NewAuthHandler(s.Config.API, authSvc, audit)
	classeHandler := initClasseHandler(db, audit)
	eleveHandler := initEleveHandler(db, audit)
	menuHandler := initMenuHandler(db, audit)
	repasHandler := initRepasHandler(db, audit)
	inscriptionHandler := initInscriptionHandler(db, audit)
	factureHandler := initFactureHandler(db, conf.Cantine, audit)
	profilHandler := initProfilHandler(db, audit)
	rapportHandler := initRapportHandler(db, audit)
	rechercheHandler := initRechercheHandler(db)
	backupHandler := v1.NewBackupHandler(service.NewBackupService(dao.NewBackupDAO(db), conf.Cantine.BackupDir), audit)
	journalHandler := v1.NewJournalHandler(initAuditService(db))

	s.MountHandlers(authSvc, &handlers{
		auth:        authHandler,
		classe:      classeHandler,
		eleve:       eleveHandler,
		menu:        menuHandler,
		repas:       repasHandler,
		inscription: inscriptionHandler,
		facture:     factureHandler,
		profil:      profilHandler,
		rapport:     rapportHandler,
		recherche:   rechercheHandler,
		backup:      backupHandler,
		journal:     journalHandler,
	})

	return s
}

type handlers struct {
	auth        *v1.AuthHandler
	classe      *v1.ClasseHandler
	eleve       *v1.EleveHandler
	menu        *v1.MenuHandler
	repas       *v1.RepasHandler
	inscription *v1.InscriptionHandler
	facture     *v1.FactureHandler
	profil      *v1.ProfilHandler
	rapport     *v1.RapportHandler
	recherche   *v1.RechercheHandler
	backup      *v1.BackupHandler
	journal     *v1.JournalHandler
}

func initAuditService(db *gorm.DB) *service.AuditService {
	return service.NewAuditService(repository.NewActionLogRepository(dao.NewActionLogDAO(db)))
}

func initAuthService(db *gorm.DB) *service.AuthService {
	users := repository.NewUserRepository(dao.NewUserDAO(db))
	profils := repository.NewProfilRepository(dao.NewProfilDAO(db))

	return service.NewAuthService(users, profils)
}

func initClasseHandler(db *gorm.DB, audit *service.AuditService) *v1.ClasseHandler {
	repo := repository.NewClasseRepository(dao.NewClasseDAO(db))
	svc := service.NewClasseService(repo)

	return v1.NewClasseHandler(svc, audit)
}

func initEleveHandler(db *gorm.DB, audit *service.AuditService) *v1.EleveHandler {
	repo := repository.NewEleveRepository(dao.NewEleveDAO(db))
	classes := repository.NewClasseRepository(dao.NewClasseDAO(db))
	svc := service.NewEleveService(repo, classes)

	return v1.NewEleveHandler(svc, audit)
}

func initMenuHandler(db *gorm.DB, audit *service.AuditService) *v1.MenuHandler {
	repo := repository.NewMenuRepository(dao.NewMenuDAO(db))
	svc := service.NewMenuService(repo)

	return v1.NewMenuHandler(svc, audit)
}

func initRepasHandler(db *gorm.DB, audit *service.AuditService) *v1.RepasHandler {
	repo := repository.NewRepasRepository(dao.NewRepasDAO(db))
	eleves := repository.NewEleveRepository(dao.NewEleveDAO(db))
	menus := repository.NewMenuRepository(dao.NewMenuDAO(db))
	svc := service.NewRepasService(repo, eleves, menus)

	return v1.NewRepasHandler(svc, audit)
}

func initInscriptionHandler(db *gorm.DB, audit *service.AuditService) *v1.InscriptionHandler {
	repo := repository.NewInscriptionRepository(dao.NewInscriptionDAO(db))
	eleves := repository.NewEleveRepository(dao.NewEleveDAO(db))
	svc := service.NewInscriptionService(repo, eleves)

	return v1.NewInscriptionHandler(svc, audit)
}

func initFactureHandler(db *gorm.DB, conf *config.CantineConfig, audit *service.AuditService) *v1.FactureHandler {
	repo := repository.NewFactureRepository(dao.NewFactureDAO(db))
	repas := service.NewRepasService(
		repository.NewRepasRepository(dao.NewRepasDAO(db)),
		repository.NewEleveRepository(dao.NewEleveDAO(db)),
		repository.NewMenuRepository(dao.NewMenuDAO(db)),
	)
	svc := service.NewFactureService(repo, repas)

	return v1.NewFactureHandler(conf, svc, audit)
}

func initProfilHandler(db *gorm.DB, audit *service.AuditService) *v1.ProfilHandler {
	svc := service.NewProfilService(
		repository.NewProfilRepository(dao.NewProfilDAO(db)),
		repository.NewEleveRepository(dao.NewEleveDAO(db)),
		repository.NewRepasRepository(dao.NewRepasDAO(db)),
		repository.NewMenuRepository(dao.NewMenuDAO(db)),
		repository.NewInscriptionRepository(dao.NewInscriptionDAO(db)),
		repository.NewFactureRepository(dao.NewFactureDAO(db)),
	)

	return v1.NewProfilHandler(svc, audit)
}

func initRapportHandler(db *gorm.DB, audit *service.AuditService) *v1.RapportHandler {
	svc := service.NewRapportService(repository.NewRepasRepository(dao.NewRepasDAO(db)))

	return v1.NewRapportHandler(svc, audit)
}

func initRechercheHandler(db *gorm.DB) *v1.RechercheHandler {
	svc := service.NewRechercheService(
		repository.NewEleveRepository(dao.NewEleveDAO(db)),
		repository.NewMenuRepository(dao.NewMenuDAO(db)),
		repository.NewFactureRepository(dao.NewFactureDAO(db)),
	)

	return v1.NewRechercheHandler(svc)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(resolver middleware.ActorResolver, h *handlers) {
	const basePath = "/api/v1"

	verifyJWT := middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()
	gate := middleware.NewActorGate(resolver)

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/login", h.auth.HandleLogin)
	}

	authed := s.Router.Group(basePath, verifyJWT)
	{
		authed.POST("/auth/refresh", h.auth.HandleRefresh)
		authed.POST("/auth/change_password", h.auth.HandleChangePassword)
	}

	// Read access for anyone holding a canteen profile.
	profile := s.Router.Group(basePath, verifyJWT, gate.RequireProfile())
	{
		profile.GET("/profil/mon_profil", h.profil.HandleMonProfil)
		profile.GET("/profil/dashboard", h.profil.HandleDashboard)

		profile.GET("/classes", h.classe.HandleListClasses)
		profile.GET("/classes/:id", h.classe.HandleGetClasse)

		profile.GET("/eleves", h.eleve.HandleListEleves)
		profile.GET("/eleves/inscrits_ce_mois", h.eleve.HandleListElevesInscrits)
		profile.GET("/eleves/export", h.eleve.HandleExportEleves)
		profile.GET("/eleves/:id", h.eleve.HandleGetEleve)

		profile.GET("/menus", h.menu.HandleListMenus)
		profile.GET("/menus/aujourdhui", h.menu.HandleGetMenuDuJour)
		profile.GET("/menus/mois", h.menu.HandleListMenusDuMois)
		profile.GET("/menus/calendrier", h.menu.HandleGetCalendrier)
		profile.GET("/menus/:id", h.menu.HandleGetMenu)

		profile.GET("/repas", h.repas.HandleListRepas)
		profile.GET("/repas/aujourdhui", h.repas.HandleListRepasDuJour)
		profile.GET("/repas/statistiques", h.repas.HandleGetStatistiques)
		profile.GET("/repas/decompte_journalier", h.repas.HandleGetDecompteJournalier)
		profile.GET("/repas/decompte_mensuel", h.repas.HandleGetDecompteMensuel)
		profile.GET("/repas/:id", h.repas.HandleGetRepas)

		profile.GET("/inscriptions", h.inscription.HandleListInscriptions)
		profile.GET("/inscriptions/:id", h.inscription.HandleGetInscription)

		profile.GET("/factures", h.facture.HandleListFactures)
		profile.GET("/factures/:id", h.facture.HandleGetFacture)
		profile.GET("/factures/:id/pdf", h.facture.HandleExportFacturePDF)

		profile.GET("/recherche", h.recherche.HandleRecherche)
	}

	// Daily operations, open to active providers and administrators.
	prestataire := s.Router.Group(basePath, verifyJWT, gate.RequirePrestataire())
	{
		prestataire.POST("/repas", h.repas.HandleMarquerRepas)
		prestataire.POST("/repas/marquer_multiples", h.repas.HandleMarquerMultiples)
		prestataire.PUT("/repas/:id", h.repas.HandleUpdateRepas)
		prestataire.DELETE("/repas/:id", h.repas.HandleDeleteRepas)

		prestataire.POST("/menus", h.menu.HandleCreateMenu)
		prestataire.PUT("/menus/:id", h.menu.HandleUpdateMenu)
		prestataire.DELETE("/menus/:id", h.menu.HandleDeleteMenu)

		prestataire.POST("/inscriptions", h.inscription.HandleCreateInscription)
		prestataire.POST("/inscriptions/groupe", h.inscription.HandleInscrireGroupe)
		prestataire.PUT("/inscriptions/:id", h.inscription.HandleUpdateInscription)
		prestataire.DELETE("/inscriptions/:id", h.inscription.HandleDeleteInscription)

		prestataire.POST("/factures", h.facture.HandleCreateFacture)
		prestataire.POST("/factures/generer", h.facture.HandleGenererFacture)
		prestataire.PUT("/factures/:id", h.facture.HandleUpdateFacture)
		prestataire.PUT("/factures/:id/statut", h.facture.HandleChangerStatut)

		prestataire.POST("/rapports", h.rapport.HandleGenererRapport)
	}

	// Administration.
	admin := s.Router.Group(basePath, verifyJWT, gate.RequireAdmin())
	{
		admin.POST("/auth/register", h.auth.HandleRegister)

		admin.POST("/classes", h.classe.HandleCreateClasse)
		admin.PUT("/classes/:id", h.classe.HandleUpdateClasse)
		admin.DELETE("/classes/:id", h.classe.HandleDeleteClasse)

		admin.POST("/eleves", h.eleve.HandleCreateEleve)
		admin.POST("/eleves/import", h.eleve.HandleImportEleves)
		admin.PUT("/eleves/:id", h.eleve.HandleUpdateEleve)
		admin.DELETE("/eleves/:id", h.eleve.HandleDeleteEleve)

		admin.DELETE("/factures/:id", h.facture.HandleDeleteFacture)

		admin.GET("/prestataires", h.profil.HandleListPrestataires)
		// Creating a provider is the register use case: user + profile in one step.
		admin.POST("/prestataires", h.auth.HandleRegister)
		admin.GET("/prestataires/:id", h.profil.HandleGetPrestataire)
		admin.PUT("/prestataires/:id", h.profil.HandleUpdatePrestataire)
		admin.DELETE("/prestataires/:id", h.profil.HandleDeletePrestataire)

		admin.GET("/backup", h.backup.HandleListBackups)
		admin.POST("/backup", h.backup.HandleCreateBackup)
		admin.GET("/backup/export", h.backup.HandleExportBackup)
		admin.POST("/backup/restore", h.backup.HandleRestoreBackup)
		admin.POST("/backup/import", h.backup.HandleImportBackup)

		admin.GET("/journal", h.journal.HandleListJournal)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "API cantine scolaire"
	docs.SwaggerInfo.Description = "School canteen administration API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
