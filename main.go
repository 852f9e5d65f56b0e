package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/camden-git/rosterbackend/config"
	"github.com/camden-git/rosterbackend/database"
	"github.com/camden-git/rosterbackend/handlers"
	"github.com/camden-git/rosterbackend/repository"
	"github.com/camden-git/rosterbackend/services"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("FATAL: Failed to get underlying sql.DB: %v", err)
	}
	defer sqlDB.Close()

	sequenceRepo := repository.NewSequenceRepository(db, cfg.SequenceFloor)
	groupRepo := repository.NewGroupRepository(db)
	personRepo := repository.NewPersonRepository(db, sequenceRepo)
	orderingRepo := repository.NewOrderingRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	socialRepo := repository.NewSocialRepository(db)

	rosterService := services.NewRosterService(db, sqlDB, groupRepo, personRepo, familyRepo, socialRepo)
	importService := services.NewImportService(db, sqlDB, groupRepo, personRepo, orderingRepo)

	log.Printf("Using database: %s", cfg.DatabasePath)
	log.Printf("Import default group: %s", cfg.ImportDefaultGroup)

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"}, //TODO: configurable
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	groupHandler := &handlers.GroupHandler{Groups: groupRepo, Roster: rosterService}
	personHandler := &handlers.PersonHandler{People: personRepo, Roster: rosterService}
	orderingHandler := &handlers.OrderingHandler{Ordering: orderingRepo}
	familyHandler := &handlers.FamilyHandler{Family: familyRepo}
	socialHandler := &handlers.SocialHandler{Socials: socialRepo}
	sequenceHandler := &handlers.SequenceHandler{Sequences: sequenceRepo}
	importHandler := &handlers.ImportHandler{Importer: importService}

	r.Route("/api", func(r chi.Router) {
		r.Get("/roster", groupHandler.GetFullRoster)

		r.Route("/groups", func(r chi.Router) {
			r.Post("/", groupHandler.CreateGroup)
			r.Get("/", groupHandler.ListGroups)
			r.Route("/{group_name}", func(r chi.Router) {
				r.Delete("/", groupHandler.DeleteGroup)
				r.Get("/roster", groupHandler.GetGroupRoster)
			})
		})

		r.Route("/people", func(r chi.Router) {
			r.Post("/", personHandler.CreatePerson)
			r.Get("/lookup", personHandler.LookupPerson)
			r.Get("/search", personHandler.SearchPeople)
			r.Route("/{nickname}", func(r chi.Router) {
				r.Delete("/", personHandler.DeletePerson)
				r.Put("/name", personHandler.UpdateName)
				r.Put("/profile", personHandler.UpdateProfile)
				r.Put("/family", familyHandler.SetParent)
				r.Get("/family", familyHandler.GetFamily)
				r.Put("/socials", socialHandler.SetSocial)
				r.Delete("/socials/{platform}", socialHandler.RemoveSocial)
			})
		})

		r.Route("/order", func(r chi.Router) {
			r.Post("/swap", orderingHandler.Swap)
			r.Post("/move_after", orderingHandler.MoveAfter)
		})

		r.Route("/excluded", func(r chi.Router) {
			r.Get("/", sequenceHandler.ListExcluded)
			r.Post("/", sequenceHandler.Exclude)
			r.Delete("/{number}", sequenceHandler.Unexclude)
		})

		r.Post("/import", importHandler.Import)
		r.Get("/export", importHandler.Export)
	})

	log.Printf("Starting server on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		log.Fatalf("FATAL: Server failed: %v", err)
	}
}
