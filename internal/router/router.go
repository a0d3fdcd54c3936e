package router

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	mem "pet-boarding/internal/adapters/storage/memory"
	pg "pet-boarding/internal/adapters/storage/postgres"
	lite "pet-boarding/internal/adapters/storage/sqlite"
	"pet-boarding/internal/domain/boarding"
	"pet-boarding/internal/domain/customers"
	"pet-boarding/internal/domain/pets"
	"pet-boarding/internal/middleware"
	"pet-boarding/internal/platform/logger"
)

type Options struct {
	// Storage selection, first match wins: an explicit DB handle, a
	// Postgres DSN, a sqlite file path, and finally in-memory.
	DB          *sql.DB
	DatabaseDSN string
	SQLitePath  string

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.New(logger.Options{})
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		custRepo  customers.Repository
		petRepo   pets.Repository
		boardRepo boarding.Repository
	)

	db := opts.DB
	if db == nil && opts.DatabaseDSN != "" {
		opened, err := pg.Open(opts.DatabaseDSN)
		if err != nil {
			log.Warn("postgres unavailable, falling back", map[string]any{"error": err.Error()})
		} else {
			db = opened
		}
	}

	switch {
	case db != nil:
		if err := pg.EnsureSchema(context.Background(), db); err != nil {
			log.Error("schema bootstrap failed", map[string]any{"error": err.Error()})
		}
		custRepo = pg.NewCustomersRepo(db)
		petRepo = pg.NewPetsRepo(db)
		boardRepo = pg.NewBoardingRepo(db)
		log.Info("storage: postgres", nil)

	case opts.SQLitePath != "":
		store, err := lite.Open(opts.SQLitePath)
		if err != nil {
			log.Error("sqlite unavailable, falling back to memory", map[string]any{"error": err.Error()})
			memStore := mem.NewStore()
			custRepo, petRepo, boardRepo = memStore.Customers(), memStore.Pets(), memStore.Boarding()
			break
		}
		custRepo = store.Customers()
		petRepo = store.Pets()
		boardRepo = store.Boarding()
		log.Info("storage: sqlite", map[string]any{"path": opts.SQLitePath})

	default:
		store := mem.NewStore()
		custRepo = store.Customers()
		petRepo = store.Pets()
		boardRepo = store.Boarding()
		log.Info("storage: memory", nil)
	}

	custSvc := customers.NewService(custRepo)
	petsSvc := pets.NewService(petRepo)
	boardSvc := boarding.NewService(boardRepo, petsSvc)

	customers.RegisterRoutes(r, custSvc)
	pets.RegisterRoutes(r, petsSvc)
	boarding.RegisterRoutes(r, boardSvc, custSvc, petsSvc)

	return r
}
