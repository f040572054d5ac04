package router

import (
	"database/sql"
	"net/http"

	_ "animal-registry/docs"
	jwtauth "animal-registry/internal/adapters/auth/jwt"
	"animal-registry/internal/adapters/auth/bcrypt"
	mem "animal-registry/internal/adapters/storage/memory"
	pg "animal-registry/internal/adapters/storage/postgres"
	"animal-registry/internal/domain/animals"
	"animal-registry/internal/domain/species"
	"animal-registry/internal/domain/users"
	"animal-registry/internal/middleware"
	"animal-registry/internal/platform/logger"
	"animal-registry/internal/platform/metrics"
	"animal-registry/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev, header X-Debug-Username)

	// Si vienen nil se arman defaults: bcrypt y un jwt con secreto efímero.
	TokenIssuer    auth.TokenIssuer
	PasswordHasher auth.PasswordHasher

	// Opcional: si viene, usa Postgres. Si no, in-memory. El router no lee
	// el entorno; cmd/api resuelve DSN y secretos vía config.Load.
	DB *sql.DB

	Logger        logger.Logger
	CORSOrigins   []string
	ProtectWrites bool // exige claims en POST/PUT/PATCH/DELETE de animals y species
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))
	r.Use(metrics.Middleware)
	r.Use(corsHandler(opts.CORSOrigins))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		animalRepo  animals.Repository
		speciesRepo species.Repository
		userRepo    users.Repository
	)

	db := opts.DB
	if db != nil {
		animalRepo = pg.NewAnimalsRepo(db)
		speciesRepo = pg.NewSpeciesRepo(db)
		userRepo = pg.NewUsersRepo(db)
	} else {
		store := mem.NewDB()
		animalRepo = mem.NewAnimalRepo(store)
		speciesRepo = mem.NewSpeciesRepo(store)
		userRepo = mem.NewUserRepo(store)
	}

	hasher := opts.PasswordHasher
	if hasher == nil {
		hasher = bcrypt.NewHasher(0)
	}
	issuer := opts.TokenIssuer
	if issuer == nil {
		log.Warn("no token issuer configured, using an ephemeral secret", nil)
		issuer = jwtauth.NewManager(jwtauth.Config{Secret: uuid.NewString()})
	}

	var guard func(http.Handler) http.Handler
	if opts.ProtectWrites {
		guard = middleware.RequireClaims
	}

	// Services por módulo
	speciesSvc := species.NewService(speciesRepo)
	animalsSvc := animals.NewService(animalRepo, speciesRepo)
	usersSvc := users.NewService(userRepo, hasher, issuer)

	// Rutas por módulo. /species va antes que /{animalID} sólo por legibilidad:
	// chi prioriza segmentos estáticos.
	r.Route("/api/v1/animals", func(ar chi.Router) {
		species.RegisterRoutes(ar, speciesSvc, log, guard)
		animals.RegisterRoutes(ar, animalsSvc, log, guard)
	})
	users.RegisterRoutes(r, usersSvc, log)

	return r
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}).Handler
}
