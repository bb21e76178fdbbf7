package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vitalsync/vitalsync/internal/advisor"
	"github.com/vitalsync/vitalsync/internal/api/handlers"
	"github.com/vitalsync/vitalsync/internal/api/middleware"
	"github.com/vitalsync/vitalsync/internal/auth"
	"github.com/vitalsync/vitalsync/internal/cache"
	"github.com/vitalsync/vitalsync/internal/config"
	"github.com/vitalsync/vitalsync/internal/document"
	"github.com/vitalsync/vitalsync/internal/llm"
	"github.com/vitalsync/vitalsync/internal/prescription"
	"github.com/vitalsync/vitalsync/internal/queue"
	"github.com/vitalsync/vitalsync/internal/storage"
	"github.com/vitalsync/vitalsync/internal/store"
	"github.com/vitalsync/vitalsync/internal/terminology"
)

type Router struct {
	mux   *chi.Mux
	db    *mongo.Database
	redis *redis.Client
	cfg   *config.Config
	jwt   *auth.JWTMiddleware
	llmGW llm.Gateway
	files *storage.LocalStorage
}

func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, files *storage.LocalStorage) *Router {
	return &Router{
		mux:   chi.NewRouter(),
		db:    db,
		redis: rdb,
		cfg:   cfg,
		jwt:   auth.NewJWTMiddleware(cfg.Auth.JWTSecret),
		llmGW: llm.NewGateway(cfg.LLM),
		files: files,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(rt.cfg.Server.AllowedOrigins))

	rl := middleware.NewRateLimiter(100, 200)
	r.Use(rl.Limit)

	// Health endpoints (no auth)
	health := handlers.NewHealthHandler(rt.db, rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Uploaded files are served verbatim; prescription images never land
	// here for long since the pipeline deletes them after OCR.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(rt.files.Dir())))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	// Digitization pipeline
	pre := prescription.NewImagePreprocessor(rt.cfg.Pipeline.TargetWidth)
	ocr := prescription.NewTesseractOCR(rt.cfg.OCR)
	var lookup terminology.Lookup = terminology.NewRxNormClient(rt.cfg.Terminology)
	if rt.redis != nil {
		lookup = terminology.NewCachedLookup(lookup, cache.NewCache(rt.redis), rt.cfg.Terminology.CacheTTL)
	}
	normalizer := prescription.NewNormalizer(lookup, rt.cfg.Terminology.MaxConcurrent)
	structurer := prescription.NewStructurer(rt.llmGW, rt.cfg.LLM.DefaultModel)
	prescStore := store.NewPrescriptionStore(rt.db)
	pipeline := prescription.NewPipeline(pre, ocr, normalizer, structurer, prescStore, rt.cfg.Pipeline.StrictOCR)

	// Supporting services
	queueClient := queue.NewClient(rt.cfg.Redis)
	docSvc := document.NewService(store.NewDocumentStore(rt.db), rt.files, queueClient)
	advisorSvc := advisor.NewService(rt.llmGW, rt.cfg.LLM.DefaultModel)
	identifier := advisor.NewMedicineIdentifier(pre, ocr, rt.llmGW, rt.cfg.LLM.DefaultModel)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.jwt.Authenticate)

		prescH := handlers.NewPrescriptionHandler(pipeline, rt.files, prescStore, rt.cfg.Upload.MaxBytes)
		r.Route("/prescriptions", func(r chi.Router) {
			r.Post("/upload", prescH.Upload)
			r.Get("/", prescH.List)
			r.Get("/{id}", prescH.Get)
		})

		medH := handlers.NewMedicineHandler(identifier, rt.files, rt.cfg.Upload.MaxBytes)
		r.Post("/medicines/identify", medH.Identify)

		advH := handlers.NewAdvisorHandler(advisorSvc)
		r.Post("/symptom-checker/identify", advH.SymptomCheck)
		r.Post("/chat", advH.Chat)

		vitalH := handlers.NewVitalHandler(store.NewVitalStore(rt.db))
		r.Route("/vitals", func(r chi.Router) {
			r.Post("/", vitalH.Create)
			r.Get("/", vitalH.List)
			r.Delete("/{id}", vitalH.Delete)
		})

		symptomH := handlers.NewSymptomHandler(store.NewSymptomStore(rt.db))
		r.Route("/symptoms", func(r chi.Router) {
			r.Post("/", symptomH.Create)
			r.Get("/", symptomH.List)
			r.Delete("/{id}", symptomH.Delete)
		})

		lifestyleH := handlers.NewLifestyleHandler(store.NewActivityStore(rt.db), store.NewSleepStore(rt.db))
		r.Route("/lifestyle", func(r chi.Router) {
			r.Route("/activity", func(r chi.Router) {
				r.Post("/", lifestyleH.CreateActivity)
				r.Get("/", lifestyleH.ListActivity)
				r.Delete("/{id}", lifestyleH.DeleteActivity)
			})
			r.Route("/sleep", func(r chi.Router) {
				r.Post("/", lifestyleH.CreateSleep)
				r.Get("/", lifestyleH.ListSleep)
				r.Delete("/{id}", lifestyleH.DeleteSleep)
			})
		})

		reminderH := handlers.NewReminderHandler(store.NewReminderStore(rt.db))
		r.Route("/reminders", func(r chi.Router) {
			r.Post("/", reminderH.Create)
			r.Get("/", reminderH.List)
			r.Delete("/{id}", reminderH.Delete)
		})

		docH := handlers.NewDocumentHandler(docSvc, rt.cfg.Upload.MaxBytes)
		r.Route("/documents", func(r chi.Router) {
			r.Post("/", docH.Upload)
			r.Get("/", docH.List)
			r.Delete("/{id}", docH.Delete)
		})

		profileH := handlers.NewProfileHandler(store.NewProfileStore(rt.db))
		r.Route("/profile", func(r chi.Router) {
			r.Get("/", profileH.Get)
			r.Put("/", profileH.Put)
		})
	})

	return r
}
