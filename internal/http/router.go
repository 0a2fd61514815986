package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/stock-ahora/api-sales/internal/http/handlers"
	logmw "github.com/stock-ahora/api-sales/internal/http/middleware"
	"github.com/stock-ahora/api-sales/internal/service/ingest"
	"github.com/stock-ahora/api-sales/internal/service/sales"
)

const APIBasePath = "/api"
const SalesBasePath = APIBasePath + "/sales"
const AdminImportPath = APIBasePath + "/admin/import"
const HealthPath = "/health"
const MetricsPath = "/metrics"

type Deps struct {
	Sales       sales.SalesService
	Importer    ingest.ImportService
	Import      ingest.Config
	AdminImport bool
	CORSOrigins []string
	Log         *zap.Logger
}

func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, logmw.Log(d.Log.Named("http")), middleware.Recoverer)
	r.Use(corsHandler(d.CORSOrigins))

	initHealthRoutes(r, handlers.NewStatusHandler(d.Log))
	initSalesRoutes(r, &handlers.SalesHandler{Service: d.Sales, Log: d.Log})
	r.Method(http.MethodGet, MetricsPath, promhttp.Handler())

	if d.AdminImport && d.Importer != nil {
		initAdminRoutes(r, &handlers.AdminHandler{Importer: d.Importer, Config: d.Import, Log: d.Log})
	}

	return r
}

// corsHandler allows every method and header. Credentials are only allowed
// for an explicit origin list.
func corsHandler(origins []string) func(http.Handler) http.Handler {
	wildcard := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			wildcard = true
		}
	}
	if wildcard {
		origins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: !wildcard,
		MaxAge:           300,
	})
}

func initHealthRoutes(r *chi.Mux, h *handlers.StatusHandler) {
	r.Get(HealthPath, h.Health)
}

// initSalesRoutes serves both /api/sales and /api/sales/.
func initSalesRoutes(r *chi.Mux, h *handlers.SalesHandler) {
	r.Route(SalesBasePath, func(r chi.Router) {
		r.Get("/", h.List)
	})
}

func initAdminRoutes(r *chi.Mux, h *handlers.AdminHandler) {
	r.Post(AdminImportPath, h.Import)
}
