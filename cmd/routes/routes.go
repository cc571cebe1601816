package routes

import (
	"path/filepath"

	"github.com/zjoart/mapcard/internal/config"

	"github.com/zjoart/mapcard/internal/postcards"

	"net/http"

	"github.com/zjoart/mapcard/internal/middleware"

	"github.com/zjoart/mapcard/internal/docs"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/gorilla/mux"
)

//	@title			Mapcard API
//	@version		1.0
//	@description	Backend API for Mapcard, a city map postcard generator.
//	@termsOfService	https://example.com/terms/

//	@contact.name	API Support
//	@contact.url	https://example.com/support
//	@contact.email	support@mapcard.app

//	@license.name	MIT License
//	@license.url	https://opensource.org/licenses/MIT

//	@host		localhost:8080
//	@BasePath	/

// @schemes	http https
func SetUpRoutes(svc *postcards.Service, cfg *config.Config) http.Handler {

	allowedOrigins := []string{
		"*",
	}

	// Create a new Gorilla Mux router
	router := mux.NewRouter()

	//Use cors middleware
	router.Use(middleware.CorsMiddleware(allowedOrigins))

	//Tag and log every request
	router.Use(middleware.RequestLogger())

	// Dynamically set Swagger host and schemes from config
	if cfg.Swagger.Host != "" {
		docs.SwaggerInfo.Host = cfg.Swagger.Host
	}
	if len(cfg.Swagger.Schemes) > 0 {
		docs.SwaggerInfo.Schemes = cfg.Swagger.Schemes
	}

	if cfg.AppEnv != "production" {
		// Serve Swagger UI only in non-production environments
		router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

		// Optional: Redirect /swagger to /swagger/index.html
		router.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
		})
	}

	//Handle health
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Service is up and running"))
	}).Methods("GET")

	// Static assets; generated postcards live under /static/postcards/
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))

	// Landing page
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(cfg.StaticDir, "index.html"))
	}).Methods("GET")

	// Register postcard feature routes
	// keep feature based routing in internal/postcards
	postcards.RegisterRoutes(router, svc)

	return router
}
