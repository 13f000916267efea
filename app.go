// @title           Spreadsheet URL Checker API
// @version         1.0
// @description     Checks the reachability of every URL in an uploaded spreadsheet.

// @contact.name   API Support
// @contact.email  info@bentech.app

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:10290
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/vit0-9/sheet_url_checker/docs"
	"github.com/vit0-9/sheet_url_checker/handlers"
	"github.com/vit0-9/sheet_url_checker/pkg/config"
	"github.com/vit0-9/sheet_url_checker/pkg/logging"
	"github.com/vit0-9/sheet_url_checker/pkg/utils"
)

// App encapsulates all the components of the application
type App struct {
	Router          *gin.Engine
	URLCheckHandler *handlers.URLCheckHandlers
	StaticHandlers  *handlers.StaticHandlers
	HealthHandler   *handlers.HealthHandler

	server *http.Server
}

// NewApp creates and initializes a new application instance
func NewApp(cfg *config.Config) (*App, error) {
	checker := utils.NewChecker(cfg.Check.Timeout)
	annotator := utils.NewAnnotator(checker, cfg.Check.Workers)

	router := gin.New()
	router.Use(gin.Recovery(), logging.Middleware())
	router.MaxMultipartMemory = cfg.Upload.MaxFileSize

	app := &App{
		Router:          router,
		URLCheckHandler: handlers.NewURLCheckHandlers(checker, annotator, cfg.Upload.MaxFileSize),
		StaticHandlers:  handlers.NewStaticHandlers(cfg.Server.IndexPath),
		HealthHandler:   handlers.NewHealthHandler(),
	}
	app.server = &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router,
	}

	app.setupRoutes()
	return app, nil
}

// setupRoutes defines all the application routes
func (app *App) setupRoutes() {
	app.Router.GET("/", app.StaticHandlers.IndexHandler)
	app.Router.GET("/favicon.ico", app.StaticHandlers.FaviconHandler)
	app.Router.POST("/upload", app.URLCheckHandler.UploadHandler)

	apiV1 := app.Router.Group("/api/v1")
	{
		apiV1.GET("/health", app.HealthHandler.HealthCheckHandler)
		apiV1.GET("/check", app.URLCheckHandler.CheckURLHandler)
	}

	app.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
}

// Start runs the HTTP server until Shutdown is called.
func (app *App) Start() error {
	slog.Info("server starting", "addr", app.server.Addr)
	if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight uploads.
func (app *App) Shutdown(ctx context.Context) error {
	return app.server.Shutdown(ctx)
}
