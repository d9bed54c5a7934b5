package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Pjt727/roster/config"
	"github.com/Pjt727/roster/data"
	"github.com/Pjt727/roster/server/account"
	"github.com/Pjt727/roster/server/components"
	"github.com/Pjt727/roster/server/gallery"
	"github.com/Pjt727/roster/server/records"
	"github.com/Pjt727/roster/server/view"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// Deps is everything the router hands out to the route groups
type Deps struct {
	Records            records.Store
	Accounts           *account.Handler
	Images             *gallery.LocalStorage
	StaticDir          string
	CorsAllowedOrigins []string
	TrustProxyHeaders  bool
	Logger             *log.Entry
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	if deps.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: deps.Logger, NoColor: true}))
	r.Use(middleware.Recoverer)
	r.Use(view.TrackRoute)
	r.Use(deps.Accounts.LoadSession)

	r.Group(func(r chi.Router) {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: deps.CorsAllowedOrigins,
			AllowedMethods: []string{"GET"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300, // Maximum age for preflight requests
		}).Handler)
		fileServer(r, "/static", http.Dir(deps.StaticDir))
		fileServer(r, "/images/uploaded", http.Dir(deps.Images.Dir()))
	})

	r.Get("/", templ.Handler(components.Home()).ServeHTTP)
	r.Get("/about", templ.Handler(components.About()).ServeHTTP)

	var accountRoutes chi.Router = r
	account.PopulateAccountRoutes(&accountRoutes, deps.Accounts)

	r.Group(func(r chi.Router) {
		r.Use(account.EnsureLoggedIn)
		records.PopulateRecordRoutes(&r, deps.Records, deps.Logger)
		gallery.PopulateGalleryRoutes(&r, deps.Images, deps.Logger)
	})

	// a known path with the wrong method is still a page that does not exist
	notFound := templ.Handler(components.NotFound(), templ.WithStatus(http.StatusNotFound)).ServeHTTP
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)
	return r
}

// Serve blocks until ctx is cancelled or the listener fails. The database is
// migrated and reachable before any request is accepted
func Serve(ctx context.Context, cfg config.Config) error {
	logger := log.WithField("service", "roster")

	store, err := data.Initialize(ctx, cfg.DbConn)
	if err != nil {
		return fmt.Errorf("could not initialize the database: %w", err)
	}
	defer store.Close()

	sessions, closeSessions, err := newSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSessions()

	images, err := gallery.NewLocalStorage(cfg.UploadDir, logger)
	if err != nil {
		return err
	}

	router := NewRouter(Deps{
		Records:            store,
		Accounts:           account.NewHandler(account.NewUsers(store), sessions, cfg.CookieSecure, logger),
		Images:             images,
		StaticDir:          cfg.StaticDir,
		CorsAllowedOrigins: cfg.CorsAllowedOrigins,
		TrustProxyHeaders:  cfg.TrustProxyHeaders,
		Logger:             logger,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		logger.Infof("Running server on :%d", cfg.Port)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newSessionStore(ctx context.Context, cfg config.Config) (account.SessionStore, func(), error) {
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		store, err := account.NewRedisStore(ctx, cfg.RedisAddress, cfg.RedisPassword, cfg.SessionDuration, cfg.SessionActiveDuration)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	default:
		return account.NewMemoryStore(cfg.SessionDuration, cfg.SessionActiveDuration), func() {}, nil
	}
}

// https://github.com/go-chi/chi/blob/master/_examples/fileserver/main.go
func fileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit any URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", http.StatusMovedPermanently).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, r *http.Request) {
		rctx := chi.RouteContext(r.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, r)
	})
}
