package handler

import (
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"massg/internal/app/chat"
	"massg/internal/configs"
	"massg/internal/pkg/auth"
	"massg/internal/pkg/limiter"
	"massg/internal/pkg/logx"
	"massg/internal/pkg/resp"
)

const (
	AuthRate  = 1
	AuthBurst = 10
	WSRate    = 0.5
	WSBurst   = 10

	// UploadsURLPrefix is where the local storage driver's files are served.
	UploadsURLPrefix = "/uploads"
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// The returned stop function releases the rate limiters' background sweepers.
func Router(deps *AppDeps) (http.Handler, func()) {
	authLimiter := limiter.NewIPRateLimiter(rate.Limit(AuthRate), AuthBurst)
	wsLimiter := limiter.NewIPRateLimiter(rate.Limit(WSRate), WSBurst)

	gateway := chat.NewGateway(deps.Authenticator, deps.Messages, deps.Registry, OriginChecker(deps.Config))

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]any{
			"status":   "ok",
			"channels": deps.Registry.Count(),
		})
	})

	r.Route("/api", func(api chi.Router) {
		api.With(authLimiter.Middleware).Post("/register", HandleRegister(deps))
		api.With(authLimiter.Middleware).Post("/login", HandleLogin(deps))
		api.With(auth.RequireToken(deps.Authenticator)).Post("/upload", HandleUpload(deps))
	})

	r.With(wsLimiter.Middleware).Get("/ws", gateway.ServeHTTP)

	if deps.Config.StorageDriver == configs.StorageLocal {
		fs := http.StripPrefix(UploadsURLPrefix+"/", http.FileServer(noListingFS{http.Dir(deps.Config.UploadsDir)}))
		r.Get(UploadsURLPrefix+"/*", fs.ServeHTTP)
	}

	stop := func() {
		authLimiter.Stop()
		wsLimiter.Stop()
	}

	return r, stop
}

// noListingFS hides directory listings and dotfiles (in-flight uploads) from the file server.
type noListingFS struct {
	fs http.FileSystem
}

func (n noListingFS) Open(name string) (http.File, error) {
	base := name[strings.LastIndex(name, "/")+1:]
	if base == "" || strings.HasPrefix(base, ".") {
		return nil, os.ErrNotExist
	}

	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, os.ErrNotExist
	}

	return f, nil
}
