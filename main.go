package main

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/mager/moodscale/config"
	"github.com/mager/moodscale/handler/auth"
	"github.com/mager/moodscale/handler/health"
	personalityHandler "github.com/mager/moodscale/handler/personality"
	profileHandler "github.com/mager/moodscale/handler/profile"
	"github.com/mager/moodscale/insight"
	"github.com/mager/moodscale/logger"
	"github.com/mager/moodscale/middleware"
	"github.com/mager/moodscale/musicbrainz"
	"github.com/mager/moodscale/profiler"
	"github.com/mager/moodscale/spotify"
	"github.com/mager/moodscale/token"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Route is an http.Handler that knows the mux pattern
// under which it will be registered.
type Route interface {
	http.Handler

	// Pattern reports the path at which this is registered.
	Pattern() string
}

//	@title			Moodscale
//	@version		1.0
//	@description	Personality profiles from Spotify listening history

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

// @host		localhost:8080
// @BasePath	/
func main() {
	fx.New(appOptions()...).Run()
}

func appOptions() []fx.Option {
	return []fx.Option{
		fx.Provide(
			NewHTTPServer,
			fx.Annotate(NewRouter, fx.ParamTags(``, ``, `group:"routes"`)),

			config.Options,
			logger.Options,
			spotify.Options,
			musicbrainz.Options,
			token.Options,
			insight.Options,
			profiler.Options,

			AsRoute(health.NewHealthHandler),
			AsRoute(auth.NewAuthLoginHandler),
			AsRoute(auth.NewAuthCallbackHandler),
			AsRoute(auth.NewDisconnectHandler),
			AsRoute(personalityHandler.NewPersonalityHandler),
			AsRoute(profileHandler.NewProfileHandler),
			AsRoute(profileHandler.NewStreamHandler),
		),
		fx.Invoke(func(*http.Server) {}),
	}
}

func NewHTTPServer(lc fx.Lifecycle, cfg config.Config, log *zap.SugaredLogger, router *mux.Router) *http.Server {
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Infow("Starting HTTP server", "addr", srv.Addr)
			go srv.Serve(ln)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
	return srv
}

// NewRouter registers every route. Profile routes call Spotify and OpenAI,
// so they are rate limited per client IP.
func NewRouter(cfg config.Config, log *zap.SugaredLogger, routes []Route) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID(log), middleware.JSON)

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute)
	limiter.TrustForwarded = cfg.TrustProxy
	for _, route := range routes {
		var h http.Handler = route
		if strings.HasPrefix(route.Pattern(), "/profile") {
			h = limiter.Wrap(h)
		}
		r.Handle(route.Pattern(), h)
	}
	return r
}

// AsRoute annotates the given constructor to state that
// it provides a route to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(Route)),
		fx.ResultTags(`group:"routes"`),
	)
}
