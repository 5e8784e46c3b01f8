package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"golang.org/x/time/rate"

	"github.com/jltacademy/backend/core"
	"github.com/jltacademy/backend/core/course"
	"github.com/jltacademy/backend/core/slider"
	"github.com/jltacademy/backend/core/user"
	"github.com/jltacademy/backend/core/webinar"
)

type (
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		UserSvc    *user.Service
		CourseSvc  *course.Service
		WebinarSvc *webinar.Service
		SliderSvc  *slider.Service
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps         ServerDeps
		app          *echo.Echo
		errChan      chan error
		shutdownChan chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:         deps,
		app:          echo.New(),
		errChan:      make(chan error, 1),
		shutdownChan: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.Use(middleware.Secure())
	if !conf.TestMode {
		s.app.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(float64(conf.Server.RateLimitMaxRequests) / conf.Server.RateLimitWindow.Seconds()),
				Burst:     conf.Server.RateLimitMaxRequests,
				ExpiresIn: conf.Server.RateLimitWindow,
			},
		)))
	}
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{conf.FrontendURL},
		AllowCredentials: true,
	}))
	// uploads carry their own per-entity ceilings; only plain bodies are capped here
	s.app.Use(middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
		Skipper: func(ctx echo.Context) bool {
			return strings.HasPrefix(ctx.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
		},
		Limit: "10M",
	}))

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.Static("/uploads", conf.UploadDir)

	api := s.app.Group("/api")
	api.GET("/health", health)

	jwt := middleware.JWTWithConfig(newJWTConfig(conf))
	admin := adminMiddleware(s.deps.UserSvc)

	registerAuthAPI(api, jwt, admin, conf, s.deps.UserSvc)
	registerCourseAPI(api, jwt, admin, s.deps.CourseSvc)
	registerWebinarAPI(api, jwt, admin, s.deps.WebinarSvc)
	registerSliderAPI(api, jwt, admin, s.deps.SliderSvc)
}

func (s *server) Start() {
	signal.Notify(s.shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	s.errChan <- s.app.Start(s.deps.Conf.Server.Addr)
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errChan
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdownChan
}

func (s *server) signalShutdown() {
	s.shutdownChan <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{
		"status":    "OK",
		"message":   "JLT Academy API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
