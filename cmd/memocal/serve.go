package main

import (
	"context"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oliverisaac/memocal/calendar"
	"github.com/oliverisaac/memocal/controller"
	"github.com/oliverisaac/memocal/memostore"
	"github.com/oliverisaac/memocal/revalidate"
	"github.com/oliverisaac/memocal/static"
	"github.com/oliverisaac/memocal/types"
	"github.com/oliverisaac/memocal/views"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calendar web app",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.ValidateServe(); err != nil {
			return err
		}

		broker := revalidate.NewBroker(revalidate.WithLogger(logrus.WithField("component", "revalidate")))
		db, store, err := openStore(cfg, broker)
		if err != nil {
			return err
		}
		defer closeDB(db)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app := newApplication(cfg, store, broker)
		app.load(ctx)

		e := newServer(app)
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := e.Shutdown(shutdownCtx); err != nil {
				logrus.Error(errors.Wrap(err, "shutting down server"))
			}
		}()

		logrus.Infof("Listening on %s", cfg.ListenAddr)
		if err := e.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serving")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// application is everything a handler needs; one per process.
type application struct {
	cfg     types.Config
	store   *memostore.Store
	ctrl    *controller.Controller
	broker  *revalidate.Broker
	now     func() time.Time
	startup *toastBuffer
}

func newApplication(cfg types.Config, store *memostore.Store, broker *revalidate.Broker) *application {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &application{
		cfg:   cfg,
		store: store,
		ctrl: controller.New(store,
			controller.WithLocation(cfg.Location),
			controller.WithMessages(controller.MessagesFor(cfg.Locale)),
			controller.WithLogger(logrus.WithField("component", "controller")),
		),
		broker:  broker,
		now:     time.Now,
		startup: &toastBuffer{},
	}
}

// load fills the controller once. A failure is kept and shown on the first page view.
func (app *application) load(ctx context.Context) {
	app.ctrl.Load(ctx, app.startup)
}

func (app *application) calendarView(month string, nav string, opts ...calendar.Option) (*calendar.View, error) {
	opts = append([]calendar.Option{
		calendar.WithLocation(app.cfg.Location),
		calendar.WithClock(app.now),
		calendar.WithLocale(calendar.LocaleFor(app.cfg.Locale)),
	}, opts...)
	v := calendar.New(opts...)

	if month != "" {
		m, err := types.ParseMonthKey(month, app.cfg.Location)
		if err != nil {
			return nil, err
		}
		v.SetMonth(m.Year(), m.Month())
	}

	switch nav {
	case "":
	case "prev":
		v.PrevMonth()
	case "next":
		v.NextMonth()
	default:
		return nil, errors.Errorf("unknown navigation %q", nav)
	}
	return v, nil
}

func (app *application) homePageData(v *calendar.View) *views.HomePageData {
	return views.NewHomePageData(app.cfg, v.Render(app.ctrl.Memos()))
}

func newServer(app *application) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Renderer = views.NewTemplate()

	e.StaticFS("/static", static.FS)

	e.Use(middleware.Recover())

	e.Use(middleware.Secure())

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "method=${method}, uri=${uri}, status=${status}, latency=${latency_human}\n",
	}))

	store := sessions.NewCookieStore(app.cfg.CookieSecret)
	e.Use(session.Middleware(store))

	auth := requireSignIn(app.cfg)

	// Pages
	e.GET("/", homePageHandler(app), auth)
	e.GET("/day/:date", dayHandler(app), auth)
	e.POST("/day/:date", saveMemoHandler(app), auth)
	e.POST("/day/:date/delete", deleteMemoHandler(app), auth)

	// Auth
	e.GET("/auth/sign-in", signIn(app))
	e.POST("/auth/sign-in", signInWithPassword(app))
	e.POST("/auth/sign-out", signOut())

	// API
	e.GET("/api/memos", listMemosAPI(app), auth)
	e.PUT("/api/memos/:date", putMemoAPI(app), auth)
	e.DELETE("/api/memos/:date", deleteMemoAPI(app), auth)

	// Feeds
	e.GET("/calendar.ics", icsHandler(app), auth)
	e.GET("/events", eventsHandler(app.broker), auth)

	return e
}

// toastBuffer holds toasts raised outside any request.
type toastBuffer struct {
	mu     sync.Mutex
	toasts []types.Toast
}

func (b *toastBuffer) Notify(t types.Toast) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.toasts = append(b.toasts, t)
}

func (b *toastBuffer) Drain() []types.Toast {
	b.mu.Lock()
	defer b.mu.Unlock()
	ret := b.toasts
	b.toasts = nil
	return ret
}
