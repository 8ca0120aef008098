package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/HouseYeung/Stock-Time/internal/feed"
	"github.com/HouseYeung/Stock-Time/internal/holiday"
	"github.com/HouseYeung/Stock-Time/internal/model"
	"github.com/HouseYeung/Stock-Time/internal/session"
)

// QuoteSource fetches point-in-time quotes from the upstream REST API.
type QuoteSource interface {
	GetQuote(ctx context.Context, symbol string) (*model.Quote, error)
}

// FeedStatus reports the live state of the streaming feed.
type FeedStatus interface {
	Connected() bool
}

// Config holds the HTTP server settings.
type Config struct {
	Addr      string
	StaticDir string        // Directory served at "/", empty disables
	Timeout   time.Duration // Read/write timeout
}

// Server composes the read path: clock, session machine, holiday
// calendar, trade cache, and quote passthrough.
type Server struct {
	cfg    Config
	logger *slog.Logger

	clock      session.Clock
	displayLoc *time.Location
	calendar   *holiday.Calendar
	trades     *feed.Cache
	quotes     QuoteSource
	feed       FeedStatus

	httpSrv *http.Server
}

// New creates a Server. clock must report market-local time; displayLoc
// is the secondary zone shown alongside in time_status responses.
func New(
	cfg Config,
	clock session.Clock,
	displayLoc *time.Location,
	calendar *holiday.Calendar,
	trades *feed.Cache,
	quotes QuoteSource,
	feedStatus FeedStatus,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		cfg:        cfg,
		logger:     logger,
		clock:      clock,
		displayLoc: displayLoc,
		calendar:   calendar,
		trades:     trades,
		quotes:     quotes,
		feed:       feedStatus,
	}
}

// Handler returns the route mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/time_status", s.handleTimeStatus)
	mux.HandleFunc("GET /api/recent_holidays", s.handleRecentHolidays)
	mux.HandleFunc("GET /api/quote", s.handleQuote)
	mux.HandleFunc("GET /api/trade", s.handleTrade)
	mux.HandleFunc("GET /health", s.handleHealth)

	if s.cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.cfg.StaticDir)))
	}

	return mux
}

// Start begins serving in the background.
func (s *Server) Start(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.Timeout,
		WriteTimeout: s.cfg.Timeout,
	}

	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server failed", "error", err)
		}
	}()

	s.logger.Info("http server started", "addr", s.cfg.Addr)

	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("http server stopped")
	return nil
}
