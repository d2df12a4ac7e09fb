// Package preview serves the board over HTTP for headless use: the current
// frame as PNG, the message log as JSON, and clicks posted back in surface
// pixels.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"djirgha/internal/board"
	"djirgha/internal/client"
	"djirgha/internal/raster"
)

// Controller is the part of client.Controller the preview drives.
type Controller interface {
	Click(x, y float64)
	Refresh()
	NewGame()
	Log() *client.Log
	Params() board.Params
}

type Server struct {
	r       *chi.Mux
	ctl     Controller
	surface *raster.Surface
}

type clickReq struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

func New(ctl Controller, surface *raster.Surface) *Server {
	s := &Server{r: chi.NewRouter(), ctl: ctl, surface: surface}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(accessLog)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/board.png", s.handleImage)
	s.r.Get("/board", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.ctl.Params())
	})
	s.r.Get("/log", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string][]string{"lines": s.ctl.Log().Lines()})
	})
	s.r.Post("/click", s.handleClick)
	s.r.Post("/refresh", func(w http.ResponseWriter, r *http.Request) {
		s.ctl.Refresh()
		w.WriteHeader(http.StatusAccepted)
	})

	s.r.Post("/newgame", func(w http.ResponseWriter, r *http.Request) {
		s.ctl.NewGame()
		w.WriteHeader(http.StatusAccepted)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

func (s *Server) Router() chi.Router { return s.r }

// Start serves on addr until ctx is done.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	log.Info().Str("addr", addr).Msg("preview listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := s.surface.EncodePNG(w); err != nil {
		log.Error().Err(err).Msg("encode board png")
	}
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	x, y, err := clickPosition(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.ctl.Click(x, y)
	writeJSON(w, http.StatusAccepted, map[string]float64{"x": x, "y": y})
}

// clickPosition reads x and y from a JSON body or from form values.
func clickPosition(r *http.Request) (float64, float64, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req clickReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return 0, 0, errors.New("bad_json")
		}
		if req.X == nil || req.Y == nil {
			return 0, 0, errors.New("x and y are required")
		}
		return *req.X, *req.Y, nil
	}

	x, errX := strconv.ParseFloat(r.FormValue("x"), 64)
	y, errY := strconv.ParseFloat(r.FormValue("y"), 64)
	if errX != nil || errY != nil {
		return 0, 0, errors.New("x and y must be numbers")
	}
	return x, y, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("preview request")
	})
}
