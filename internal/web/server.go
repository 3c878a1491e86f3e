package web

import (
	"encoding/json"
	"net/http"
	"roster/internal/back"
	"roster/internal/config"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", noContent)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/rest/players", func(r chi.Router) {
		r.Get("/", s.listPlayers)
		r.Post("/", s.createPlayer)
		r.Get("/count", s.countPlayers)
		r.Get("/{id}", s.getPlayer)
		r.Post("/{id}", s.updatePlayer)
		r.Delete("/{id}", s.deletePlayer)
	})

	return r
}

type Server struct {
	http *http.Server
	back *back.Back
	log  logrus.FieldLogger
}

func NewServer(back *back.Back, conf config.HTTPConfig) *Server {
	s := &Server{
		back: back,
		log:  logrus.WithField("package", "internal/web"),
	}

	s.http = &http.Server{
		Addr:         conf.Addr,
		ReadTimeout:  conf.ReadTimeout,
		WriteTimeout: conf.WriteTimeout,
		IdleTimeout:  conf.IdleTimeout,
		Handler:      s.setupRouter(),
	}

	return s
}

// Handler exposes the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func noContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// Serve listens until done is closed. The caller must wg.Add(1) before
// starting it.
func (s *Server) Serve(wg *sync.WaitGroup, done <-chan struct{}) {
	s.log.WithField("addr", s.http.Addr).Info("starting HTTP server")
	defer wg.Done()

	go func() {
		err := s.http.ListenAndServe()
		if err == http.ErrServerClosed {
			s.log.Info("HTTP server closed")
			return
		}

		s.log.Fatalf("webserver crashed: %s", err)
	}()

	<-done
	if err := s.http.Close(); err != nil {
		s.log.Warnf("unable to close webserver: %s", err)
	}
}

func (s *Server) response(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	response, err := json.Marshal(data)
	if err != nil {
		s.log.Errorf("unable to marshal response: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(code)

	if _, err := w.Write(response); err != nil {
		s.log.Errorf("unable to send response: %s", err)
	}
}

type errorResponse struct {
	Message string `json:"message"`
}

// error maps the catalog error kinds to their HTTP status, anything else is
// an internal error and gets logged.
func (s *Server) error(w http.ResponseWriter, r *http.Request, err error) {
	var (
		code int
		msg  string
	)

	switch {
	case errors.Is(err, back.ErrNotFound):
		code, msg = http.StatusNotFound, "Player with this ID wasn't found!"
	case errors.Is(err, back.ErrInvalidIdentifier):
		code, msg = http.StatusBadRequest, "Player ID isn't valid!"
	case errors.Is(err, back.ErrRecordRejected):
		code, msg = http.StatusBadRequest, "Player wasn't created / updated, because his parameters aren't valid!"
	case errors.As(err, new(badRequest)):
		code, msg = http.StatusBadRequest, err.Error()
	default:
		s.log.WithField("request_id", middleware.GetReqID(r.Context())).Error(err)
		code, msg = http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}

	s.response(w, code, errorResponse{Message: msg})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.log.WithFields(logrus.Fields{
				"request_id": middleware.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"duration":   time.Since(start),
			}).Debug("request")
		}()

		next.ServeHTTP(ww, r)
	})
}
