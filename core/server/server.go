/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/google/arith/core/expr"
	"github.com/google/arith/core/rendering"
	"github.com/google/arith/core/suite"
	"github.com/google/arith/core/views"
)

const (
	// maxExpressionLen bounds the expressions accepted over HTTP.
	maxExpressionLen = 4096
	// maxCachedExpressions bounds exprCache; it is emptied when full.
	maxCachedExpressions = 1024
)

// Server serves the calculator page and the JSON API
type Server struct {
	mux      *http.ServeMux
	logger   zerolog.Logger
	renderer *rendering.Renderer
	title    string
	samples  []suite.Case
	options  suite.Options

	// Compiled expressions by source, shared by the page and the API.
	mu        sync.Mutex
	exprCache map[string]*expr.Expression
}

// NewServer creates a new server that reports on the given sample cases
func NewServer(logger zerolog.Logger, samples []suite.Case, options suite.Options) (*Server, error) {
	renderer, err := rendering.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		renderer:  renderer,
		title:     "Arith",
		samples:   samples,
		options:   options,
		exprCache: make(map[string]*expr.Expression),
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleCalculator)
	s.mux.HandleFunc("GET /api/eval", s.handleEval)
	s.mux.HandleFunc("GET /api/samples", s.handleSamples)
	s.mux.HandleFunc("GET /health", s.handleHealth)
}

// Handler returns the routes wrapped with request logging.
func (s *Server) Handler() http.Handler {
	return s.loggingMiddleware(s.mux)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info().Msg("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// compile returns the cached tree for source, compiling it on first use.
func (s *Server) compile(source string) (*expr.Expression, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.exprCache[source]; ok {
		return e, nil
	}
	e, err := expr.Compile(source)
	if err != nil {
		return nil, err
	}
	if len(s.exprCache) >= maxCachedExpressions {
		clear(s.exprCache)
	}
	s.exprCache[source] = e
	return e, nil
}

func (s *Server) runSamples(ctx context.Context) (*suite.Report, error) {
	if len(s.samples) == 0 {
		return nil, nil
	}
	return suite.Run(ctx, s.samples, s.options)
}

func (s *Server) handleCalculator(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	source := q.Get("expr")
	if len(source) > maxExpressionLen {
		http.Error(w, "expression too long", http.StatusRequestEntityTooLarge)
		return
	}

	report, err := s.runSamples(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("sample run failed")
		http.Error(w, "sample run failed", http.StatusInternalServerError)
		return
	}

	vm := views.BuildCalculatorViewModel(s.title, source, q.Has("expr"), s.compile, report)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.RenderCalculator(w, vm); err != nil {
		// The template may have written part of the page already.
		s.logger.Error().Err(err).Msg("template rendering error")
	}
}

// EvalResponse is the JSON body of /api/eval.
type EvalResponse struct {
	Expression string     `json:"expression"`
	Value      *float64   `json:"value,omitempty"`
	Tree       string     `json:"tree,omitempty"`
	Error      *ErrorBody `json:"error,omitempty"`
}

// ErrorBody describes a rejected expression.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Pos     int    `json:"pos"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message"`
}

func newErrorBody(err error) *ErrorBody {
	var e *expr.Error
	if errors.As(err, &e) {
		return &ErrorBody{Kind: e.Kind.String(), Pos: e.Pos, Token: e.Token, Message: e.Msg}
	}
	return &ErrorBody{Kind: "error", Message: err.Error()}
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("expr") {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "expr parameter is required"})
		return
	}
	source := q.Get("expr")
	if len(source) > maxExpressionLen {
		s.writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "expression too long"})
		return
	}

	resp := EvalResponse{Expression: source}
	compiled, err := s.compile(source)
	if err == nil {
		resp.Tree = compiled.String()
		var v float64
		if v, err = compiled.Eval(); err == nil {
			resp.Value = &v
		}
	}
	if err != nil {
		resp.Error = newErrorBody(err)
		s.logger.Debug().Str("expr", source).Str("kind", resp.Error.Kind).Int("pos", resp.Error.Pos).Msg("rejected expression")
		s.writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// SampleResult is one entry of the /api/samples response.
type SampleResult struct {
	Name       string     `json:"name"`
	Expression string     `json:"expression"`
	Want       *float64   `json:"want,omitempty"`
	WantError  string     `json:"want_error,omitempty"`
	Got        *float64   `json:"got,omitempty"`
	Error      *ErrorBody `json:"error,omitempty"`
	Pass       bool       `json:"pass"`
	Reason     string     `json:"reason,omitempty"`
}

func (s *Server) handleSamples(w http.ResponseWriter, r *http.Request) {
	report, err := s.runSamples(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("sample run failed")
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	results := []SampleResult{}
	if report != nil {
		for _, res := range report.Results {
			sr := SampleResult{
				Name:       res.Case.Name,
				Expression: res.Case.Expression,
				WantError:  res.Case.WantError,
				Pass:       res.Pass,
				Reason:     res.Reason,
			}
			if res.Case.WantError == "" {
				want := res.Case.Want
				sr.Want = &want
			}
			if res.Err != nil {
				sr.Error = newErrorBody(res.Err)
			} else {
				got := res.Got
				sr.Got = &got
			}
			results = append(results, sr)
		}
	}
	s.writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.status).
			Dur("dur", time.Since(start)).
			Msg("request")
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// writeJSON marshals v as JSON and writes it to w. v is encoded before any
// header is sent, so an unencodable value becomes a 500.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Error().Err(err).Int("status", status).Msg("failed to encode response")
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}
