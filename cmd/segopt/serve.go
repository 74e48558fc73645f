package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	segopt "github.com/jamesainslie/go-segopt"
	"github.com/jamesainslie/go-segopt/postag"
	"github.com/jamesainslie/go-segopt/token"
	"github.com/jamesainslie/go-segopt/tokenizer"
)

// maxBody bounds a single optimize request.
const maxBody = 8 << 20

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the optimizer over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := &http.Server{
				Addr:              a.cfg.Addr,
				Handler:           newRouter(a.pipeline, a.logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("listening", slog.String("addr", a.cfg.Addr))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("serving: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			a.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	return cmd
}

type optimizeRequest struct {
	Text   string        `json:"text,omitempty"`
	Tokens []token.Token `json:"tokens,omitempty"`
}

type optimizeResponse struct {
	Tokens    []token.Token `json:"tokens"`
	Addresses []string      `json:"addresses"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type server struct {
	pipeline *segopt.Pipeline
	logger   *slog.Logger
}

func newRouter(p *segopt.Pipeline, logger *slog.Logger) *mux.Router {
	s := &server{pipeline: p, logger: logger}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/v1/optimize", s.handleOptimize).Methods(http.MethodPost)
	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"stages": s.pipeline.Stages(),
	})
}

// handleOptimize accepts either a token sequence or raw text. Raw text is
// lexed with package tokenizer first.
func (s *server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}

	tokens := req.Tokens
	if tokens == nil {
		tokens = tokenizer.Tokenize(req.Text)
	}

	out, err := s.pipeline.Optimize(r.Context(), tokens)
	switch {
	case errors.Is(err, segopt.ErrInvalidInput):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	case err != nil:
		s.logger.Error("optimize failed", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	resp := optimizeResponse{Tokens: out, Addresses: []string{}}
	if resp.Tokens == nil {
		resp.Tokens = []token.Token{}
	}
	for _, t := range out {
		if t.Tag == postag.Address {
			resp.Addresses = append(resp.Addresses, t.Text)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
