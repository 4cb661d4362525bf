package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsawler/gridsolve"
	"github.com/tsawler/gridsolve/ocr"
)

// maxUploadBytes caps accepted image payloads at 16MB.
const maxUploadBytes = 16 << 20

func newServeCommand() *cobra.Command {
	var (
		addr     string
		strict   bool
		maxNodes int
		logLevel string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an HTTP endpoint that solves uploaded puzzle images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(logLevel)

			// The classifier is the process-wide model: loaded once here,
			// then shared read-only by every request.
			classifier, err := ocr.NewTesseract()
			if err != nil {
				logger.Warn("classifier unavailable, /solve will refuse requests", "err", err)
			} else {
				defer classifier.Close()
			}

			s := &server{
				logger:   logger,
				strict:   strict,
				maxNodes: maxNodes,
			}
			if err == nil {
				s.classifier = classifier
			}

			mux := http.NewServeMux()
			mux.HandleFunc("/solve", s.handleSolve)
			mux.HandleFunc("/health", s.handleHealth)

			if env := os.Getenv("PORT"); env != "" && !cmd.Flags().Changed("addr") {
				addr = ":" + env
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           requestLogger(logger, mux),
				ReadHeaderTimeout: 5 * time.Second,
			}
			logger.Info("listening", "addr", addr, "model_loaded", s.classifier != nil)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (PORT env overrides when flag unset)")
	cmd.Flags().BoolVar(&strict, "strict", false, "abort on the first unreadable cell instead of treating it as blank")
	cmd.Flags().IntVar(&maxNodes, "max-nodes", 0, "solver search budget in decision nodes (0 = default)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "debug|info|warn|error")
	return cmd
}

type server struct {
	logger     *slog.Logger
	classifier ocr.Classifier
	strict     bool
	maxNodes   int
}

// handleSolve accepts a multipart upload (field "image") and responds
// with the solved grid as plain text.
func (s *server) handleSolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.classifier == nil {
		http.Error(w, "digit classifier model is not loaded", http.StatusServiceUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "no image file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read upload", http.StatusBadRequest)
		return
	}

	p := gridsolve.FromBytes(data).
		WithClassifier(s.classifier).
		MaxNodes(s.maxNodes)
	if s.strict {
		p = p.Strict()
	}

	text, warnings, err := p.Solve()
	if err != nil {
		status, msg := mapError(err)
		http.Error(w, msg, status)
		return
	}
	if len(warnings) > 0 {
		s.logger.Warn("absorbed unreadable cells", "warnings", gridsolve.FormatWarnings(warnings))
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, text)
}

// handleHealth reports liveness and whether the classifier model loaded.
func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":       "healthy",
		"model_loaded": s.classifier != nil,
	})
}

// mapError translates pipeline failure kinds to HTTP responses.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, gridsolve.ErrInvalidImage):
		return http.StatusBadRequest, "invalid image file"
	case errors.Is(err, gridsolve.ErrNoBoardFound):
		return http.StatusUnprocessableEntity, "no sudoku puzzle detected in the image"
	case errors.Is(err, gridsolve.ErrDegenerateBoundary):
		return http.StatusUnprocessableEntity, "puzzle boundary could not be reconstructed"
	case errors.Is(err, gridsolve.ErrClassificationFailed):
		return http.StatusUnprocessableEntity, "could not read the puzzle digits"
	case errors.Is(err, gridsolve.ErrUnsatisfiable):
		return http.StatusUnprocessableEntity, "could not solve the puzzle; check that it is valid"
	case errors.Is(err, gridsolve.ErrTimeout):
		return http.StatusGatewayTimeout, "solving took too long; the puzzle may be ambiguous"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func newLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes, and duration.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", time.Since(start).Round(time.Millisecond),
		)
	})
}
