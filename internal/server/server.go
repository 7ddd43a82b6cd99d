// Package server exposes statement analysis over HTTP. Every request carries
// its own PDF; nothing is kept between requests.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/example/statement-analyzer/internal/category"
	"github.com/example/statement-analyzer/internal/export"
	"github.com/example/statement-analyzer/internal/extract"
	"github.com/example/statement-analyzer/internal/logger"
	"github.com/example/statement-analyzer/internal/statement"
	"github.com/example/statement-analyzer/pkg/transaction"
)

const filterDateFormat = "2006-01-02"

// Extractor turns an uploaded PDF into an extraction result
type Extractor interface {
	Extract(ctx context.Context, r io.Reader) (*extract.Result, error)
}

// Server handles the statement API
type Server struct {
	extractor   Extractor
	categorizer *category.Categorizer
	log         zerolog.Logger
	maxUpload   int64
}

// New creates a Server. maxUploadMB bounds the multipart body size.
func New(extractor Extractor, categorizer *category.Categorizer, log zerolog.Logger, maxUploadMB int64) *Server {
	return &Server{
		extractor:   extractor,
		categorizer: categorizer,
		log:         log,
		maxUpload:   maxUploadMB << 20,
	}
}

// Router returns the HTTP routes
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/api/statements", s.handleAnalyze).Methods(http.MethodPost)
	router.HandleFunc("/api/statements/export", s.handleExport).Methods(http.MethodPost)

	router.Use(s.logRequests)
	return router
}

// ListenAndServe serves the API on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("Listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Analysis is the JSON body returned for an analyzed statement
type Analysis struct {
	Metadata     statement.Metadata          `json:"metadata"`
	From         string                      `json:"from,omitempty"`
	To           string                      `json:"to,omitempty"`
	Category     string                      `json:"category,omitempty"`
	Transactions []transaction.Transaction   `json:"transactions"`
	Totals       transaction.Totals          `json:"totals"`
	Monthly      []transaction.MonthTotal    `json:"monthly"`
	Categories   []transaction.CategoryTotal `json:"categories"`
	Balance      []transaction.BalancePoint  `json:"balance"`
	SkippedPages []int                       `json:"skipped_pages,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	result, filtered, from, to, ok := s.process(w, r)
	if !ok {
		return
	}

	txns := filtered.Transactions
	if txns == nil {
		txns = []transaction.Transaction{}
	}

	writeJSON(w, http.StatusOK, Analysis{
		Metadata:     result.Metadata,
		From:         formatBound(from),
		To:           formatBound(to),
		Category:     r.FormValue("category"),
		Transactions: txns,
		Totals:       filtered.Totals(),
		Monthly:      filtered.MonthlySummary(),
		Categories:   filtered.CategoryBreakdown(),
		Balance:      filtered.BalanceSeries(),
		SkippedPages: result.SkippedPages,
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, filtered, _, _, ok := s.process(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.FileName()))
	if err := export.Write(w, format, filtered); err != nil {
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Msg("Export failed")
	}
}

// process reads the upload, extracts and categorizes it and applies the date
// and category filters. On failure it has already written the response.
func (s *Server) process(w http.ResponseWriter, r *http.Request) (*extract.Result, *transaction.TransactionList, time.Time, time.Time, bool) {
	var zero time.Time
	ctx := r.Context()
	log := logger.FromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse multipart form: "+err.Error())
		return nil, nil, zero, zero, false
	}

	from, err := parseBound(r.FormValue("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid 'from' date: "+err.Error())
		return nil, nil, zero, zero, false
	}
	to, err := parseBound(r.FormValue("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid 'to' date: "+err.Error())
		return nil, nil, zero, zero, false
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		writeError(w, http.StatusBadRequest, "'to' must not be before 'from'")
		return nil, nil, zero, zero, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing 'file' field: "+err.Error())
		return nil, nil, zero, zero, false
	}
	defer file.Close()

	log.Info().Str("file", header.Filename).Int64("size", header.Size).Msg("Extracting statement")

	result, err := s.extractor.Extract(ctx, file)
	if err != nil {
		var openErr *extract.DocumentOpenError
		if errors.As(err, &openErr) {
			writeError(w, http.StatusBadRequest, "Failed to process the PDF. Please ensure it's a valid Global IME bank statement.")
			return nil, nil, zero, zero, false
		}
		log.Error().Err(err).Msg("Extraction failed")
		writeError(w, http.StatusInternalServerError, "Extraction failed")
		return nil, nil, zero, zero, false
	}

	if err := result.Validate(); err != nil {
		log.Warn().Err(err).Str("file", header.Filename).Msg("Rejected statement")
		writeError(w, http.StatusUnprocessableEntity, validationMessage(err))
		return nil, nil, zero, zero, false
	}
	if !result.Metadata.Complete() {
		log.Warn().Interface("metadata", result.Metadata).Msg("Statement headers incomplete")
	}

	s.categorizer.Apply(result.Transactions)
	filtered := result.Transactions.FilterByDate(from, to).FilterByCategory(r.FormValue("category"))
	return result, filtered, from, to, true
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, extract.ErrNoTransactions):
		return "No transactions found in this statement."
	default:
		return "Incomplete data extracted. Please ensure it's a valid Global IME bank statement."
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := s.log.With().Str("method", r.Method).Str("path", r.URL.Path).Logger()
		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context(), log)))
		log.Debug().Dur("duration", time.Since(start)).Msg("Request handled")
	})
}

func parseBound(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(filterDateFormat, s)
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(filterDateFormat)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
