package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"

	"github.com/mantlenetworkio/mantle-tutorial-go/database"
	"github.com/mantlenetworkio/mantle-tutorial-go/database/models"
	"github.com/mantlenetworkio/mantle-tutorial-go/messenger"
	"github.com/mantlenetworkio/mantle-tutorial-go/metrics"
	"github.com/mantlenetworkio/mantle-tutorial-go/types"
)

// TransactionStore is the read side of the database the API serves.
type TransactionStore interface {
	GetTransactions(ctx context.Context, filter models.Filter, page int64, pageSize int64) (*models.PaginatedResult, error)
	GetTransactionByHash(ctx context.Context, txHash common.Hash) (*models.Transaction, error)
}

var _ TransactionStore = &database.Database{}

// StatusSource resolves live message statuses.
type StatusSource interface {
	GetMessageStatus(ctx context.Context, txHash common.Hash) (types.MessageStatus, error)
}

var _ StatusSource = &messenger.CrossChainMessenger{}

// API server
type Server struct {
	r       chi.Router
	log     *slog.Logger
	db      TransactionStore
	status  StatusSource
	metrics *metrics.Metrics
	opts    ServerOpts
}

type ServerOpts struct {
	Logger  *slog.Logger
	Store   TransactionStore
	Status  StatusSource
	Metrics *metrics.Metrics
	Port    string
}

func NewServer(opts ServerOpts) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	s := &Server{
		log:     opts.Logger,
		db:      opts.Store,
		status:  opts.Status,
		metrics: opts.Metrics,
		opts:    opts,
	}
	s.routes()
	return s
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.opts.Port,
		Handler:           s.r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("📡 Server Started. API Server is now listening on http://localhost:" + s.opts.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("api server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down api server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info("api server stopped")
	return nil
}

// Turns server into http server
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.r.ServeHTTP(w, r)
}

// Returns JSON response to the API user. HTTP status code
// and data must be provided
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		fmt.Fprintf(w, "%s", err.Error())
	}
}

// Returns an error to the API user
func ERROR(w http.ResponseWriter, statusCode int, err error) {
	w.WriteHeader(statusCode)
	err = json.NewEncoder(w).Encode(map[string]interface{}{"error": err.Error()})
	if err != nil {
		fmt.Fprintf(w, "%s", err.Error())
	}
}
