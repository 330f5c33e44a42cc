package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"

	"github.com/mantlenetworkio/mantle-tutorial-go/database"
	"github.com/mantlenetworkio/mantle-tutorial-go/database/models"
	"github.com/mantlenetworkio/mantle-tutorial-go/types"
)

const maxPageSize = 100

func (s *Server) handleTransactionsGet(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := strconv.ParseInt(query.Get("page"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.ParseInt(query.Get("pageSize"), 10, 64)
	if err != nil || pageSize < 1 {
		pageSize = 10
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	filter, err := parseFilter(query.Get("status"), query.Get("from"), query.Get("to"), query.Get("txHash"), query.Get("type"))
	if err != nil {
		ERROR(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.db.GetTransactions(r.Context(), filter, page, pageSize)
	if err != nil {
		ERROR(w, http.StatusInternalServerError, err)
		return
	}

	JSON(w, http.StatusOK, result)
}

// parseFilter validates the query parameters and puts them in their stored form.
func parseFilter(status, from, to, txHash, txType string) (models.Filter, error) {
	filter := models.Filter{From: from, To: to, TxHash: txHash}

	if status != "" {
		parsed, err := types.ParseMessageStatus(status)
		if err != nil {
			return filter, err
		}
		filter.Status = parsed.String()
	}
	for _, addr := range []string{from, to} {
		if addr != "" && !common.IsHexAddress(addr) {
			return filter, fmt.Errorf("invalid address %q", addr)
		}
	}
	if txHash != "" && !isHash(txHash) {
		return filter, fmt.Errorf("invalid transaction hash %q", txHash)
	}
	if txType != "" {
		filter.Type = strings.ToLower(txType)
		if filter.Type != models.TypeDeposit && filter.Type != models.TypeWithdrawal {
			return filter, fmt.Errorf("type must be deposit or withdrawal, got %q", txType)
		}
	}
	return filter, nil
}

func (s *Server) handleTransactionGet(w http.ResponseWriter, r *http.Request) {
	txHash, ok := hashParam(w, r)
	if !ok {
		return
	}

	tx, err := s.db.GetTransactionByHash(r.Context(), txHash)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			ERROR(w, http.StatusNotFound, fmt.Errorf("transaction %s not indexed", txHash.Hex()))
			return
		}
		ERROR(w, http.StatusInternalServerError, err)
		return
	}

	JSON(w, http.StatusOK, tx)
}

func hashParam(w http.ResponseWriter, r *http.Request) (common.Hash, bool) {
	raw := chi.URLParam(r, "txHash")
	if !isHash(raw) {
		ERROR(w, http.StatusBadRequest, fmt.Errorf("invalid transaction hash %q", raw))
		return common.Hash{}, false
	}
	return common.HexToHash(raw), true
}

func isHash(s string) bool {
	s = strings.TrimPrefix(s, "0x")
	if len(s) != 2*common.HashLength {
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}
