package api

import (
	"errors"
	"net/http"

	"github.com/mantlenetworkio/mantle-tutorial-go/messenger"
	"github.com/mantlenetworkio/mantle-tutorial-go/types"
)

type messageStatusResponse struct {
	TxHash string              `json:"tx_hash"`
	Status types.MessageStatus `json:"status"`
}

// handleMessageStatusGet reads the status from the chains rather than the index.
func (s *Server) handleMessageStatusGet(w http.ResponseWriter, r *http.Request) {
	txHash, ok := hashParam(w, r)
	if !ok {
		return
	}

	status, err := s.status.GetMessageStatus(r.Context(), txHash)
	if err != nil {
		if errors.Is(err, messenger.ErrMessageNotFound) {
			ERROR(w, http.StatusNotFound, err)
			return
		}
		s.log.Error("failed to get message status", "txHash", txHash.Hex(), "error", err)
		ERROR(w, http.StatusBadGateway, err)
		return
	}

	JSON(w, http.StatusOK, messageStatusResponse{TxHash: txHash.Hex(), Status: status})
}
