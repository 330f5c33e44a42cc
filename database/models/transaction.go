package models

import (
	"time"

	"github.com/mantlenetworkio/mantle-tutorial-go/types"
)

const (
	TypeDeposit    = "deposit"
	TypeWithdrawal = "withdrawal"
)

// Transaction represents either a deposit or withdrawal with all related information
type Transaction struct {
	Type           string              `json:"type" bson:"type"` // "deposit" or "withdrawal"
	Kind           types.TokenKind     `json:"kind" bson:"kind"`
	From           string              `json:"from" bson:"from"`
	To             string              `json:"to" bson:"to"`
	Amount         string              `json:"amount" bson:"amount"`
	L1Token        string              `json:"l1_token" bson:"l1_token"`
	L2Token        string              `json:"l2_token" bson:"l2_token"`
	MessageHash    string              `json:"message_hash" bson:"message_hash"`
	WithdrawalHash string              `json:"withdrawal_hash,omitempty" bson:"withdrawal_hash,omitempty"`
	TxHash         string              `json:"tx_hash" bson:"tx_hash"`
	LogIndex       uint                `json:"log_index" bson:"log_index"`
	BlockNumber    uint64              `json:"block_number" bson:"block_number"`
	BlockTime      uint64              `json:"block_time" bson:"block_time"`
	Status         types.MessageStatus `json:"status" bson:"status"`
	CreatedAt      time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at" bson:"updated_at"`

	ProvenTx   *TransactionProven    `json:"prove_tx,omitempty" bson:"prove_tx,omitempty"`
	FinalizeTx *TransactionFinalized `json:"finalize_tx,omitempty" bson:"finalize_tx,omitempty"`
}
