package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mantlenetworkio/mantle-tutorial-go/database/models"
	"github.com/mantlenetworkio/mantle-tutorial-go/types"
)

// GetTransactionByHash returns the first transfer initiated in txHash, joined
// with its proven and finalized records.
func (db *Database) GetTransactionByHash(ctx context.Context, txHash common.Hash) (*models.Transaction, error) {
	txs, err := db.aggregate(ctx, transactionsPipeline(bson.M{"tx_hash": txHash.Hex()}, 0, 1))
	if err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		return nil, ErrNotFound
	}
	return &txs[0], nil
}

func (db *Database) GetTransactions(ctx context.Context, filter models.Filter, page int64, pageSize int64) (*models.PaginatedResult, error) {
	mongoFilter := buildFilter(filter)

	totalCount, err := db.collection(transactionsCollection).CountDocuments(ctx, mongoFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to get total count: %w", err)
	}

	txs, err := db.aggregate(ctx, transactionsPipeline(mongoFilter, (page-1)*pageSize, pageSize))
	if err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []models.Transaction{}
	}

	return &models.PaginatedResult{
		Items:      txs,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

func (db *Database) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]models.Transaction, error) {
	cursor, err := db.collection(transactionsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to execute aggregation: %w", err)
	}
	defer cursor.Close(ctx)

	var transactions []models.Transaction
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}
	return transactions, nil
}

// transactionsPipeline matches transfers, newest first, and joins the proven
// and finalized records on the withdrawal hash.
func transactionsPipeline(match bson.M, skip, limit int64) mongo.Pipeline {
	lookup := func(from, as string) bson.D {
		return bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: from},
			{Key: "localField", Value: "withdrawal_hash"},
			{Key: "foreignField", Value: "withdrawal_hash"},
			{Key: "as", Value: as},
		}}}
	}
	unwind := func(path string) bson.D {
		return bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: path},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}}
	}

	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "block_time", Value: -1}, {Key: "log_index", Value: -1}}}},
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: limit}},
		lookup(transactionsProvenCollection, "prove_tx"),
		lookup(transactionsFinalizedCollection, "finalize_tx"),
		unwind("$prove_tx"),
		unwind("$finalize_tx"),
	}
}

// BatchCreateTransactions inserts unordered and ignores transfers that are
// already stored, so a batch can be replayed after a restart.
func (db *Database) BatchCreateTransactions(ctx context.Context, txs []models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	now := time.Now()
	documents := make([]interface{}, len(txs))
	for i, tx := range txs {
		tx.CreatedAt = now
		tx.UpdatedAt = now
		documents[i] = tx
	}

	_, err := db.collection(transactionsCollection).InsertMany(ctx, documents, options.InsertMany().SetOrdered(false))
	if err != nil && !onlyDuplicates(err) {
		return fmt.Errorf("failed to insert transactions: %w", err)
	}
	return nil
}

func onlyDuplicates(err error) bool {
	bulk, ok := err.(mongo.BulkWriteException)
	if !ok {
		return mongo.IsDuplicateKeyError(err)
	}
	if bulk.WriteConcernError != nil {
		return false
	}
	for _, writeErr := range bulk.WriteErrors {
		if writeErr.Code != 11000 {
			return false
		}
	}
	return true
}

// GetPendingTransactions returns the transfers of txType whose status can still change.
func (db *Database) GetPendingTransactions(ctx context.Context, txType string) ([]models.Transaction, error) {
	cursor, err := db.collection(transactionsCollection).Find(ctx, pendingFilter(txType))
	if err != nil {
		return nil, fmt.Errorf("failed to get pending transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var transactions []models.Transaction
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}
	return transactions, nil
}

// pendingFilter leaves out transfers in a terminal status.
func pendingFilter(txType string) bson.D {
	final := bson.A{}
	for s := types.UnconfirmedL1ToL2Message; s <= types.Relayed; s++ {
		if s.Terminal() {
			final = append(final, s.String())
		}
	}
	return bson.D{
		{Key: "type", Value: txType},
		{Key: "status", Value: bson.D{{Key: "$nin", Value: final}}},
	}
}

// UpdateTransactionStatus sets the status of the transfer whose message
// messageHash was sent in txHash.
func (db *Database) UpdateTransactionStatus(ctx context.Context, txHash, messageHash string, status types.MessageStatus) error {
	filter := bson.D{
		{Key: "tx_hash", Value: txHash},
		{Key: "message_hash", Value: messageHash},
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: status},
		{Key: "updated_at", Value: time.Now()},
	}}}

	result, err := db.collection(transactionsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
