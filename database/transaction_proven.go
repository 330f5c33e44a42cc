package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mantlenetworkio/mantle-tutorial-go/database/models"
)

// CreateTransactionProven upserts by withdrawal hash. A withdrawal proven
// twice keeps the latest proof.
func (db *Database) CreateTransactionProven(ctx context.Context, transaction models.TransactionProven) error {
	filter := bson.D{{Key: "withdrawal_hash", Value: transaction.WithdrawalHash}}
	update := bson.D{{Key: "$set", Value: transaction}}

	_, err := db.collection(transactionsProvenCollection).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert transaction proven: %w", err)
	}
	return nil
}

func (db *Database) GetTransactionProvenByHash(ctx context.Context, withdrawalHash string) (*models.TransactionProven, error) {
	var proven models.TransactionProven
	err := db.collection(transactionsProvenCollection).FindOne(ctx, bson.D{{Key: "withdrawal_hash", Value: withdrawalHash}}).Decode(&proven)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction proven by hash: %w", err)
	}
	return &proven, nil
}
