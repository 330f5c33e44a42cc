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

func (db *Database) CreateTransactionFinalized(ctx context.Context, transaction models.TransactionFinalized) error {
	filter := bson.D{{Key: "withdrawal_hash", Value: transaction.WithdrawalHash}}
	update := bson.D{{Key: "$set", Value: transaction}}

	_, err := db.collection(transactionsFinalizedCollection).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert transaction finalized: %w", err)
	}
	return nil
}

func (db *Database) GetTransactionFinalizedByHash(ctx context.Context, withdrawalHash string) (*models.TransactionFinalized, error) {
	var finalized models.TransactionFinalized
	err := db.collection(transactionsFinalizedCollection).FindOne(ctx, bson.D{{Key: "withdrawal_hash", Value: withdrawalHash}}).Decode(&finalized)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction finalized by hash: %w", err)
	}
	return &finalized, nil
}
