package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mantlenetworkio/mantle-tutorial-go/database/models"
)

const (
	transactionsCollection          = "transactions"
	transactionsProvenCollection    = "transactions_proven"
	transactionsFinalizedCollection = "transactions_finalized"
	lastIndexedBlockCollection      = "last_indexed_block"

	defaultTimeout = 10 * time.Second
)

var ErrNotFound = errors.New("not found")

type Database struct {
	client       *mongo.Client
	databaseName string
	logger       *slog.Logger
}

type DatabaseOpts struct {
	URI          string
	DatabaseName string
	Logger       *slog.Logger
}

func NewDatabase(ctx context.Context, opts DatabaseOpts) (*Database, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(opts.URI).
		SetMaxPoolSize(100).
		SetMinPoolSize(10).
		SetMaxConnecting(10).
		SetServerSelectionTimeout(5 * time.Second).
		SetRetryWrites(true)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{
		client:       client,
		databaseName: opts.DatabaseName,
		logger:       opts.Logger,
	}, nil
}

func (db *Database) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

func (db *Database) collection(name string) *mongo.Collection {
	return db.client.Database(db.databaseName).Collection(name)
}

func (db *Database) CreateIndexes(ctx context.Context) error {
	_, err := db.collection(transactionsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tx_hash", Value: 1}, {Key: "log_index", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "message_hash", Value: 1}}},
		{Keys: bson.D{{Key: "withdrawal_hash", Value: 1}}},
		{Keys: bson.D{{Key: "block_time", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "from", Value: 1}}},
		{Keys: bson.D{{Key: "to", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create transactions indexes: %w", err)
	}

	for _, name := range []string{transactionsProvenCollection, transactionsFinalizedCollection} {
		_, err := db.collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "withdrawal_hash", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("failed to create %s index: %w", name, err)
		}
	}

	_, err = db.collection(lastIndexedBlockCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "chain", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create last_indexed_block index: %w", err)
	}

	return nil
}

// buildFilter turns API query parameters into a mongo filter. Addresses and
// hashes are stored checksummed, so they are normalized before matching.
func buildFilter(f models.Filter) bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.From != "" {
		filter["from"] = normalizeAddress(f.From)
	}
	if f.To != "" {
		filter["to"] = normalizeAddress(f.To)
	}
	if f.TxHash != "" {
		filter["tx_hash"] = common.HexToHash(f.TxHash).Hex()
	}
	if f.Type != "" {
		filter["type"] = strings.ToLower(f.Type)
	}
	return filter
}

func normalizeAddress(s string) string {
	if common.IsHexAddress(s) {
		return common.HexToAddress(s).Hex()
	}
	return s
}
