package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/csuvajit/web-login/internal/accountrepo/constants"
	"github.com/csuvajit/web-login/internal/interfaces"
	"github.com/csuvajit/web-login/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	mongosdk "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// schemaEnsurer is the MongoDB-specific index surface of the concrete client.
// The generic DBClient interface doesn't expose index creation.
type schemaEnsurer interface {
	EnsureSchema(ctx context.Context, collectionName string, schema interfaces.Document) error
}

// mongoAccount mirrors models.Account with BSON tags for the driver.
type mongoAccount struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
	Password string             `bson:"password"`
}

// MongoAccountRepository implements AccountRepository using the generic DBClient.
type MongoAccountRepository struct {
	dbClient interfaces.DBClient
}

// NewMongoAccountRepository creates a new MongoDB repository instance.
func NewMongoAccountRepository(dbClient interfaces.DBClient) (interfaces.AccountRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &MongoAccountRepository{dbClient: dbClient}, nil
}

// AddAccount saves a new account to MongoDB via DBClient and returns the
// assigned document ID as a hex string.
func (r *MongoAccountRepository) AddAccount(ctx context.Context, account models.Account) (string, error) {
	doc := mongoAccount{
		ID:       primitive.NewObjectID(),
		Username: account.Username,
		Password: account.Password,
	}

	insertedID, err := r.dbClient.InsertOne(ctx, constants.LoginsCollection, doc)
	if err != nil {
		if strings.Contains(err.Error(), "E11000 duplicate key error") { // MongoDB specific duplicate key error check
			return "", fmt.Errorf("%w: '%s'", interfaces.ErrDuplicateUsername, account.Username)
		}
		return "", fmt.Errorf("failed to add account to MongoDB: %w", err)
	}

	objID, ok := insertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to assert inserted ID to ObjectID")
	}
	return objID.Hex(), nil
}

// FindByUsername retrieves an account from MongoDB via DBClient.
// A nil account with nil error means no account has that username.
func (r *MongoAccountRepository) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	return r.findOne(ctx, bson.M{constants.FieldUsername: username})
}

// FindByCredentials retrieves the account matching both username and
// password exactly. Comparison is byte-equal, performed by the store.
func (r *MongoAccountRepository) FindByCredentials(ctx context.Context, username, password string) (*models.Account, error) {
	return r.findOne(ctx, bson.M{
		constants.FieldUsername: username,
		constants.FieldPassword: password,
	})
}

// DeleteByUsername removes one account with the given username and returns
// its ID. An empty ID with nil error means no account was found; if several
// accounts share the username, only one arbitrary match is deleted.
func (r *MongoAccountRepository) DeleteByUsername(ctx context.Context, username string) (string, error) {
	account, err := r.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if account == nil {
		return "", nil
	}

	deleted, err := r.dbClient.DeleteOne(ctx, constants.LoginsCollection, bson.M{constants.FieldUsername: username})
	if err != nil {
		return "", fmt.Errorf("failed to delete account from MongoDB: %w", err)
	}
	if deleted == 0 {
		// The account vanished between the lookup and the delete.
		return "", nil
	}

	return account.ID, nil
}

// EnsureIndices creates the unique username index in MongoDB.
// Note: this needs the MongoDB-specific helper on the concrete client,
// because the generic DBClient interface doesn't expose index creation.
func (r *MongoAccountRepository) EnsureIndices(ctx context.Context) error {
	ensurer, ok := r.dbClient.(schemaEnsurer)
	if !ok {
		return fmt.Errorf("dbClient does not support index creation")
	}

	indexModel := mongosdk.IndexModel{
		Keys:    bson.M{constants.FieldUsername: 1},
		Options: options.Index().SetUnique(true),
	}
	return ensurer.EnsureSchema(ctx, constants.LoginsCollection, indexModel)
}

// Close disconnects the MongoDB client.
func (r *MongoAccountRepository) Close(ctx context.Context) error {
	return r.dbClient.Disconnect(ctx)
}

func (r *MongoAccountRepository) findOne(ctx context.Context, filter bson.M) (*models.Account, error) {
	var doc mongoAccount
	err := r.dbClient.FindOne(ctx, constants.LoginsCollection, filter, &doc)
	if err != nil {
		if errors.Is(err, mongosdk.ErrNoDocuments) {
			return nil, nil // Account not found
		}
		return nil, fmt.Errorf("failed to get account from MongoDB: %w", err)
	}
	if doc.ID.IsZero() { // FindOne returned no document but didn't error out explicitly.
		return nil, nil
	}

	return &models.Account{
		ID:       doc.ID.Hex(),
		Username: doc.Username,
		Password: doc.Password,
	}, nil
}
