package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/lib/pq"

	"github.com/csuvajit/web-login/internal/accountrepo/constants"
	"github.com/csuvajit/web-login/internal/interfaces"
	"github.com/csuvajit/web-login/internal/models"
)

// loginsSchema creates the logins table and its unique username index.
const loginsSchema = `CREATE TABLE IF NOT EXISTS ` + constants.LoginsCollection + ` (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL,
	password TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS ` + constants.LoginsCollection + `_username_idx ON ` + constants.LoginsCollection + ` (username);`

// schemaEnsurer is the PostgreSQL-specific DDL surface of the concrete client.
type schemaEnsurer interface {
	EnsureSchema(ctx context.Context, tableName string, schema interfaces.Document) error
}

// PostgresAccountRepository implements AccountRepository for PostgreSQL databases.
type PostgresAccountRepository struct {
	dbClient interfaces.DBClient
}

// NewPostgresAccountRepository creates a new PostgreSQL repository instance.
func NewPostgresAccountRepository(dbClient interfaces.DBClient) (interfaces.AccountRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &PostgresAccountRepository{dbClient: dbClient}, nil
}

// AddAccount saves a new account to PostgreSQL via DBClient.
func (r *PostgresAccountRepository) AddAccount(ctx context.Context, account models.Account) (string, error) {
	// Convert the account to map[string]interface{} for the generic client;
	// the client generates the UUID id when absent.
	doc := map[string]interface{}{
		constants.FieldUsername: account.Username,
		constants.FieldPassword: account.Password,
	}

	insertedID, err := r.dbClient.InsertOne(ctx, constants.LoginsCollection, doc)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // 23505 is unique_violation
			return "", fmt.Errorf("%w: '%s'", interfaces.ErrDuplicateUsername, account.Username)
		}
		return "", fmt.Errorf("failed to add account to PostgreSQL: %w", err)
	}
	strID, ok := insertedID.(string)
	if !ok {
		return "", fmt.Errorf("failed to assert inserted ID to string (expected UUID)")
	}
	return strID, nil
}

// FindByUsername retrieves an account from PostgreSQL via DBClient.
// A nil account with nil error means no row has that username.
func (r *PostgresAccountRepository) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	return r.findOne(ctx, map[string]interface{}{constants.FieldUsername: username})
}

// FindByCredentials retrieves the account matching both username and password exactly.
func (r *PostgresAccountRepository) FindByCredentials(ctx context.Context, username, password string) (*models.Account, error) {
	return r.findOne(ctx, map[string]interface{}{
		constants.FieldUsername: username,
		constants.FieldPassword: password,
	})
}

// DeleteByUsername removes one row with the given username and returns its
// id. An empty id with nil error means no row was found; when duplicates
// exist only one arbitrary row is removed.
func (r *PostgresAccountRepository) DeleteByUsername(ctx context.Context, username string) (string, error) {
	filter := map[string]interface{}{constants.FieldUsername: username}

	docs, err := r.dbClient.FindMany(ctx, constants.LoginsCollection, filter)
	if err != nil {
		return "", fmt.Errorf("failed to look up account in PostgreSQL: %w", err)
	}
	if len(docs) == 0 {
		return "", nil
	}

	var account models.Account
	if err := mapstructure.Decode(docs[0], &account); err != nil {
		return "", fmt.Errorf("failed to decode account row: %w", err)
	}

	deleted, err := r.dbClient.DeleteOne(ctx, constants.LoginsCollection, filter)
	if err != nil {
		return "", fmt.Errorf("failed to delete account from PostgreSQL: %w", err)
	}
	if deleted == 0 {
		return "", nil
	}

	return account.ID, nil
}

// EnsureIndices creates the logins table and unique username index in PostgreSQL.
func (r *PostgresAccountRepository) EnsureIndices(ctx context.Context) error {
	ensurer, ok := r.dbClient.(schemaEnsurer)
	if !ok {
		return fmt.Errorf("dbClient does not support schema creation")
	}
	return ensurer.EnsureSchema(ctx, constants.LoginsCollection, loginsSchema)
}

// Close closes the PostgreSQL database connection.
func (r *PostgresAccountRepository) Close(ctx context.Context) error {
	return r.dbClient.Disconnect(ctx)
}

func (r *PostgresAccountRepository) findOne(ctx context.Context, filter map[string]interface{}) (*models.Account, error) {
	var account models.Account
	err := r.dbClient.FindOne(ctx, constants.LoginsCollection, filter, &account)
	if err != nil {
		return nil, fmt.Errorf("failed to get account from PostgreSQL: %w", err)
	}
	if account.ID == "" { // If ID is empty after FindOne, no row was found.
		return nil, nil
	}
	return &account, nil
}
