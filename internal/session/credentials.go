package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"cinebook/internal/models"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

const (
	keyToken = "token"
	keyUser  = "user"
)

type credentialRecord struct {
	bun.BaseModel `bun:"table:credentials"`

	Key   string `bun:"key,pk"`
	Value string `bun:"value,notnull"`
}

// CredentialStore persists the session token and user profile in a local
// sqlite database, the client-side equivalent of the mobile app's on-device
// storage.
type CredentialStore struct {
	db *bun.DB
}

// OpenCredentialStore opens (and if needed creates) the credentials database
// at cfg.StorePath.
func OpenCredentialStore(cfg Config) (*CredentialStore, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, "file:"+cfg.StorePath+"?cache=shared")
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	ctx := context.Background()
	if _, err := db.NewCreateTable().
		Model((*credentialRecord)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create credentials table: %w", err)
	}

	return &CredentialStore{db: db}, nil
}

// Save upserts the token and the serialized user profile.
func (c *CredentialStore) Save(ctx context.Context, token string, user models.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user profile: %w", err)
	}

	records := []credentialRecord{
		{Key: keyToken, Value: token},
		{Key: keyUser, Value: string(userJSON)},
	}

	if _, err := c.db.NewInsert().
		Model(&records).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	return nil
}

// Load returns the stored token and user, or empty values when nothing is
// stored.
func (c *CredentialStore) Load(ctx context.Context) (string, *models.User, error) {
	var records []credentialRecord
	if err := c.db.NewSelect().
		Model(&records).
		Where("key IN (?, ?)", keyToken, keyUser).
		Scan(ctx); err != nil {
		return "", nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	var token string
	var user *models.User
	for _, rec := range records {
		switch rec.Key {
		case keyToken:
			token = rec.Value
		case keyUser:
			var u models.User
			if err := json.Unmarshal([]byte(rec.Value), &u); err != nil {
				return "", nil, fmt.Errorf("failed to unmarshal user profile: %w", err)
			}
			user = &u
		}
	}

	return token, user, nil
}

// Clear deletes all stored credentials.
func (c *CredentialStore) Clear(ctx context.Context) error {
	if _, err := c.db.NewDelete().
		Model((*credentialRecord)(nil)).
		Where("key IN (?, ?)", keyToken, keyUser).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (c *CredentialStore) Close() error {
	return c.db.Close()
}
