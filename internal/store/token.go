package store

import (
	"context"

	"github.com/idrsdev/agile-task/core/db/sqlc"
	"github.com/idrsdev/agile-task/internal/model"
	"github.com/jackc/pgx/v5/pgtype"
)

type tokenStore struct {
	queries *sqlc.Queries
}

func newTokenStore(queries *sqlc.Queries) TokenStore {
	return &tokenStore{queries: queries}
}

func (s *tokenStore) Upsert(ctx context.Context, token *model.Token) error {
	row, err := s.queries.UpsertToken(ctx, sqlc.UpsertTokenParams{
		ID:        token.ID,
		UserID:    token.UserID,
		TokenHash: token.TokenHash,
		ExpiresAt: pgtype.Timestamptz{Time: token.ExpiresAt, Valid: true},
	})
	if err != nil {
		return mapErr(err)
	}
	*token = toTokenModel(row)
	return nil
}

func (s *tokenStore) GetByHash(ctx context.Context, hash string) (*model.Token, error) {
	row, err := s.queries.GetTokenByHash(ctx, hash)
	if err != nil {
		return nil, mapErr(err)
	}
	t := toTokenModel(row)
	return &t, nil
}

func (s *tokenStore) DeleteByUser(ctx context.Context, userID int64) error {
	return s.queries.DeleteTokenByUser(ctx, userID)
}

func toTokenModel(row sqlc.Token) model.Token {
	return model.Token{
		ID:        row.ID,
		UserID:    row.UserID,
		TokenHash: row.TokenHash,
		ExpiresAt: row.ExpiresAt.Time,
		CreatedAt: row.CreatedAt.Time,
	}
}
