package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/titlelab/title-rotator-api/infrastructure/database/postgres"
	"github.com/titlelab/title-rotator-api/internal/domain"
	"github.com/titlelab/title-rotator-api/pkg/cipher"
)

const (
	channelsTable           = "channels"
	channelCredentialsTable = "channel_credentials"
)

type ChannelRepository interface {
	Create(ctx context.Context, channel *domain.Channel) error
	GetByID(ctx context.Context, id string) (*domain.Channel, error)
	ListByStatus(ctx context.Context, statuses []domain.ChannelStatus) ([]*domain.Channel, error)

	// GetCredential devolve a credencial do canal com o refresh token já
	// decifrado, ou nil se o canal nunca foi autorizado
	GetCredential(ctx context.Context, channelID string) (*domain.ChannelCredential, error)
	// SaveCredential faz upsert da credencial, cifrando o refresh token
	SaveCredential(ctx context.Context, credential *domain.ChannelCredential) error
}

type channelRepository struct {
	conn        *postgres.Connection
	tokenCipher *cipher.TokenCipher
}

func NewChannelRepository(conn *postgres.Connection, tokenCipher *cipher.TokenCipher) ChannelRepository {
	return &channelRepository{
		conn:        conn,
		tokenCipher: tokenCipher,
	}
}

func (r *channelRepository) Create(ctx context.Context, channel *domain.Channel) error {
	query, args, err := squirrel.
		Insert(channelsTable).
		Columns("id", "external_id", "name", "status", "created_at").
		Values(channel.ID, channel.ExternalID, channel.Name, channel.Status, channel.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *channelRepository) GetByID(ctx context.Context, id string) (*domain.Channel, error) {
	query, args, err := squirrel.
		Select("id", "external_id", "name", "status", "created_at").
		From(channelsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	channel := &domain.Channel{}
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&channel.ID,
		&channel.ExternalID,
		&channel.Name,
		&channel.Status,
		&channel.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear canal: %w", err)
	}

	return channel, nil
}

func (r *channelRepository) ListByStatus(ctx context.Context, statuses []domain.ChannelStatus) ([]*domain.Channel, error) {
	query, args, err := squirrel.
		Select("id", "external_id", "name", "status", "created_at").
		From(channelsTable).
		Where(squirrel.Eq{"status": statuses}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	channels := make([]*domain.Channel, 0)
	for rows.Next() {
		channel := &domain.Channel{}
		err := rows.Scan(
			&channel.ID,
			&channel.ExternalID,
			&channel.Name,
			&channel.Status,
			&channel.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear canais: %w", err)
		}
		channels = append(channels, channel)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return channels, nil
}

func (r *channelRepository) GetCredential(ctx context.Context, channelID string) (*domain.ChannelCredential, error) {
	query, args, err := squirrel.
		Select("channel_id", "refresh_token", "expires_at", "updated_at").
		From(channelCredentialsTable).
		Where(squirrel.Eq{"channel_id": channelID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	credential := &domain.ChannelCredential{}
	var sealedRefreshToken string
	var expiresAt sql.NullTime

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&credential.ChannelID,
		&sealedRefreshToken,
		&expiresAt,
		&credential.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear credencial: %w", err)
	}

	if expiresAt.Valid {
		credential.ExpiresAt = expiresAt.Time
	}

	refreshToken, err := r.tokenCipher.Open(sealedRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("erro ao decifrar refresh token do canal %s: %w", channelID, err)
	}
	credential.RefreshToken = refreshToken

	return credential, nil
}

func (r *channelRepository) SaveCredential(ctx context.Context, credential *domain.ChannelCredential) error {
	sealedRefreshToken, err := r.tokenCipher.Seal(credential.RefreshToken)
	if err != nil {
		return fmt.Errorf("erro ao cifrar refresh token: %w", err)
	}

	query, args, err := squirrel.
		Insert(channelCredentialsTable).
		Columns("channel_id", "refresh_token", "expires_at", "updated_at").
		Values(credential.ChannelID, sealedRefreshToken, credential.ExpiresAt, time.Now()).
		Suffix(`
			ON CONFLICT (channel_id) DO UPDATE SET
				refresh_token = EXCLUDED.refresh_token,
				expires_at = EXCLUDED.expires_at,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}
