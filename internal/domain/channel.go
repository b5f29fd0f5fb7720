package domain

import "time"

type ChannelStatus string

const (
	ChannelStatusActive   ChannelStatus = "ACTIVE"
	ChannelStatusInactive ChannelStatus = "INACTIVE"
)

// Channel é a conta dona dos testes: um canal do YouTube vinculado a uma
// credencial OAuth própria
type Channel struct {
	ID         string        `json:"id"`
	ExternalID string        `json:"external_id"`
	Name       string        `json:"name"`
	Status     ChannelStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
}

// ChannelCredential guarda os tokens OAuth de um canal. O refresh token é
// cifrado antes de ir para o banco; AccessToken vive apenas em memória e
// no cache do CredentialManager.
type ChannelCredential struct {
	ChannelID    string    `json:"channel_id"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ExpiresWithin indica se o access token expira dentro da margem dada
func (c *ChannelCredential) ExpiresWithin(margin time.Duration) bool {
	if c.ExpiresAt.IsZero() {
		return true
	}
	return time.Until(c.ExpiresAt) < margin
}
