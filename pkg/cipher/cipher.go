package cipher

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// TokenCipher cifra e decifra refresh tokens antes de persistir no banco.
// A chave vem da configuração (32 bytes em hex) e é carregada uma única
// vez na inicialização do processo.
type TokenCipher struct {
	key []byte
}

func NewTokenCipher(hexKey string) (*TokenCipher, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("chave de cifra inválida: %w", err)
	}

	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("chave de cifra deve ter %d bytes, recebeu %d", chacha20poly1305.KeySize, len(key))
	}

	return &TokenCipher{key: key}, nil
}

// Seal cifra o texto e devolve nonce+ciphertext em base64
func (c *TokenCipher) Seal(plaintext string) (string, error) {
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decifra um valor produzido por Seal
func (c *TokenCipher) Open(encoded string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("valor cifrado corrompido: %w", err)
	}

	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", err
	}

	if len(sealed) < aead.NonceSize() {
		return "", fmt.Errorf("valor cifrado menor que o nonce")
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("falha ao decifrar token: %w", err)
	}

	return string(plaintext), nil
}
