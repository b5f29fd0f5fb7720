package cipher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testKey = "6368616e676520746869732070617373776f726420746f206120736563726574"

func TestNewTokenCipher(t *testing.T) {
	t.Run("Chave válida de 32 bytes", func(t *testing.T) {
		cipher, err := NewTokenCipher(testKey)
		assert.NoError(t, err)
		assert.NotNil(t, cipher)
	})

	t.Run("Chave fora do hex é rejeitada", func(t *testing.T) {
		_, err := NewTokenCipher("nao-e-hex")
		assert.Error(t, err)
	})

	t.Run("Chave curta é rejeitada", func(t *testing.T) {
		_, err := NewTokenCipher("abcd1234")
		assert.Error(t, err)
	})
}

func TestTokenCipher_SealOpen(t *testing.T) {
	cipher, err := NewTokenCipher(testKey)
	assert.NoError(t, err)

	t.Run("Roundtrip preserva o token", func(t *testing.T) {
		sealed, err := cipher.Seal("1//refresh-token-secreto")
		assert.NoError(t, err)
		assert.NotContains(t, sealed, "refresh-token")

		opened, err := cipher.Open(sealed)
		assert.NoError(t, err)
		assert.Equal(t, "1//refresh-token-secreto", opened)
	})

	t.Run("Nonce aleatório gera cifras diferentes para o mesmo token", func(t *testing.T) {
		first, err := cipher.Seal("mesmo-token")
		assert.NoError(t, err)

		second, err := cipher.Seal("mesmo-token")
		assert.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("Chave errada não decifra", func(t *testing.T) {
		sealed, err := cipher.Seal("token")
		assert.NoError(t, err)

		otherKey := strings.Repeat("ab", 32)
		other, err := NewTokenCipher(otherKey)
		assert.NoError(t, err)

		_, err = other.Open(sealed)
		assert.Error(t, err)
	})

	t.Run("Valor corrompido é rejeitado", func(t *testing.T) {
		_, err := cipher.Open("!!!nao-e-base64!!!")
		assert.Error(t, err)

		_, err = cipher.Open("YWJj")
		assert.Error(t, err)
	})
}
