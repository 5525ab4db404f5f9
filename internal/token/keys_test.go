package token

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateTestPEM(t *testing.T) (publicPEM, privatePEM []byte) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privatePEM = pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	pubBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	publicPEM = pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubBytes,
	})

	return publicPEM, privatePEM
}

func TestLoadKeyPair(t *testing.T) {
	publicPEM, privatePEM := generateTestPEM(t)

	keys, err := LoadKeyPair(publicPEM, privatePEM)
	require.NoError(t, err)
	require.NotNil(t, keys.Private)
	require.NotNil(t, keys.Public)

	assert.True(t, keys.Private.PublicKey.Equal(keys.Public))
}

func TestLoadKeyPair_PKCS8Private(t *testing.T) {
	publicPEM, _ := generateTestPEM(t)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	pkcs8, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: pkcs8,
	})

	keys, err := LoadKeyPair(publicPEM, privatePEM)
	require.NoError(t, err)
	assert.NotNil(t, keys.Private)
}

func TestLoadKeyPair_InvalidPEM(t *testing.T) {
	publicPEM, privatePEM := generateTestPEM(t)

	tests := []struct {
		name    string
		public  []byte
		private []byte
	}{
		{"garbage public", []byte("not a pem"), privatePEM},
		{"garbage private", publicPEM, []byte("not a pem")},
		{"empty public", nil, privatePEM},
		{"empty private", publicPEM, nil},
		{"swapped keys", privatePEM, publicPEM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadKeyPair(tt.public, tt.private)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrKeyMaterial)
		})
	}
}
