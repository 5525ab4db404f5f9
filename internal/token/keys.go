package token

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// KeyPair holds the RSA key pair used for signing and verification. It is
// loaded once at startup and read-only thereafter, so concurrent use needs
// no locking.
type KeyPair struct {
	Private *rsa.PrivateKey
	Public  *rsa.PublicKey
}

// LoadKeyPair parses a PEM-encoded RSA key pair. Both PKCS1 and PKCS8
// private keys are accepted, and both PKIX and PKCS1 public keys.
func LoadKeyPair(publicPEM, privatePEM []byte) (*KeyPair, error) {
	pub, err := parsePublicKey(publicPEM)
	if err != nil {
		return nil, err
	}

	priv, err := parsePrivateKey(privatePEM)
	if err != nil {
		return nil, err
	}

	return &KeyPair{Private: priv, Public: pub}, nil
}

func parsePrivateKey(pemBytes []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("private key is not valid PEM: %w", ErrKeyMaterial)
	}

	switch block.Type {
	case "RSA PRIVATE KEY":
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse PKCS1 private key: %w", ErrKeyMaterial)
		}
		return key, nil
	case "PRIVATE KEY":
		parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse PKCS8 private key: %w", ErrKeyMaterial)
		}
		key, ok := parsed.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("private key is not RSA: %w", ErrKeyMaterial)
		}
		return key, nil
	default:
		return nil, fmt.Errorf("unsupported private key PEM type %q: %w", block.Type, ErrKeyMaterial)
	}
}

func parsePublicKey(pemBytes []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("public key is not valid PEM: %w", ErrKeyMaterial)
	}

	switch block.Type {
	case "RSA PUBLIC KEY":
		key, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse PKCS1 public key: %w", ErrKeyMaterial)
		}
		return key, nil
	case "PUBLIC KEY":
		parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse PKIX public key: %w", ErrKeyMaterial)
		}
		key, ok := parsed.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("public key is not RSA: %w", ErrKeyMaterial)
		}
		return key, nil
	default:
		return nil, fmt.Errorf("unsupported public key PEM type %q: %w", block.Type, ErrKeyMaterial)
	}
}
