package util

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/ssh"
)

// ParseRSAPublicKey decodes a PEM public key (PKIX or PKCS#1).
// Literal "\n" sequences are accepted so the key can live in a single-line env var.
func ParseRSAPublicKey(pubPEM string) (*rsa.PublicKey, error) {
	pubPEM = strings.ReplaceAll(pubPEM, "\\n", "\n")

	block, _ := pem.Decode([]byte(pubPEM))
	if block == nil {
		return nil, errors.New("failed to decode public key PEM - ensure it's properly formatted with BEGIN/END markers")
	}

	if pub, err := x509.ParsePKIXPublicKey(block.Bytes); err == nil {
		key, ok := pub.(*rsa.PublicKey)
		if !ok {
			return nil, errors.New("public key is not an RSA key")
		}
		return key, nil
	}

	key, err := x509.ParsePKCS1PublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	return key, nil
}

// ParseRSAPrivateKey decodes a PEM private key (PKCS#1 or PKCS#8).
// With a passphrase the key is opened as an encrypted PEM or OpenSSH key.
func ParseRSAPrivateKey(privPEM, passphrase []byte) (*rsa.PrivateKey, error) {
	if len(passphrase) > 0 {
		raw, err := ssh.ParseRawPrivateKeyWithPassphrase(privPEM, passphrase)
		if err != nil {
			return nil, fmt.Errorf("failed to open encrypted private key: %w", err)
		}
		key, ok := raw.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.New("private key is not an RSA key")
		}
		return key, nil
	}

	block, _ := pem.Decode(privPEM)
	if block == nil {
		return nil, errors.New("failed to decode private key PEM - ensure it's properly formatted with BEGIN/END markers")
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("private key is not an RSA key")
	}
	return key, nil
}
