package service

import (
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"

	"sandra-backend/util"
)

const DefaultSandraKeyPath = "keys/sandra.pem"

// SandraHelperService signs the assertion used to call the Sandra service.
type SandraHelperService struct {
	keyPath    string
	passphrase []byte
}

func NewSandraHelperService(keyPath, passphrase string) *SandraHelperService {
	if keyPath == "" {
		keyPath = DefaultSandraKeyPath
	}
	return &SandraHelperService{keyPath: keyPath, passphrase: []byte(passphrase)}
}

// AuthToken reads the private key on every call and signs an empty claim set with PS256.
// No exp is set; Sandra decides how long the assertion is good for.
func (s *SandraHelperService) AuthToken() (string, error) {
	keyPEM, err := os.ReadFile(s.keyPath)
	if err != nil {
		return "", err
	}

	key, err := util.ParseRSAPrivateKey(keyPEM, s.passphrase)
	if err != nil {
		return "", fmt.Errorf("sandra key %s: %w", s.keyPath, err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodPS256, jwt.MapClaims{})
	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign sandra token: %w", err)
	}
	return signed, nil
}
