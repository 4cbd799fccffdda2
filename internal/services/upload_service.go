package services

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/revxlabs/revx/internal/constants"
)

var ErrUploadKeyNotConfigured = errors.New("asset host private key is not configured")

// UploadSignature is the parameter set the asset host expects alongside a
// direct browser upload. The signature is HMAC-SHA1 over token+expire; the
// format is dictated by the provider.
type UploadSignature struct {
	Token     string `json:"token"`
	Signature string `json:"signature"`
	Expire    int64  `json:"expire"`
}

// UploadService signs direct-upload requests for the external asset host.
type UploadService struct {
	privateKey string
	now        func() time.Time
}

// NewUploadService creates a new UploadService.
func NewUploadService(privateKey string) *UploadService {
	return &UploadService{
		privateKey: privateKey,
		now:        time.Now,
	}
}

// Sign produces a fresh token/signature/expire triple.
func (s *UploadService) Sign() (*UploadSignature, error) {
	if s.privateKey == "" {
		return nil, ErrUploadKeyNotConfigured
	}

	token := uuid.NewString()
	expire := s.now().Unix() + constants.UploadSignatureTTLSeconds

	mac := hmac.New(sha1.New, []byte(s.privateKey))
	mac.Write([]byte(token + fmt.Sprintf("%d", expire)))

	return &UploadSignature{
		Token:     token,
		Signature: hex.EncodeToString(mac.Sum(nil)),
		Expire:    expire,
	}, nil
}
