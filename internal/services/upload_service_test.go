package services

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/revxlabs/revx/internal/constants"
)

func TestUploadService_Sign(t *testing.T) {
	svc := NewUploadService("private_key_test")
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	sig, err := svc.Sign()
	require.NoError(t, err)
	require.NotEmpty(t, sig.Token)
	require.Equal(t, fixed.Unix()+constants.UploadSignatureTTLSeconds, sig.Expire)

	// The signature must verify as HMAC-SHA1 over token+expire.
	mac := hmac.New(sha1.New, []byte("private_key_test"))
	mac.Write([]byte(sig.Token + strconv.FormatInt(sig.Expire, 10)))
	require.Equal(t, hex.EncodeToString(mac.Sum(nil)), sig.Signature)
}

func TestUploadService_Sign_TokensAreUnique(t *testing.T) {
	svc := NewUploadService("private_key_test")

	first, err := svc.Sign()
	require.NoError(t, err)
	second, err := svc.Sign()
	require.NoError(t, err)

	require.NotEqual(t, first.Token, second.Token)
}

func TestUploadService_Sign_MissingKey(t *testing.T) {
	svc := NewUploadService("")

	_, err := svc.Sign()
	require.ErrorIs(t, err, ErrUploadKeyNotConfigured)
}
