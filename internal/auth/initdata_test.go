package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "1234567890:TEST_TOKEN_VALUE"

// signInitData produces init data signed the way the Telegram client does.
func signInitData(botToken string, fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+fields[k])
	}

	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(botToken))
	secret := secretMac.Sum(nil)

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(strings.Join(pairs, "\n")))
	hash := hex.EncodeToString(mac.Sum(nil))

	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	values.Set("hash", hash)
	return values.Encode()
}

func validFields(authDate time.Time) map[string]string {
	return map[string]string{
		"auth_date": fmt.Sprintf("%d", authDate.Unix()),
		"query_id":  "AAEtest",
		"user":      `{"id":99887766,"first_name":"Abel","username":"abel_dev"}`,
	}
}

func frozenVerifier(at time.Time) *Verifier {
	v := NewVerifier(testBotToken)
	v.now = func() time.Time { return at }
	return v
}

func TestVerifyAcceptsSignedData(t *testing.T) {
	now := time.Unix(1700000000, 0)
	initData := signInitData(testBotToken, validFields(now))

	user, err := frozenVerifier(now).Verify(initData)
	require.NoError(t, err)
	assert.Equal(t, int64(99887766), user.ID)
	assert.Equal(t, "Abel", user.FirstName)
	assert.Equal(t, "abel_dev", user.Username)
}

func TestVerifyRejectsTamperedUser(t *testing.T) {
	now := time.Unix(1700000000, 0)
	initData := signInitData(testBotToken, validFields(now))
	tampered := strings.Replace(initData, "99887766", "11111111", 1)

	_, err := frozenVerifier(now).Verify(tampered)
	var ierr *IntegrityError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, "signature mismatch", ierr.Message)
}

func TestVerifyRejectsWrongBotToken(t *testing.T) {
	now := time.Unix(1700000000, 0)
	initData := signInitData("other:TOKEN", validFields(now))

	_, err := frozenVerifier(now).Verify(initData)
	assert.Error(t, err)
}

func TestVerifyRejectsMissingHash(t *testing.T) {
	_, err := NewVerifier(testBotToken).Verify("auth_date=1700000000&user=%7B%22id%22%3A1%7D")
	var ierr *IntegrityError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, "missing hash", ierr.Message)
}

func TestVerifyRejectsStaleAuthDate(t *testing.T) {
	signedAt := time.Unix(1700000000, 0)
	initData := signInitData(testBotToken, validFields(signedAt))

	v := frozenVerifier(signedAt.Add(48 * time.Hour))
	_, err := v.Verify(initData)
	var ierr *IntegrityError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, "auth_date too old", ierr.Message)
}

func TestVerifyMaxAgeDisabled(t *testing.T) {
	signedAt := time.Unix(1700000000, 0)
	initData := signInitData(testBotToken, validFields(signedAt))

	v := frozenVerifier(signedAt.Add(48 * time.Hour))
	v.MaxAge = 0
	_, err := v.Verify(initData)
	assert.NoError(t, err)
}

func TestVerifyErrorDoesNotEchoInput(t *testing.T) {
	now := time.Unix(1700000000, 0)
	fields := validFields(now)
	initData := signInitData(testBotToken, fields)
	tampered := strings.Replace(initData, "Abel", "Evil", 1)

	_, err := frozenVerifier(now).Verify(tampered)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "Evil")
	assert.NotContains(t, err.Error(), "hash")
}
