package session

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func testSigner(expMin int) *Signer {
	return &Signer{Secret: []byte("test-secret"), Issuer: "healthassist", ExpMin: expMin}
}

func TestSignAndParse(t *testing.T) {
	s := testSigner(60)

	token, err := s.Sign("doctor", "doctor")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := s.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, "doctor", claims.Username)
	assert.Equal(t, "doctor", claims.Role)
	assert.Equal(t, "healthassist", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParse_InvalidToken(t *testing.T) {
	s := testSigner(60)

	_, err := s.Parse("invalid.token.string")
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	s := testSigner(-1)

	token, _ := s.Sign("admin", "admin")
	_, err := s.Parse(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParse_WrongSecret(t *testing.T) {
	s := testSigner(60)
	other := &Signer{Secret: []byte("other-secret"), Issuer: "healthassist", ExpMin: 60}

	token, _ := s.Sign("admin", "admin")
	_, err := other.Parse(token)
	assert.Error(t, err)
}

func TestParse_RejectsNonHMAC(t *testing.T) {
	s := testSigner(60)

	claims := Claims{Username: "admin", Role: "admin"}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	str, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = s.Parse(str)
	assert.Error(t, err)
}
