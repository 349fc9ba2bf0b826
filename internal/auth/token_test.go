package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("unit-test-secret")

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer(testSecret, time.Hour)
	verifier := NewVerifier(testSecret)

	token, err := issuer.Issue(42)
	require.NoError(t, err)

	userID, err := verifier.VerifyHeader("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestVerifyHeaderMissing(t *testing.T) {
	verifier := NewVerifier(testSecret)
	issuer := NewIssuer(testSecret, time.Hour)
	token, err := issuer.Issue(1)
	require.NoError(t, err)

	cases := map[string]string{
		"empty header":     "",
		"no scheme":        token,
		"wrong scheme":     "Basic " + token,
		"empty credential": "Bearer ",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := verifier.VerifyHeader(header)
			assert.ErrorIs(t, err, ErrMissingToken)
		})
	}
}

func TestVerifyMalformedToken(t *testing.T) {
	verifier := NewVerifier(testSecret)
	_, err := verifier.VerifyHeader("Bearer not.a.jwt")
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewIssuer([]byte("some-other-secret"), time.Hour)
	verifier := NewVerifier(testSecret)

	token, err := issuer.Issue(7)
	require.NoError(t, err)

	_, err = verifier.VerifyHeader("Bearer " + token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyExpiredToken(t *testing.T) {
	issuer := NewIssuer(testSecret, -time.Minute)
	verifier := NewVerifier(testSecret)

	token, err := issuer.Issue(7)
	require.NoError(t, err)

	_, err = verifier.VerifyHeader("Bearer " + token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestIssueDistinctTokensOverTime(t *testing.T) {
	issuer := NewIssuer(testSecret, time.Hour)

	first, err := issuer.Issue(9)
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)
	second, err := issuer.Issue(9)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
