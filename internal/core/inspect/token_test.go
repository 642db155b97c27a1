package inspect

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{name: "top level", raw: `{"access":"abc","refresh":"r"}`, want: "abc", wantOK: true},
		{name: "nested", raw: `{"data":{"access":"nested"}}`, want: "nested", wantOK: true},
		{name: "top level wins", raw: `{"access":"top","data":{"access":"nested"}}`, want: "top", wantOK: true},
		{name: "empty top level falls through", raw: `{"access":"","data":{"access":"nested"}}`, want: "nested", wantOK: true},
		{name: "non string token", raw: `{"access":123}`, wantOK: false},
		{name: "data not object", raw: `{"data":"x"}`, wantOK: false},
		{name: "nothing", raw: `{"detail":"ok"}`, wantOK: false},
		{name: "array response", raw: `[{"access":"abc"}]`, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractToken(mustDecode(t, tt.raw))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescribeToken(t *testing.T) {
	iat := time.Now().Add(-time.Minute).Truncate(time.Second)
	exp := iat.Add(15 * time.Minute)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        "17",
		"user_id":    17,
		"token_type": "access",
		"iat":        iat.Unix(),
		"exp":        exp.Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	info, err := DescribeToken(token)
	require.NoError(t, err)

	assert.Equal(t, "HS256", info.Algorithm)
	assert.Equal(t, "17", info.Subject)
	assert.Equal(t, "17", info.UserID)
	assert.Equal(t, "access", info.TokenType)
	assert.True(t, info.IssuedAt.Equal(iat))
	assert.True(t, info.ExpiresAt.Equal(exp))
	assert.False(t, info.Expired(iat))
	assert.True(t, info.Expired(exp.Add(time.Second)))
}

func TestDescribeToken_Opaque(t *testing.T) {
	_, err := DescribeToken("d41d8cd98f00b204e9800998ecf8427e")
	assert.Error(t, err)
}
