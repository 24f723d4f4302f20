package oauth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"github.com/userhub/dashboard-api/internal/core/domain"
)

// StateCodec signs the OAuth state parameter so the callback can trust
// the redirect path it carries. Format: base64url(path).base64url(mac).
type StateCodec struct {
	secret []byte
}

func NewStateCodec(secret string) *StateCodec {
	return &StateCodec{secret: []byte(secret)}
}

func (c *StateCodec) Encode(redirect string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(redirect))
	return payload + "." + c.sign(payload)
}

// Decode verifies the signature and returns the embedded redirect path.
func (c *StateCodec) Decode(state string) (string, error) {
	payload, mac, ok := strings.Cut(state, ".")
	if !ok {
		return "", domain.NewError(domain.KindUnauthorized, "malformed oauth state")
	}
	if !hmac.Equal([]byte(mac), []byte(c.sign(payload))) {
		return "", domain.NewError(domain.KindUnauthorized, "oauth state signature mismatch")
	}
	redirect, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", domain.NewError(domain.KindUnauthorized, "malformed oauth state")
	}
	return string(redirect), nil
}

func (c *StateCodec) sign(payload string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
