package verification

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strconv"
	"time"

	customErrors "github.com/taskhive/task-service/internal/domain/errors"
)

// Service produces and validates the HMAC-signed, timestamp-bound URLs used
// for email confirmation. The signature covers the literal string
// "email#requestAt", so validation must run over the raw query values, never
// over re-parsed or reformatted ones.
type Service struct {
	secret  []byte
	baseURL string
	ttl     time.Duration
	now     func() time.Time
}

func New(secret, baseURL string, ttl time.Duration) *Service {
	return &Service{
		secret:  []byte(secret),
		baseURL: baseURL,
		ttl:     ttl,
		now:     time.Now,
	}
}

// BuildLink captures the current time and returns the verification URL with
// email, timestamp and signature embedded as query parameters.
func (s *Service) BuildLink(email string) string {
	requestAt := strconv.FormatInt(s.now().UnixMilli(), 10)

	q := url.Values{}
	q.Set("email", email)
	q.Set("request_at", requestAt)
	q.Set("signature", s.sign(email, requestAt))

	return s.baseURL + "/auth/verify?" + q.Encode()
}

// Validate checks the signature first and the age second: a forged link is
// rejected before it can probe the clock-based expiry policy.
func (s *Service) Validate(email, requestAt, signature string) error {
	expected := s.sign(email, requestAt)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return customErrors.ErrInvalidSignature
	}

	millis, err := strconv.ParseInt(requestAt, 10, 64)
	if err != nil {
		return customErrors.ErrInvalidSignature
	}
	if s.now().Sub(time.UnixMilli(millis)) > s.ttl {
		return customErrors.ErrLinkExpired
	}
	return nil
}

func (s *Service) sign(email, requestAt string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(email + "#" + requestAt))
	return hex.EncodeToString(mac.Sum(nil))
}
