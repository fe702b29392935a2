package slack

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"
)

const (
	signatureVersion = "v0"
	// maxTimestampSkew 超过该时间窗的请求视为重放，直接拒绝
	maxTimestampSkew = 5 * time.Minute
)

var (
	ErrStaleTimestamp    = errors.New("request timestamp outside of tolerance")
	ErrSignatureMismatch = errors.New("request signature mismatch")
)

// SignatureVerifier 校验 Slack 请求签名
// 签名基串为 "v0:{timestamp}:{body}"，HMAC-SHA256 后十六进制编码
type SignatureVerifier struct {
	secret []byte
	now    func() time.Time
}

func NewSignatureVerifier(signingSecret string) *SignatureVerifier {
	return &SignatureVerifier{
		secret: []byte(signingSecret),
		now:    time.Now,
	}
}

func (s *SignatureVerifier) Verify(body []byte, timestamp, signature string) error {
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrStaleTimestamp
	}

	skew := s.now().Sub(time.Unix(ts, 0))
	if skew > maxTimestampSkew || skew < -maxTimestampSkew {
		return ErrStaleTimestamp
	}

	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s:%s:", signatureVersion, timestamp)
	mac.Write(body)
	expected := signatureVersion + "=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureMismatch
	}
	return nil
}
