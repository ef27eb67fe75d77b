package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base32"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"net/url"
	"strconv"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

// Enrollment is the artifact handed to the caller after second-factor
// issuance: the seed in authenticator-friendly base32 form, the otpauth://
// provisioning URI, and a scannable QR rendering of that URI.
type Enrollment struct {
	SecretBase32 string
	URI          string
	PNG          []byte
}

// QRRenderer turns a provisioning URI into displayable image bytes. The
// subsystem only requests rendering and hands the result upward; it never
// interprets the encoding.
type QRRenderer func(uri string) ([]byte, error)

// SecondFactor is the time-based code capability an [Engine] uses for
// enrollment and verification. Any standards-compliant implementation can be
// substituted via [NewWithSecondFactor].
type SecondFactor interface {
	// Issue generates a fresh seed and the enrollment artifact binding it
	// to the issuer label and account name.
	Issue(account string) ([]byte, *Enrollment, error)
	// CodeAt computes the expected one-time code for secret at the time
	// step containing at.
	CodeAt(secret []byte, at time.Time) (string, error)
}

type totpManager struct {
	config SecondFactorConfig
	issuer string
	render QRRenderer
}

func newTOTPManager(issuer string, cfg SecondFactorConfig, render QRRenderer) *totpManager {
	if cfg.Algorithm == "" {
		cfg.Algorithm = "SHA1"
	}
	if render == nil {
		render = renderQRPNG
	}
	return &totpManager{config: cfg, issuer: issuer, render: render}
}

func renderQRPNG(uri string) ([]byte, error) {
	return qrcode.Encode(uri, qrcode.Medium, 256)
}

func (m *totpManager) Issue(account string) ([]byte, *Enrollment, error) {
	raw := make([]byte, m.config.SecretSize)
	if _, err := rand.Read(raw); err != nil {
		return nil, nil, fmt.Errorf("generate second factor seed: %w", err)
	}

	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	secretBase32 := enc.EncodeToString(raw)
	uri := m.provisionURI(secretBase32, account)

	png, err := m.render(uri)
	if err != nil {
		return nil, nil, fmt.Errorf("render enrollment artifact: %w", err)
	}

	return raw, &Enrollment{
		SecretBase32: secretBase32,
		URI:          uri,
		PNG:          png,
	}, nil
}

func (m *totpManager) provisionURI(secretBase32, account string) string {
	label := url.PathEscape(m.issuer + ":" + account)

	v := url.Values{}
	v.Set("secret", secretBase32)
	v.Set("issuer", m.issuer)
	v.Set("period", strconv.Itoa(m.config.Period))
	v.Set("digits", strconv.Itoa(m.config.Digits))
	v.Set("algorithm", strings.ToUpper(m.config.Algorithm))

	return "otpauth://totp/" + label + "?" + v.Encode()
}

func (m *totpManager) CodeAt(secret []byte, at time.Time) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("empty totp secret")
	}
	counter := at.Unix() / int64(m.config.Period)
	return hotpCode(secret, counter, m.config.Digits, m.config.Algorithm)
}

func hotpCode(secret []byte, counter int64, digits int, algorithm string) (string, error) {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], uint64(counter))

	hf, err := hmacFunc(algorithm)
	if err != nil {
		return "", err
	}
	mac := hmac.New(hf, secret)
	_, _ = mac.Write(msg[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	bin := (int(sum[offset])&0x7f)<<24 |
		(int(sum[offset+1])&0xff)<<16 |
		(int(sum[offset+2])&0xff)<<8 |
		(int(sum[offset+3]) & 0xff)

	mod := 1
	for i := 0; i < digits; i++ {
		mod *= 10
	}

	code := bin % mod
	return fmt.Sprintf("%0*d", digits, code), nil
}

func hmacFunc(algorithm string) (func() hash.Hash, error) {
	switch strings.ToUpper(algorithm) {
	case "SHA1":
		return sha1.New, nil
	case "SHA256":
		return sha256.New, nil
	case "SHA512":
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("unsupported totp algorithm %q", algorithm)
	}
}

func isNumericString(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
