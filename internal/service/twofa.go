package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"
)

// TwoFactorState tracks two-factor enrollment on this device.
type TwoFactorState string

const (
	TwoFactorOff     TwoFactorState = "off"
	TwoFactorPending TwoFactorState = "qr" // secret issued, waiting for first code
	TwoFactorOn      TwoFactorState = "on"
)

const (
	totpPeriod = 30 * time.Second
	totpDigits = 6
	// Accept one step of clock drift either way.
	totpSkew = 1
)

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// TwoFactorEnrollment is a device-local TOTP enrollment: the secret
// never leaves the client and codes are checked here, not by the server.
type TwoFactorEnrollment struct {
	mu     sync.Mutex
	state  TwoFactorState
	secret string
	now    func() time.Time
}

func NewTwoFactorEnrollment() *TwoFactorEnrollment {
	return &TwoFactorEnrollment{state: TwoFactorOff, now: time.Now}
}

func (e *TwoFactorEnrollment) State() TwoFactorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Begin issues a fresh secret and moves to the pending state. Calling it
// again reissues the secret.
func (e *TwoFactorEnrollment) Begin() (secret string, err error) {
	raw := make([]byte, 20)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == TwoFactorOn {
		return "", fmt.Errorf("two-factor already enabled")
	}
	e.secret = b32.EncodeToString(raw)
	e.state = TwoFactorPending
	return e.secret, nil
}

// ProvisioningURI renders the otpauth URI encoded into the QR code.
func (e *TwoFactorEnrollment) ProvisioningURI(account, issuer string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.secret == "" {
		return ""
	}
	q := url.Values{}
	q.Set("secret", e.secret)
	q.Set("issuer", issuer)
	q.Set("digits", fmt.Sprint(totpDigits))
	q.Set("period", fmt.Sprint(int(totpPeriod.Seconds())))
	label := url.PathEscape(issuer + ":" + account)
	return "otpauth://totp/" + label + "?" + q.Encode()
}

// Confirm checks the first authenticator code and completes enrollment.
func (e *TwoFactorEnrollment) Confirm(code string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != TwoFactorPending {
		return false
	}
	if !e.verify(code) {
		return false
	}
	e.state = TwoFactorOn
	return true
}

// Verify checks an authenticator code against the enrolled secret.
func (e *TwoFactorEnrollment) Verify(code string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != TwoFactorOn {
		return false
	}
	return e.verify(code)
}

// Disable turns two-factor off and discards the secret.
func (e *TwoFactorEnrollment) Disable() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = TwoFactorOff
	e.secret = ""
}

// verify implements RFC 6238 with SHA-1, checking the current step and
// totpSkew steps either side. Callers hold the lock.
func (e *TwoFactorEnrollment) verify(code string) bool {
	key, err := b32.DecodeString(e.secret)
	if err != nil {
		return false
	}
	step := e.now().Unix() / int64(totpPeriod.Seconds())
	for offset := int64(-totpSkew); offset <= totpSkew; offset++ {
		if subtle.ConstantTimeCompare([]byte(hotp(key, uint64(step+offset))), []byte(code)) == 1 {
			return true
		}
	}
	return false
}

// hotp computes one RFC 4226 code for the given counter.
func hotp(key []byte, counter uint64) string {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(sha1.New, key)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	code := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff
	return fmt.Sprintf("%0*d", totpDigits, code%1000000)
}
