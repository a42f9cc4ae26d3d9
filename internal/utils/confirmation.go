package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/hkdf"

	"review_system/internal/domain"
)

// ErrInvalidCode is returned for malformed, expired or stale codes.
var ErrInvalidCode = errors.New("invalid confirmation code")

// CodeGenerator issues confirmation codes that can be verified without
// being stored. A code is bound to the state of the user it was issued for:
// once any field that feeds the hash changes (activation, last login, an
// edit bumping updated_at) every outstanding code stops verifying.
type CodeGenerator struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewCodeGenerator derives a dedicated HMAC key from secret so the access
// token key and the confirmation key never coincide.
func NewCodeGenerator(secret string, ttl time.Duration) (*CodeGenerator, error) {
	key, err := DeriveKey(secret, "confirmation-code")
	if err != nil {
		return nil, err
	}
	return &CodeGenerator{key: key, ttl: ttl, now: time.Now}, nil
}

// DeriveKey expands secret into a 32 byte key bound to info.
func DeriveKey(secret, info string) ([]byte, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", info, err)
	}
	return key, nil
}

// Make returns a code of the form "<base36 timestamp>-<hex mac>". u must be
// loaded from storage so the timestamps carry the precision Check will see.
func (g *CodeGenerator) Make(u *domain.User) string {
	ts := g.now().Unix()
	return strconv.FormatInt(ts, 36) + "-" + g.mac(u, ts)
}

// Check verifies code against the current state of u.
func (g *CodeGenerator) Check(u *domain.User, code string) error {
	tsPart, macPart, ok := strings.Cut(code, "-")
	if !ok || tsPart == "" || macPart == "" {
		return ErrInvalidCode
	}
	ts, err := strconv.ParseInt(tsPart, 36, 64)
	if err != nil {
		return ErrInvalidCode
	}
	if !hmac.Equal([]byte(g.mac(u, ts)), []byte(macPart)) {
		return ErrInvalidCode
	}
	age := g.now().Sub(time.Unix(ts, 0))
	if age < 0 || age > g.ttl {
		return ErrInvalidCode
	}
	return nil
}

func (g *CodeGenerator) mac(u *domain.User, ts int64) string {
	var lastLogin int64
	if u.LastLogin != nil {
		lastLogin = u.LastLogin.UnixMicro()
	}
	state := fmt.Sprintf("%d|%s|%s|%t|%d|%d|%d",
		u.ID, u.Username, u.Email, u.IsActive, lastLogin, u.UpdatedAt.UnixMicro(), ts)
	h := hmac.New(sha256.New, g.key)
	h.Write([]byte(state))
	return hex.EncodeToString(h.Sum(nil)[:20])
}
