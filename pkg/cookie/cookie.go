package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// DefaultName is the cookie that holds the pending notice.
const DefaultName = "notice"

// MinSecretLength is the shortest accepted signing secret.
const MinSecretLength = 32

// Errors.
var (
	ErrBadSecret = errors.New("cookie: secret must be 32+ bytes")
	ErrNotFound  = errors.New("cookie: not found")
	ErrBadSig    = errors.New("cookie: invalid signature")
)

// Notice kinds.
const (
	KindSuccess = "success"
	KindError   = "error"
)

// Notice is a message shown once on the next page.
type Notice struct {
	Kind string `json:"k"`
	Text string `json:"t"`
}

// Success builds a success notice.
func Success(text string) Notice { return Notice{Kind: KindSuccess, Text: text} }

// Failure builds an error notice.
func Failure(text string) Notice { return Notice{Kind: KindError, Text: text} }

// Manager signs and verifies notice cookies.
type Manager struct {
	secret   []byte
	name     string
	path     string
	secure   bool
	sameSite http.SameSite
}

// Option configures the Manager.
type Option func(*Manager)

// New creates a Manager. The secret must be at least MinSecretLength bytes.
func New(secret string, opts ...Option) (*Manager, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrBadSecret
	}
	m := &Manager{
		secret:   []byte(secret),
		name:     DefaultName,
		path:     "/",
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// WithName sets the cookie name.
func WithName(name string) Option {
	return func(m *Manager) {
		if name != "" {
			m.name = name
		}
	}
}

// WithPath sets the cookie path.
func WithPath(path string) Option {
	return func(m *Manager) {
		m.path = path
	}
}

// WithSecure sets the Secure flag.
func WithSecure(secure bool) Option {
	return func(m *Manager) {
		m.secure = secure
	}
}

// WithSameSite sets the SameSite attribute.
func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) {
		m.sameSite = ss
	}
}

// Set stores n for the next request.
func (m *Manager) Set(w http.ResponseWriter, n Notice) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	http.SetCookie(w, m.cookie(m.sign(data), 0))
	return nil
}

// Pop returns the pending notice and clears it. A missing or tampered
// cookie reports false; a tampered one is cleared as well.
func (m *Manager) Pop(w http.ResponseWriter, r *http.Request) (Notice, bool) {
	n, err := m.Read(r)
	if errors.Is(err, ErrNotFound) {
		return Notice{}, false
	}
	http.SetCookie(w, m.cookie("", -1))
	if err != nil {
		return Notice{}, false
	}
	return n, true
}

// Read returns the pending notice without clearing it.
func (m *Manager) Read(r *http.Request) (Notice, error) {
	c, err := r.Cookie(m.name)
	if err != nil {
		return Notice{}, ErrNotFound
	}

	data, err := m.verify(c.Value)
	if err != nil {
		return Notice{}, err
	}

	var n Notice
	if err := json.Unmarshal(data, &n); err != nil {
		return Notice{}, ErrBadSig
	}
	return n, nil
}

// sign encodes value as base64(value).base64(hmac).
func (m *Manager) sign(value []byte) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write(value)
	return base64.RawURLEncoding.EncodeToString(value) +
		"." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (m *Manager) verify(raw string) ([]byte, error) {
	encoded, encodedSig, ok := strings.Cut(raw, ".")
	if !ok {
		return nil, ErrBadSig
	}

	value, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrBadSig
	}
	sig, err := base64.RawURLEncoding.DecodeString(encodedSig)
	if err != nil {
		return nil, ErrBadSig
	}

	mac := hmac.New(sha256.New, m.secret)
	mac.Write(value)
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return nil, ErrBadSig
	}
	return value, nil
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.name,
		Value:    value,
		Path:     m.path,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: m.sameSite,
	}
}
