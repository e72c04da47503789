package services

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GoogleIdentity is the subset of ID token claims the identity bridge needs.
type GoogleIdentity struct {
	Sub           string
	Email         string
	EmailVerified bool
	Name          string
	PictureURL    string
}

type OIDCVerifier interface {
	VerifyGoogleIDToken(ctx context.Context, idToken string) (*GoogleIdentity, error)
}

type oidcVerifier struct {
	httpClient *http.Client
	clientID   string
	allowedIss []string

	jwks          *jwksCache
	discoveryURL  string
	discoveryOnce sync.Once
	discoveryErr  error
}

func NewOIDCVerifier(httpClient *http.Client, googleClientID string) (OIDCVerifier, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if strings.TrimSpace(googleClientID) == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID is required")
	}
	return &oidcVerifier{
		httpClient:   httpClient,
		clientID:     googleClientID,
		allowedIss:   []string{"accounts.google.com", "https://accounts.google.com"},
		jwks:         newJWKSCache(httpClient),
		discoveryURL: "https://accounts.google.com/.well-known/openid-configuration",
	}, nil
}

type oidcDiscovery struct {
	Issuer  string `json:"issuer"`
	JWKSURI string `json:"jwks_uri"`
}

func (v *oidcVerifier) ensureDiscovery(ctx context.Context) error {
	v.discoveryOnce.Do(func() {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, v.discoveryURL, nil)
		res, err := v.httpClient.Do(req)
		if err != nil {
			v.discoveryErr = err
			return
		}
		defer res.Body.Close()

		if res.StatusCode < 200 || res.StatusCode >= 300 {
			v.discoveryErr = fmt.Errorf("discovery request failed: %s", res.Status)
			return
		}

		var d oidcDiscovery
		if err := json.NewDecoder(res.Body).Decode(&d); err != nil {
			v.discoveryErr = err
			return
		}
		if strings.TrimSpace(d.JWKSURI) == "" {
			v.discoveryErr = fmt.Errorf("discovery missing jwks_uri")
			return
		}
		v.jwks.setURL(d.JWKSURI)
	})
	return v.discoveryErr
}

func (v *oidcVerifier) VerifyGoogleIDToken(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, fmt.Errorf("id_token is empty")
	}
	if err := v.ensureDiscovery(ctx); err != nil {
		return nil, fmt.Errorf("oidc discovery error: %w", err)
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{"RS256"}))
	claims := jwt.MapClaims{}

	tok, err := parser.ParseWithClaims(idToken, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if strings.TrimSpace(kid) == "" {
			return nil, fmt.Errorf("missing kid")
		}
		return v.jwks.getKey(ctx, kid)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid id_token: %w", err)
	}
	if tok == nil || !tok.Valid {
		return nil, fmt.Errorf("invalid id_token")
	}

	if err := validateTimeClaims(claims, time.Now()); err != nil {
		return nil, err
	}

	iss, _ := claims["iss"].(string)
	if !containsString(v.allowedIss, iss) {
		return nil, fmt.Errorf("issuer mismatch: %q", iss)
	}
	if !audContains(claims["aud"], v.clientID) {
		return nil, fmt.Errorf("audience mismatch")
	}

	out := claimsToIdentity(claims)
	if out.Sub == "" {
		return nil, fmt.Errorf("missing sub")
	}
	return out, nil
}

func validateTimeClaims(claims jwt.MapClaims, now time.Time) error {
	// exp is required for ID tokens.
	expAny, ok := claims["exp"]
	if !ok {
		return fmt.Errorf("missing exp")
	}
	exp, err := parseNumericTime(expAny)
	if err != nil {
		return fmt.Errorf("invalid exp: %w", err)
	}
	if now.After(exp) {
		return fmt.Errorf("token expired")
	}

	if iatAny, ok := claims["iat"]; ok {
		iat, err := parseNumericTime(iatAny)
		if err != nil {
			return fmt.Errorf("invalid iat: %w", err)
		}
		if iat.After(now.Add(5 * time.Minute)) {
			return fmt.Errorf("token issued in the future")
		}
	}
	return nil
}

func parseNumericTime(v any) (time.Time, error) {
	var sec int64
	switch x := v.(type) {
	case float64:
		sec = int64(x)
	case int64:
		sec = x
	case int:
		sec = int64(x)
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return time.Time{}, err
		}
		sec = n
	default:
		return time.Time{}, fmt.Errorf("unexpected type %T", v)
	}
	if sec <= 0 {
		return time.Time{}, fmt.Errorf("non-positive numeric date")
	}
	return time.Unix(sec, 0).UTC(), nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func audContains(aud any, required string) bool {
	switch v := aud.(type) {
	case string:
		return v == required
	case []any:
		for _, it := range v {
			if s, ok := it.(string); ok && s == required {
				return true
			}
		}
	}
	return false
}

func claimsToIdentity(c jwt.MapClaims) *GoogleIdentity {
	out := &GoogleIdentity{}
	if s, _ := c["sub"].(string); s != "" {
		out.Sub = s
	}
	if e, _ := c["email"].(string); e != "" {
		out.Email = e
	}
	out.EmailVerified = parseBoolClaim(c["email_verified"])
	if n, _ := c["name"].(string); n != "" {
		out.Name = n
	}
	if p, _ := c["picture"].(string); p != "" {
		out.PictureURL = p
	}
	return out
}

func parseBoolClaim(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return strings.EqualFold(x, "true") || x == "1"
	case float64:
		return x != 0
	default:
		return false
	}
}

// ----- JWKS cache (RSA keys only) -----

type jwksCache struct {
	httpClient *http.Client

	mu      sync.RWMutex
	jwksURL string
	keys    map[string]*rsa.PublicKey

	fetchedAt time.Time
	ttl       time.Duration
}

func newJWKSCache(httpClient *http.Client) *jwksCache {
	return &jwksCache{
		httpClient: httpClient,
		keys:       map[string]*rsa.PublicKey{},
		ttl:        6 * time.Hour,
	}
}

func (j *jwksCache) setURL(url string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.jwksURL = url
}

type jwkSet struct {
	Keys []jwk `json:"keys"`
}

type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func (j *jwksCache) getKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	j.mu.RLock()
	key := j.keys[kid]
	stale := time.Since(j.fetchedAt) > j.ttl
	url := j.jwksURL
	j.mu.RUnlock()

	if key != nil && !stale {
		return key, nil
	}
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("jwks url not set")
	}

	if err := j.refresh(ctx, url); err != nil {
		// fallback to cached key if present
		j.mu.RLock()
		key = j.keys[kid]
		j.mu.RUnlock()
		if key != nil {
			return key, nil
		}
		return nil, err
	}

	j.mu.RLock()
	defer j.mu.RUnlock()
	key = j.keys[kid]
	if key == nil {
		return nil, fmt.Errorf("kid not found in jwks: %s", kid)
	}
	return key, nil
}

func (j *jwksCache) refresh(ctx context.Context, url string) error {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	res, err := j.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("jwks fetch failed: %s", res.Status)
	}

	var set jwkSet
	if err := json.NewDecoder(res.Body).Decode(&set); err != nil {
		return err
	}

	keys := map[string]*rsa.PublicKey{}
	for _, k := range set.Keys {
		if k.Kty != "RSA" || k.Kid == "" {
			continue
		}
		pub, err := rsaKeyFromJWK(k)
		if err != nil {
			continue
		}
		keys[k.Kid] = pub
	}
	if len(keys) == 0 {
		return errors.New("jwks contained no usable RSA keys")
	}

	j.mu.Lock()
	j.keys = keys
	j.fetchedAt = time.Now()
	j.mu.Unlock()
	return nil
}

func rsaKeyFromJWK(k jwk) (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("invalid modulus: %w", err)
	}
	eb, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("invalid exponent: %w", err)
	}
	e := 0
	for _, b := range eb {
		e = e<<8 | int(b)
	}
	if e <= 0 {
		return nil, errors.New("non-positive exponent")
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(nb), E: e}, nil
}
