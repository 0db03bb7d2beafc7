// Package token decodes the bearer tokens issued by the auth service.
//
// The client never holds the signing key, so tokens are decoded without
// signature verification; the backends verify them. Everything here is
// fail-open: a bad slot or token yields an empty result, never an error the
// request path has to handle.
package token

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserIDClaim is the claim carrying the platform user id
const UserIDClaim = "userId"

// ErrMissingUserID is returned by Parse when the token has no userId claim
var ErrMissingUserID = errors.New("token has no userId claim")

var parser = jwt.NewParser()

// Claims are the token fields the client cares about
type Claims struct {
	UserID    string
	Subject   string
	Email     string
	Role      string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that is before now.
// Tokens without exp never expire from the client's point of view.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Parse decodes a JWT without verifying its signature
func Parse(raw string) (Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, mc); err != nil {
		return Claims{}, err
	}

	c := Claims{
		UserID: stringClaim(mc, UserIDClaim),
		Email:  stringClaim(mc, "email"),
		Role:   stringClaim(mc, "role"),
	}
	if sub, err := mc.GetSubject(); err == nil {
		c.Subject = sub
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}

	if c.UserID == "" {
		return c, ErrMissingUserID
	}
	return c, nil
}

// UserID returns the userId claim of raw, or "" on any decode failure
func UserID(raw string) string {
	if raw == "" {
		return ""
	}
	c, err := Parse(raw)
	if err != nil {
		return ""
	}
	return c.UserID
}

// slotPayload is the subset of the persisted auth slot read per request
type slotPayload struct {
	State struct {
		Token *string `json:"token"`
	} `json:"state"`
}

// TokenFromSlot returns the bearer token held in a serialized auth slot,
// or "" when the slot is empty or malformed.
func TokenFromSlot(slot []byte) string {
	if len(slot) == 0 {
		return ""
	}
	var p slotPayload
	if err := json.Unmarshal(slot, &p); err != nil || p.State.Token == nil {
		return ""
	}
	return *p.State.Token
}

// UserIDFromSlot returns the user id embedded in the token of a serialized
// auth slot, or "" when any step fails.
func UserIDFromSlot(slot []byte) string {
	return UserID(TokenFromSlot(slot))
}

func stringClaim(mc jwt.MapClaims, name string) string {
	s, _ := mc[name].(string)
	return s
}
