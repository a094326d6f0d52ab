package domain

import "time"

// Session is an opaque bearer credential. Sessions have no expiry; they live
// until revoked by logout, password reset (all sessions) or password change
// (all but the current one).
type Session struct {
	Token     string    `json:"token" dynamodbav:"token"`
	AccountID string    `json:"account_id" dynamodbav:"account_id"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	Account   *Account  `json:"account,omitempty" dynamodbav:"-"`
}
