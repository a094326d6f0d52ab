package domain

import "time"

// Account is a registered user. The OTP fields form a single shared slot:
// the email-verification and password-reset flows overwrite each other's
// pending code, so at most one code is live per account at any time.
type Account struct {
	AccountID               string     `json:"id" dynamodbav:"account_id"`
	Name                    string     `json:"name" dynamodbav:"name"`
	Email                   string     `json:"email" dynamodbav:"email"`
	PasswordHash            string     `json:"-" dynamodbav:"password_hash"`
	EmailVerifiedAt         *time.Time `json:"email_verified_at,omitempty" dynamodbav:"email_verified_at"`
	OTPCode                 *string    `json:"-" dynamodbav:"otp_code"`
	OTPExpiresAt            *time.Time `json:"-" dynamodbav:"otp_expires_at"`
	LastOTPSentAt           *time.Time `json:"-" dynamodbav:"last_otp_sent_at"`
	PasswordResetVerifiedAt *time.Time `json:"-" dynamodbav:"password_reset_verified_at"`
	CreatedAt               time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt               time.Time  `json:"updated" dynamodbav:"updated_at"`
}

// Verified reports whether the account's email address has been confirmed.
// Verification is terminal: there is no de-verification path.
func (a *Account) Verified() bool {
	return a.EmailVerifiedAt != nil
}
