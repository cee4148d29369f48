package domain

import "time"

// TwoFactorRecord is a user's TOTP enrollment. There is at most one per user.
// IsEnabled only becomes true once the user proves they can produce codes.
type TwoFactorRecord struct {
	ID        int64
	UserID    int64
	SecretKey string // base32
	IsEnabled bool
	CreatedAt time.Time
}

// TwoFactorEnrollment is handed to the user when they start enrolling.
type TwoFactorEnrollment struct {
	QRCodeURL  string // data:image/png;base64 URI of the provisioning QR code
	SecretKey  string // for manual entry
	OTPAuthURL string
}
