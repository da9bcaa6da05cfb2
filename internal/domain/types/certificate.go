package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// CertificateValidity is the lifetime of every issued certificate.
const CertificateValidity = 365 * 24 * time.Hour

// Certificate is the placeholder identity credential of an organisation.
type Certificate struct {
	OrgName   Org       `json:"orgName"`
	Algorithm string    `json:"algorithm"`
	PublicKey string    `json:"publicKey"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the certificate is no longer valid at now.
func (c Certificate) Expired(now time.Time) bool { return !now.Before(c.ExpiresAt) }

// Fingerprint returns a short hex fingerprint of the public key: SHA-256
// truncated to 10 bytes (20 hex chars).
func (c Certificate) Fingerprint() string {
	sum := sha256.Sum256([]byte(c.PublicKey))
	return hex.EncodeToString(sum[:10])
}
