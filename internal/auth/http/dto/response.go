// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
)

// SetupTwoFactorResponse contains the result of starting two-factor enrollment.
// SECURITY: The secret is only returned once and must be saved securely.
type SetupTwoFactorResponse struct {
	Secret          string `json:"secret"`
	ProvisioningURL string `json:"provisioning_url"`
}

// EnrollmentResponse represents two-factor enrollment state in API responses.
type EnrollmentResponse struct {
	Status      string     `json:"status"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
}

// MapEnrollmentToResponse converts a domain enrollment to an API response.
func MapEnrollmentToResponse(enrollment *authDomain.TwoFactorEnrollment) EnrollmentResponse {
	return EnrollmentResponse{
		Status:      string(enrollment.Status),
		ConfirmedAt: enrollment.ConfirmedAt,
	}
}
