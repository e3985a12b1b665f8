package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/veloexp/claim_approval_app/internal/core/domain"
)

// AuthClaims are the JWT claims issued at login. The workflow role,
// designation and email ride along so skip-rule matching does not need an
// extra employee lookup on every submission.
type AuthClaims struct {
	jwt.RegisteredClaims
	TenantID        string `json:"tid"`
	Role            string `json:"role"`
	DesignationCode string `json:"designation,omitempty"`
	Email           string `json:"email,omitempty"`
}

// GenerateJWT generates a signed access token for an employee.
func GenerateJWT(employee domain.Employee, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   employee.EmployeeID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		TenantID:        employee.TenantID,
		Role:            string(employee.Role),
		DesignationCode: employee.DesignationCode,
		Email:           employee.Email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
