package dto

// LoginRequest defines the credentials for password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the signed access token on successful login.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresIn int64            `json:"expiresIn"` // Seconds until expiry
	Employee  EmployeeResponse `json:"employee"`
}
