package account

// RegisterRequest creates a new account. Role defaults to applicant.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `json:"role"`
}

// LoginRequest authenticates by username and password
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse carries the issued token with its user
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
