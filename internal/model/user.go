package model

// User is a registered account as persisted in the users collection.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"` // Argon2id PHC hash, never the raw value
}

// CreateUserRequest represents a user registration request.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// UserResponse represents user data safe for API responses.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// MessageResponse is the body of every plain acknowledgement and error.
type MessageResponse struct {
	Message string `json:"message"`
}
