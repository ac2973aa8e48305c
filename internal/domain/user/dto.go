package user

import "time"

// UserResponse represents user data in API responses
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	JoinDate string `json:"join_date"`
}

func (u User) ToResponse() UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
		JoinDate: u.JoinDate.Format(time.RFC3339),
	}
}
