package dto

// UserResponse is the public view of a user. The password hash is never exposed.
type UserResponse struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// ToUserResponse accepts anything exposing the user getters, domain.User included.
func ToUserResponse(user interface {
	GetUserID() string
	GetUsername() string
	GetName() string
}) UserResponse {
	return UserResponse{
		UserID:   user.GetUserID(),
		Username: user.GetUsername(),
		Name:     user.GetName(),
	}
}
