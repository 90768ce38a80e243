package domain

// User represents a user of the application in the domain.
// Every transaction and savings goal is owned by exactly one user.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	AuditFields
}

func (u *User) GetUserID() string   { return u.UserID }
func (u *User) GetUsername() string { return u.Username }
func (u *User) GetName() string     { return u.Name }
