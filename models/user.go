package models

// User is the backend's profile record for the active user.
type User struct {
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// Registration is the body of POST /users.
type Registration struct {
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Interests []string `json:"interests"`
}
