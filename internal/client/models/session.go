package models

// Session is the signed-in user as stored under "currentUser".
type Session struct {
	UserID    string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func NewSession(u User) Session {
	return Session{
		UserID:    u.ID,
		Email:     u.Email,
		Name:      u.FullName(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
