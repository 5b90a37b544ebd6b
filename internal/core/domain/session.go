package domain

// User is the profile of the signed-in customer.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
}

// IsZero reports whether the profile carries no identity.
func (u User) IsZero() bool {
	return u.ID == "" && u.Username == "" && u.Email == ""
}

// UserUpdate is a partial profile edit; nil fields are left unchanged.
type UserUpdate struct {
	FullName    *string
	PhoneNumber *string
	Email       *string
}

// Session holds the current user identity and bearer token.
// It is created on login or registration and destroyed on logout.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Authenticated reports whether both a user and a token are present.
func (s Session) Authenticated() bool {
	return !s.User.IsZero() && s.Token != ""
}

// Apply merges a partial update into the stored profile.
func (s *Session) Apply(update UserUpdate) {
	if update.FullName != nil {
		s.User.FullName = *update.FullName
	}
	if update.PhoneNumber != nil {
		s.User.PhoneNumber = *update.PhoneNumber
	}
	if update.Email != nil {
		s.User.Email = *update.Email
	}
}
