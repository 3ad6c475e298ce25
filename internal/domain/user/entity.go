package user

// User represents the users table
type User struct {
	ID           uint    `gorm:"primaryKey"`
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email"`
	PasswordHash string  `gorm:"column:hashed_password;not null"`
	Nickname     string  `gorm:"type:varchar(255);not null"`
	AvatarURL    *string `gorm:"type:text"`
}

func (User) TableName() string { return "users" }

// Profile is the public view of a user. It never carries the password hash.
type Profile struct {
	ID        uint    `json:"id"`
	Email     string  `json:"email"`
	Nickname  string  `json:"nickname"`
	AvatarURL *string `json:"avatar_url"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		Email:     u.Email,
		Nickname:  u.Nickname,
		AvatarURL: u.AvatarURL,
	}
}
