package domain

// User is an account that owns boards
type User struct {
	BaseModel
	Email           string  `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email" json:"email"`
	PasswordHash    string  `gorm:"type:varchar(255);not null" json:"-"`
	DisplayName     string  `gorm:"type:varchar(100);not null" json:"displayName"`
	Bio             string  `gorm:"type:varchar(500)" json:"bio"`
	ProfileImageKey *string `gorm:"type:text" json:"-"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
