package models

// User is a dashboard account of the identity provider
type User struct {
	BaseModel
	Email    string `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Name     string `gorm:"type:varchar(100)" json:"name"`
	Password string `gorm:"type:varchar(100);not null" json:"-"`             // bcrypt hash, never serialised
	Role     string `gorm:"type:varchar(20);default:'staff'" json:"role"`    // admin, staff
	Status   string `gorm:"type:varchar(20);default:'active'" json:"status"` // active, disabled
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// Identity is the signed-in user passed explicitly into screen services.
type Identity struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// Label is what tasks are assigned to: the email, or the name for accounts without one.
func (i Identity) Label() string {
	if i.Email != "" {
		return i.Email
	}
	return i.Name
}
