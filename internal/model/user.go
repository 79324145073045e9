package model

type UserRole string

const (
	Operator UserRole = "operator"
	Admin    UserRole = "admin"
)

// swagger:model
type User struct {
	UUIDBase
	Name     string   `gorm:"type:varchar(100);not null" json:"name"`
	Email    string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string   `gorm:"type:varchar(255);not null" json:"-"`
	Role     UserRole `gorm:"type:varchar(20);default:operator" json:"role"`
}
