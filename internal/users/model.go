package users

// User models a Telegram account known to the API. The locale column is a
// foreign key into the locales lookup table; LocaleCode carries the joined
// language code on reads and is never written.
type User struct {
	ID         int64   `gorm:"column:id;primaryKey" json:"id"`
	TelegramID int64   `gorm:"column:telegram_id;not null;uniqueIndex" json:"telegram_id"`
	Username   string  `gorm:"column:username;size:190;not null;uniqueIndex" json:"username"`
	FirstName  string  `gorm:"column:first_name;size:190;not null" json:"first_name"`
	LastName   *string `gorm:"column:last_name;size:190" json:"last_name"`
	LocaleID   int64   `gorm:"column:locale;not null;default:1" json:"-"`
	LocaleCode string  `gorm:"column:locale_code;->;-:migration" json:"locale"`
}

// TableName provides the explicit table binding for GORM.
func (User) TableName() string {
	return "users"
}

// NewUser describes the input accepted when registering a user.
type NewUser struct {
	TelegramID int64   `json:"telegram_id"`
	Username   string  `json:"username"`
	FirstName  string  `json:"first_name"`
	LastName   *string `json:"last_name"`
	Locale     string  `json:"locale"`
}
