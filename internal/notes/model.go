package notes

import "github.com/TheShooter89/cheer-up-bot/internal/users"

// Note models the metadata of one uploaded video note. The payload itself
// lives on disk under the owner's folder; only the file name is persisted.
type Note struct {
	ID       int64  `gorm:"column:id;primaryKey" json:"id"`
	UserID   int64  `gorm:"column:user_id;not null;index" json:"user_id"`
	FileName string `gorm:"column:file_name;size:255;not null" json:"file_name"`

	Owner *users.User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

// TableName provides the explicit table binding for GORM.
func (Note) TableName() string {
	return "notes"
}

// NewNote describes the input accepted when registering an uploaded file.
type NewNote struct {
	UserID   int64  `json:"user_id"`
	FileName string `json:"file_name"`
}
