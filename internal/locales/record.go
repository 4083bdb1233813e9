package locales

// Record is the persisted locale lookup row referenced by users.
type Record struct {
	ID       int64  `gorm:"column:id;primaryKey"`
	Language string `gorm:"column:language;size:8;not null;uniqueIndex"`
}

// TableName provides the explicit table binding for GORM.
func (Record) TableName() string {
	return "locales"
}
