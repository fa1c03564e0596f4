package models

type Category struct {
	ID     uint   `gorm:"primaryKey;autoIncrement"`
	EName  string `gorm:"unique"`
	ARName string `gorm:"unique;not null"`
	Image  string
	Books  []Book `gorm:"many2many:book_categories"`
}
