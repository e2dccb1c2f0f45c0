package learning

import (
	"time"
)

type Course struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"uniqueIndex;not null;column:title" json:"title"`
	Description string `gorm:"not null;default:'';column:description" json:"description"`

	Lessons []*Lesson `gorm:"foreignKey:CourseID;references:ID;constraint:OnDelete:CASCADE" json:"lessons,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Course) TableName() string { return "courses" }

func (c *Course) LessonIDs() []uint {
	if c == nil {
		return []uint{}
	}
	ids := make([]uint, 0, len(c.Lessons))
	for _, l := range c.Lessons {
		if l != nil {
			ids = append(ids, l.ID)
		}
	}
	return ids
}
