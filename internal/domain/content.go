package domain

import "time"

// News Model (announcements)
type News struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	ImageURL  string    `gorm:"size:512" json:"image_url,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// GalleryPhoto Model
type GalleryPhoto struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255" json:"title"`
	ImageURL  string    `gorm:"size:512;not null" json:"image_url"` // Full-size public path
	ThumbURL  string    `gorm:"size:512" json:"thumb_url"`          // Generated thumbnail path
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Document Model (club document archive)
type Document struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Category  string    `gorm:"size:128" json:"category"`
	FileURL   string    `gorm:"size:512;not null" json:"file_url"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
