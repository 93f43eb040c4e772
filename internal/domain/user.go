package domain

// Role values stored on User.Role
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User Model (login credentials plus the roster profile)
type User struct {
	ID              uint   `gorm:"primaryKey" json:"id"`              // Primary key
	Username        string `gorm:"unique;not null" json:"username"`   // Unique login name
	Password        string `gorm:"not null" json:"-"`                 // Hashed password, never serialized
	Role            string `gorm:"default:user" json:"role"`          // Role: user or admin
	FullName        string `gorm:"size:255" json:"full_name"`         // Player full name
	NIM             string `gorm:"column:nim;size:32" json:"nim"`     // Student id number
	Program         string `gorm:"size:128" json:"program"`           // Study program
	Position        string `gorm:"size:64" json:"position"`           // Playing position
	JerseyNumber    int    `json:"jersey_number"`                     // Shirt number
	AvatarURL       string `gorm:"size:512" json:"avatar_url"`        // Public avatar path
	Phone           string `gorm:"size:64" json:"phone"`              // Contact phone
	Goals           int    `gorm:"default:0" json:"goals"`            // Goals scored
	AttitudeScore   int    `gorm:"default:0" json:"attitude_score"`   // Coach-assigned attitude points
	AttendanceCount int    `gorm:"default:0" json:"attendance_count"` // Accepted attendance scans
	Score           int    `gorm:"default:0" json:"score"`            // Derived, see RecomputeScore
}

// RecomputeScore derives Score from its contributing fields. Every write path
// that mutates Goals, AttitudeScore or AttendanceCount must call this before
// persisting, so the stored value cannot drift from its inputs.
func (u *User) RecomputeScore() {
	u.Score = u.Goals*10 + u.AttitudeScore + u.AttendanceCount*5
}
