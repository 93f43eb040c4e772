package domain

import "time"

// MatchSchedule Model. Team lists are JSON arrays of user ids; referential
// validity against users is the caller's concern, nothing is enforced here.
type MatchSchedule struct {
	ID           uint      `gorm:"primaryKey" json:"id"`                  // Primary key
	Opponent     string    `gorm:"size:255;not null" json:"opponent"`     // Opposing team name
	MatchDate    time.Time `gorm:"not null;index" json:"match_date"`      // Kickoff time
	Venue        string    `gorm:"size:255" json:"venue"`                 // Where the match is played
	MatchType    string    `gorm:"size:64" json:"match_type"`             // friendly, league, tournament...
	Status       string    `gorm:"size:32;default:upcoming" json:"status"` // upcoming, finished, cancelled
	PlayerTeam   string    `gorm:"type:text" json:"player_team"`          // JSON array of player user ids
	OfficialTeam string    `gorm:"type:text" json:"official_team"`        // JSON array of official user ids
	CoachID      *uint     `json:"coach_id"`                              // Assigned coach
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}
