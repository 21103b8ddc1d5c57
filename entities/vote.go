package entities

import "time"

type Vote struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     string    `json:"user_id" gorm:"type:varchar(255);not null;uniqueIndex:unique_vote_user"`
	Email      string    `json:"email" gorm:"type:varchar(255);not null"`
	VotedAtUtc time.Time `json:"voted_at_utc" gorm:"type:timestamptz;not null"`
	VideoID    int64     `json:"video_id" gorm:"type:bigint;not null;index:idx_votes_video_id"`
}

func (Vote) TableName() string {
	return "votes"
}
