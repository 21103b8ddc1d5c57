package entities

type Video struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name     string `json:"name" gorm:"type:varchar(255);not null"`
	Streamer string `json:"streamer" gorm:"type:varchar(255)"`
	URLSlug  string `json:"url_slug" gorm:"type:varchar(255)"`
}

func (Video) TableName() string {
	return "videos"
}
