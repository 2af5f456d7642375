package models

type CommunityGroup struct {
	ID           string `db:"id" json:"id"`
	Title        string `db:"title" json:"title"`
	Subtitle     string `db:"subtitle" json:"subtitle"`
	ProfileImage string `db:"profile_image" json:"profileImage"`
	GroupLink    string `db:"group_link" json:"groupLink"`
}
