package models

// Player is a registered end user. Identity is the phone number; the +91
// country prefix is applied once at registration.
type Player struct {
	ID              string   `db:"id" json:"id"`
	FirstName       string   `db:"firstname" json:"firstname"`
	LastName        string   `db:"lastname" json:"lastname"`
	Profile         string   `db:"profile" json:"profile"`
	MobileNo        string   `db:"mobileno" json:"mobileno"`
	InterestedSport string   `db:"intrestedsports" json:"intrestedsports"`
	Level           string   `db:"level" json:"level"`
	Age             int      `db:"age" json:"age"`
	IsVerified      bool     `db:"is_verified" json:"isVerified"`
	Location        string   `db:"location" json:"location"`
	FavTurfs        []string `json:"favTurfs"`
}

// Sports and levels accepted for a player profile.
var (
	InterestedSports = []string{"football", "tennis", "badminton", "golf", "cricket", "swimming", "basketball"}
	PlayerLevels     = []string{"beginner", "intermediate", "expert"}
)
