package schema

// AliasConfig is swappable name data used by identity resolution. Keys are
// matched after diacritic stripping and case folding.
type AliasConfig struct {
	Players  map[string]string `mapstructure:"players" json:"players"`
	Teams    map[string]string `mapstructure:"teams" json:"teams"`
	Siblings []SiblingRule     `mapstructure:"siblings" json:"siblings"`
}

// SiblingRule disambiguates players sharing a surname on the same team.
type SiblingRule struct {
	Surname string          `mapstructure:"surname" json:"surname"`
	Members []SiblingMember `mapstructure:"members" json:"members"`
}

// SiblingMember is one player covered by a SiblingRule. Number is tried
// first, then Hint as a substring of the parsed name.
type SiblingMember struct {
	PlayerID string `mapstructure:"player_id" json:"playerId"`
	Number   int    `mapstructure:"number" json:"number"`
	Hint     string `mapstructure:"hint" json:"hint"`
}
