package models

// CharacterSummary is the list/search projection of a superhero api record.
type CharacterSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Image     string `json:"image"`     // proxied image url
	Publisher string `json:"publisher"` // "Unknown" when absent
	Alignment string `json:"alignment"` // "neutral" when absent
}

// CharacterDetail is the full, reshaped superhero api record. Every nested
// field is always present; missing upstream values are defaulted.
type CharacterDetail struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Image       string      `json:"image"`
	Powerstats  Powerstats  `json:"powerstats"`
	Biography   Biography   `json:"biography"`
	Appearance  Appearance  `json:"appearance"`
	Work        Work        `json:"work"`
	Connections Connections `json:"connections"`
}

type Powerstats struct {
	Intelligence string `json:"intelligence"`
	Strength     string `json:"strength"`
	Speed        string `json:"speed"`
	Durability   string `json:"durability"`
	Power        string `json:"power"`
	Combat       string `json:"combat"`
}

type Biography struct {
	RealName        string   `json:"realName"`
	Aliases         []string `json:"aliases"`
	PlaceOfBirth    string   `json:"placeOfBirth"`
	FirstAppearance string   `json:"firstAppearance"`
	Publisher       string   `json:"publisher"`
	Alignment       string   `json:"alignment"`
}

type Appearance struct {
	Gender    string   `json:"gender"`
	Race      string   `json:"race"`
	Height    []string `json:"height"`
	Weight    []string `json:"weight"`
	EyeColor  string   `json:"eyeColor"`
	HairColor string   `json:"hairColor"`
}

type Work struct {
	Occupation string `json:"occupation"`
	Base       string `json:"base"`
}

type Connections struct {
	ConnectedTo string `json:"connectedTo"`
	Relatives   string `json:"relatives"`
}
