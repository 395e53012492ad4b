package models

// MediaBundle groups the ComicVine movies and issue credits of one character.
// Both lists are always non-nil so they encode as [].
type MediaBundle struct {
	Movies []MediaRef `json:"movies"`
	Comics []MediaRef `json:"comics"`
}

// MediaRef is a ComicVine resource reference as returned inside a character.
type MediaRef struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	APIDetailURL  string `json:"apiDetailUrl,omitempty"`
	SiteDetailURL string `json:"siteDetailUrl,omitempty"`
	IssueNumber   string `json:"issueNumber,omitempty"`
}

func EmptyMedia() MediaBundle {
	return MediaBundle{Movies: []MediaRef{}, Comics: []MediaRef{}}
}
