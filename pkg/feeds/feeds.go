package feeds

import "time"

// Source is one configured RSS/Atom endpoint. Identity is the name+url
// pair; records are immutable after load.
type Source struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Enabled  bool   `json:"enabled"`
	Category string `json:"category"`
	Note     string `json:"note,omitempty"`
}

type Article struct {
	Title       string
	Link        string
	Summary     string
	Source      string
	Category    string
	PublishedAt time.Time
}

// FeedStatus records the outcome of one feed fetch.
type FeedStatus struct {
	Source   string
	Articles int
	Err      error
}

type Tally struct {
	Succeeded int
	Failed    int
	Statuses  []FeedStatus
}
