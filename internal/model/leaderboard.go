package model

// Entry is one ranked player.
type Entry struct {
	// Rank is the 1-based position in the ranking.
	Rank int `json:"rank"`
	// Name is the player name.
	Name string `json:"name"`
	// Value is the metric value.
	Value float64 `json:"value"`
	// Row is the index of the player's row in the cleaned table.
	Row int `json:"row"`
}

// Leaderboard is the top of the ranking for one metric.
type Leaderboard struct {
	// Metric is the ranked column, e.g. "HR".
	Metric string `json:"metric"`
	// Title is the human-readable heading.
	Title string `json:"title"`
	// Chart is the path of the rendered image, if one was written.
	Chart string `json:"chart,omitempty"`
	// Entries holds the ranked players, best first.
	Entries []Entry `json:"entries"`
}
