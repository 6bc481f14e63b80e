package dto

// SearchData groups full-text search results by kind.
type SearchData struct {
	Videos []VideoInfo `json:"videos"`
	Users  []UserInfo  `json:"users"`
	Total  int64       `json:"total"`
}

// SuggestData holds autocomplete title suggestions.
type SuggestData struct {
	Suggestions []string `json:"suggestions"`
}
