package dto

// ToggleLikeData reports the liked state after a toggle, with the
// target's resulting like count.
type ToggleLikeData struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

// LikeCountData reports the current like count of a single target.
type LikeCountData struct {
	LikeCount int64 `json:"like_count"`
}
