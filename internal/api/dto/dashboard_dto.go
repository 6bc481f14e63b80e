package dto

// ChannelStats aggregates a channel's totals. Each metric is computed
// independently; metrics that could not be computed are listed in
// FailedMetrics and left at zero.
type ChannelStats struct {
	TotalVideos      int64    `json:"total_videos"`
	TotalViews       int64    `json:"total_views"`
	TotalSubscribers int64    `json:"total_subscribers"`
	TotalLikes       int64    `json:"total_likes"`
	FailedMetrics    []string `json:"failed_metrics,omitempty"`
}
