package dto

// ActivityTrackDTO 行为埋点入参
type ActivityTrackDTO struct {
	SessionID string `json:"session_id" binding:"required" validate:"max=64"`
	EventType string `json:"event_type" binding:"required" validate:"max=32"`
}

// ActivityBucketDTO 一个聚合桶（日/周/月）
type ActivityBucketDTO struct {
	Bucket           string `json:"bucket"`
	EventCount       int64  `json:"event_count"`
	DistinctSessions int64  `json:"distinct_sessions"`
}
