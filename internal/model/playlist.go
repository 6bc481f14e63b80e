package model

import "time"

// Playlist is a named, ordered collection of videos owned by a user.
type Playlist struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	OwnerID     int64     `gorm:"not null;index:idx_playlists_owner_id" json:"owner_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Owner   User            `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Entries []PlaylistEntry `gorm:"foreignKey:PlaylistID" json:"entries,omitempty"`
}

func (Playlist) TableName() string {
	return "playlists"
}

// PlaylistEntry is one position in a playlist. The unique
// (playlist_id, video_id) index keeps a video from appearing twice.
type PlaylistEntry struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PlaylistID int64     `gorm:"not null;uniqueIndex:uq_playlist_video;index:idx_playlist_entries_playlist" json:"playlist_id"`
	VideoID    int64     `gorm:"not null;uniqueIndex:uq_playlist_video;index:idx_playlist_entries_video" json:"video_id"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	Video Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}

func (PlaylistEntry) TableName() string {
	return "playlist_entries"
}
