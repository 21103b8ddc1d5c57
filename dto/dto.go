package dto

import (
	"time"

	"petawards/constant"
)

// FileInfo describes one stored object as exposed to clients.
type FileInfo struct {
	Name       string                `json:"name"`
	URL        string                `json:"url"`
	UploadedAt time.Time             `json:"uploadedAt"`
	Key        string                `json:"key"`
	ID         string                `json:"id"`
	Status     constant.ObjectStatus `json:"status"`
}

// SubmissionEntry is one correlated submission: the parsed metadata sidecar
// enriched with the sidecar's own FileInfo, the resolved playback URL and
// the recomputed upload method.
type SubmissionEntry struct {
	Name            string                `json:"name"`
	Email           string                `json:"email"`
	Description     string                `json:"description"`
	SubmittedAt     string                `json:"submittedAt"`
	AssociatedVideo string                `json:"associatedVideo"`
	VideoTitle      string                `json:"videoTitle"`
	VideoURL        string                `json:"videoUrl,omitempty"`
	IsAdopted       bool                  `json:"isAdopted"`
	FileInfo        FileInfo              `json:"fileInfo"`
	UploadMethod    constant.UploadMethod `json:"uploadMethod"`
}

// SubmitMetadataRequest is the client payload for a new submission. The
// stored sidecar is exactly this document; uploadMethod is never stored,
// it is recomputed from AssociatedVideo on every read.
type SubmitMetadataRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Description     string `json:"description"`
	SubmittedAt     string `json:"submittedAt"`
	AssociatedVideo string `json:"associatedVideo"`
	VideoTitle      string `json:"videoTitle"`
	VideoURL        string `json:"videoUrl,omitempty"`
	IsAdopted       bool   `json:"isAdopted"`
}

// VideoFile is the flattened per-file view served by /api/videos.
type VideoFile struct {
	Name         string    `json:"name"`
	URL          string    `json:"url"`
	Size         int64     `json:"size"`
	Type         string    `json:"type"`
	UploaderName string    `json:"uploaderName"`
	ContactInfo  string    `json:"contactInfo"`
	Description  string    `json:"description"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

type SubmitVoteRequest struct {
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	VideoID int64  `json:"videoId"`
}

// VoteRecord is one cast vote joined with its video's display fields.
type VoteRecord struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"userId"`
	Email      string    `json:"email"`
	VotedAtUtc time.Time `json:"votedAtUtc"`
	VideoID    int64     `json:"videoId"`
	VideoName  string    `json:"videoName"`
}

type VoteAggregate struct {
	VideoID   int64  `json:"videoId"`
	VideoName string `json:"videoName"`
	Streamer  string `json:"streamer"`
	VoteCount int64  `json:"voteCount"`
}

type VoteResults struct {
	Votes      []VoteRecord    `json:"votes"`
	Aggregates []VoteAggregate `json:"aggregates"`
}

// SubmissionReceivedEvent is published after a metadata sidecar is stored.
type SubmissionReceivedEvent struct {
	ObjectKey       string    `json:"objectKey"`
	AssociatedVideo string    `json:"associatedVideo"`
	VideoTitle      string    `json:"videoTitle"`
	ReceivedAt      time.Time `json:"receivedAt"`
}

// VoteCastEvent is published after a vote row is created.
type VoteCastEvent struct {
	UserID  string    `json:"userId"`
	VideoID int64     `json:"videoId"`
	CastAt  time.Time `json:"castAt"`
}
