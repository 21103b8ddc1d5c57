package constant

import "strings"

type ObjectStatus string

const (
	ObjectStatusUploaded        ObjectStatus = "Uploaded"
	ObjectStatusUploading       ObjectStatus = "Uploading"
	ObjectStatusFailed          ObjectStatus = "Failed"
	ObjectStatusDeletionPending ObjectStatus = "Deletion Pending"
)

type UploadMethod string

const (
	UploadMethodLink UploadMethod = "link"
	UploadMethodFile UploadMethod = "file"
)

type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentStaging    Environment = "staging"
	EnvironmentDevelop    Environment = "develop"
)

func (e Environment) String() string {
	return string(e)
}

const (
	// MetadataSuffix marks a JSON sidecar describing one submission.
	MetadataSuffix = ".metadata.json"
	// FavoriteMarkerPrefix starts the name of a favorite marker object,
	// followed by "{userId}_{videoId}.json".
	FavoriteMarkerPrefix = "favorite_"
	// LinkSubmissionPrefix marks a synthetic associatedVideo value used by
	// link-only submissions that have no uploaded video object.
	LinkSubmissionPrefix = "link_"
)

var videoSuffixes = []string{".mp4", ".webm"}

// IsVideoName reports whether a client filename denotes an uploaded video.
func IsVideoName(name string) bool {
	for _, suffix := range videoSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// IsMetadataName reports whether a client filename denotes a metadata sidecar.
func IsMetadataName(name string) bool {
	return strings.HasSuffix(name, MetadataSuffix)
}
