package model

import "time"

type FileMetadata struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	// StoredPath is what gets recorded as the message content: a public
	// path under /uploads for local storage, an object key for S3.
	StoredPath string    `json:"stored_path"`
	Bucket     string    `json:"bucket,omitempty"`
	UploadedBy string    `json:"uploaded_by"`
	TargetID   string    `json:"target_id"`
	CreatedAt  time.Time `json:"created_at"`
}
