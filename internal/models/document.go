package models

// UploadedFile holds the raw bytes of one file from a multipart upload.
// It lives only for the duration of the request.
type UploadedFile struct {
	Filename string
	Data     []byte
}

// ProcessedFile reports the outcome of ingesting a single file.
type ProcessedFile struct {
	Filename      string `json:"filename"`
	ChunksCreated int    `json:"chunks_created"`
	GCSURL        string `json:"gcs_url"`
}

// UploadResult aggregates the outcome of one upload batch.
type UploadResult struct {
	ProcessedFiles []ProcessedFile
	TotalChunks    int
}
