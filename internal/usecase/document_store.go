package usecase

import "context"

// DocumentStore is the file-storage collaborator. Task records keep only
// storage keys; retrieval links are signed at read time so stored rows stay
// valid if the signing scheme changes.
type DocumentStore interface {
	UploadDocument(ctx context.Context, content []byte, filename, contentType string) (string, error)
	SignedURL(ctx context.Context, key string) (string, error)
}

// DocumentUpload is an in-memory file received from a multipart request.
type DocumentUpload struct {
	Content     []byte
	Filename    string
	ContentType string
}
