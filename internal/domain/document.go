package domain

type DocumentStatus string

const (
	DocumentStatusPending   DocumentStatus = "PENDING"
	DocumentStatusConfirmed DocumentStatus = "CONFIRMED"
)

// Document is an uploaded supporting file for a funding request,
// stored in the blob backend under a key derived from owner id and
// filename. An upload starts PENDING and is confirmed after the client
// completes the presigned PUT.
type Document struct {
	ID          int32          `json:"id"`
	OwnerID     int32          `json:"owner_id"`
	RequestID   *int32         `json:"request_id,omitempty"`
	FileName    string         `json:"file_name"`
	StorageKey  string         `json:"storage_key"`
	ContentType string         `json:"content_type"`
	FileSize    int64          `json:"file_size"`
	Status      DocumentStatus `json:"status"`
	CreatedOn   string         `json:"created_on"`
}
