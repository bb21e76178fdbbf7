package queue

const (
	TypeDocumentExtract = "document:extract"
	TypeReminderScan    = "reminder:scan"
)

type DocumentExtractPayload struct {
	DocumentID string `json:"document_id"`
	UserID     string `json:"user_id"`
}
