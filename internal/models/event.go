package models

// BookEvent is the payload published to Kafka for catalog activity.
type BookEvent struct {
	EventID   string `json:"event_id"`
	Timestamp int64  `json:"timestamp"`
	BookID    int64  `json:"book_id"`
	Operation string `json:"operation"`
	ViewCount int64  `json:"view_count,omitempty"`
}
