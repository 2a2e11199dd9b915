package model

import "time"

// Turn is one persisted question/answer exchange. DocumentID is empty for
// general conversations without a document.
type Turn struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID string    `gorm:"size:64;not null;index" json:"conversation_id"`
	DocumentID     string    `gorm:"size:191;index" json:"document_id"`
	Question       string    `gorm:"type:text;not null" json:"question"`
	Answer         string    `gorm:"type:text;not null" json:"answer"`
	CreatedAt      time.Time `json:"created_at"`
}
