package models

import (
	"time"
)

// Analysis status values
const (
	StatusAnalyzed = "ANALYZED"
	StatusFailed   = "FAILED"
)

// AnalyzedComment is a persisted analysis result
type AnalyzedComment struct {
	ID              int64     `gorm:"primaryKey;autoIncrement;column:id"`
	ContentHash     string    `gorm:"type:char(32);not null;uniqueIndex:analyzed_comments_ux1;column:content_hash"`
	Original        string    `gorm:"type:text;not null;column:original"`
	Translated      string    `gorm:"type:text;not null;default:'';column:translated"`
	LanguageType    string    `gorm:"type:varchar(16);not null;column:language_type"`
	Sentiment       string    `gorm:"type:varchar(16);not null;column:sentiment"`
	SentimentScore  float64   `gorm:"not null;default:0;column:sentiment_score"`
	Score           float64   `gorm:"not null;default:0;column:score"`
	Tone            string    `gorm:"type:varchar(16);not null;default:'neutral';column:tone"`
	ToneConfidence  float64   `gorm:"not null;default:0;column:tone_confidence"`
	Summary         string    `gorm:"type:text;not null;default:'';column:summary"`
	Status          string    `gorm:"type:varchar(16);not null;index:analyzed_comments_ix1;column:status"`
	ProcessingError string    `gorm:"type:text;not null;default:'';column:processing_error"`
	CreatedAt       time.Time `gorm:"not null;column:created_at"`
}

// TableName returns the table name for AnalyzedComment
func (AnalyzedComment) TableName() string {
	return "analyzed_comments"
}
