package models

import (
	"encoding/json"
	"time"
)

// ModelEvaluation is an append-only record of one training run.
type ModelEvaluation struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	RunID          string          `gorm:"index" json:"run_id"`
	EvaluationDate time.Time       `json:"evaluation_date"`
	Results        json.RawMessage `gorm:"type:jsonb" json:"results"`
	BestModel      string          `json:"best_model"`
	BestAccuracy   float64         `json:"best_accuracy"`
	SampleCount    int             `json:"sample_count"`
	CreatedAt      time.Time       `json:"-"`
}

func (ModelEvaluation) TableName() string {
	return "model_evaluation"
}
