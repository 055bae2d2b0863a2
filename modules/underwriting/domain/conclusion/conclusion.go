package conclusion

import (
	"context"
	"time"
)

// Conclusion is one answer option of a question together with its medical and
// critical-illness underwriting conclusions. NextQuestionCode is a directed
// edge to the follow-up question; empty means the branch terminates.
type Conclusion struct {
	ID                         int64
	RuleID                     int64
	QuestionID                 int64
	QuestionCode               string
	AnswerContent              string
	MedicalConclusion          string
	MedicalSpecialCode         string
	MedicalSpecialDesc         string
	CriticalIllnessConclusion  string
	CriticalIllnessSpecialCode string
	CriticalIllnessSpecialDesc string
	NextQuestionCode           string
	DisplayOrder               int
	Remark                     string
	BatchNo                    string
	CreatedAt                  time.Time
}

type Repository interface {
	Create(ctx context.Context, c *Conclusion) (*Conclusion, error)
	ListByBatch(ctx context.Context, batchNo string) ([]*Conclusion, error)
}
