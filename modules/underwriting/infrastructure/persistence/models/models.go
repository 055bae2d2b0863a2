package models

import "time"

type UnderwritingRule struct {
	ID          int64
	Name        string
	Version     string
	Description string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Disease struct {
	ID                int64
	RuleID            int64
	Code              string
	Name              string
	CategoryCode      string
	CategoryName      string
	FirstQuestionCode string
	RiskLevel         string
	IsCommon          bool
	Description       string
	BatchNo           string
	CreatedAt         time.Time
}

type Question struct {
	ID        int64
	RuleID    int64
	Code      string
	Content   string
	Attribute string
	Arity     string
	Remark    string
	BatchNo   string
	CreatedAt time.Time
}

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

type ImportBatch struct {
	ID             int64
	BatchNo        string
	ImportType     string
	SourceFileName string
	Status         string
	TotalCount     int
	SuccessCount   int
	ErrorCount     int
	ErrorSummary   *string
	CreatedBy      *int64
	CreatedAt      time.Time
}

type ImportRow struct {
	ID           int64
	BatchID      int64
	SheetName    string
	RowNumber    int
	Status       string
	DataType     string
	ReferenceID  *int64
	ErrorMessage *string
	RawRow       []byte
	CreatedAt    time.Time
}
