package importer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/conclusion"
	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/disease"
	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/question"
)

// Row-to-entity mapping is explicit and typed per stage. Unknown or renamed
// columns therefore fail validation loudly instead of being silently dropped
// by a reflective constructor.

func mapDiseaseRow(row Row, ruleID int64, batchNo string) (*disease.Disease, *RowError) {
	code := row.Get(colDiseaseCode)
	name := row.Get(colDiseaseName)
	categoryCode := row.Get(colDiseaseCategoryCode)
	categoryName := row.Get(colDiseaseCategoryName)
	firstQuestion := row.Get(colDiseaseFirstQuestion)

	switch {
	case code == "":
		return nil, rowValidationErrorf("disease code must not be empty")
	case name == "":
		return nil, rowValidationErrorf("disease name must not be empty")
	case categoryCode == "":
		return nil, rowValidationErrorf("disease category code must not be empty")
	case categoryName == "":
		return nil, rowValidationErrorf("disease category name must not be empty")
	case firstQuestion == "":
		return nil, rowValidationErrorf("first question code must not be empty")
	}

	return &disease.Disease{
		RuleID:            ruleID,
		Code:              code,
		Name:              name,
		CategoryCode:      categoryCode,
		CategoryName:      categoryName,
		FirstQuestionCode: firstQuestion,
		RiskLevel:         "medium",
		IsCommon:          row.Get(colDiseaseIsCommon) == "1",
		Description:       row.Get(colDiseaseRemark),
		BatchNo:           batchNo,
	}, nil
}

var arityDigit = regexp.MustCompile(`[012]`)

func mapQuestionRow(row Row, ruleID int64, batchNo string, warn func(format string, args ...interface{})) (*question.Question, *RowError) {
	code := row.Get(colQuestionCode)
	content := row.Get(colQuestionContent)

	switch {
	case code == "":
		return nil, rowValidationErrorf("question code must not be empty")
	case content == "":
		return nil, rowValidationErrorf("question content must not be empty")
	}

	attribute := question.AttributeNormal
	switch strings.ToUpper(row.Get(colQuestionAttribute)) {
	case "", "P":
	case "G":
		attribute = question.AttributeClassifying
	default:
		warn("question %s: unknown attribute %q, defaulting to normal", code, row.Get(colQuestionAttribute))
	}

	// The arity cell often carries the full legend text; only the digit matters.
	arity := question.AritySingleSelect
	switch arityDigit.FindString(row.Get(colQuestionArity)) {
	case "1":
		arity = question.AritySingleSelect
	case "0":
		arity = question.ArityMultiSelect
	case "2":
		arity = question.ArityFreeText
	default:
		warn("question %s: unrecognized arity %q, defaulting to single select", code, row.Get(colQuestionArity))
	}

	return &question.Question{
		RuleID:    ruleID,
		Code:      code,
		Content:   content,
		Attribute: attribute,
		Arity:     arity,
		Remark:    row.Get(colQuestionRemark),
		BatchNo:   batchNo,
	}, nil
}

// mapConclusionRow validates and maps everything except the question
// reference, which the stage resolves against the index and store.
func mapConclusionRow(row Row, ruleID int64, batchNo string) (*conclusion.Conclusion, *RowError) {
	questionCode := row.Get(colAnswerQuestionCode)
	answerContent := row.Get(colAnswerContent)

	switch {
	case questionCode == "":
		return nil, rowValidationErrorf("question code must not be empty")
	case answerContent == "":
		return nil, rowValidationErrorf("answer content must not be empty")
	}

	displayOrder := 0
	if raw := row.Get(colAnswerOrder); raw != "" {
		order, err := strconv.Atoi(raw)
		if err != nil {
			return nil, rowValidationErrorf("display order %q is not a number", raw)
		}
		displayOrder = order
	}

	return &conclusion.Conclusion{
		RuleID:                     ruleID,
		QuestionCode:               questionCode,
		AnswerContent:              answerContent,
		MedicalConclusion:          row.Get(colAnswerMedical),
		MedicalSpecialCode:         row.Get(colAnswerMedicalCode),
		MedicalSpecialDesc:         row.Get(colAnswerMedicalDesc),
		CriticalIllnessConclusion:  row.Get(colAnswerCritical),
		CriticalIllnessSpecialCode: row.Get(colAnswerCriticalCode),
		CriticalIllnessSpecialDesc: row.Get(colAnswerCriticalDesc),
		NextQuestionCode:           row.Get(colAnswerNext),
		DisplayOrder:               displayOrder,
		Remark:                     row.Get(colAnswerRemark),
		BatchNo:                    batchNo,
	}, nil
}
