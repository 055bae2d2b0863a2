package services

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/disease"
	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/rule"
)

type noopPublisher struct{}

func (noopPublisher) Publish(args ...interface{})     {}
func (noopPublisher) Subscribe(handler interface{})   {}
func (noopPublisher) Unsubscribe(handler interface{}) {}
func (noopPublisher) Clear()                          {}
func (noopPublisher) SubscribersCount() int           { return 0 }

func TestRuleService_Create(t *testing.T) {
	svc := NewRuleService(newFakeRuleRepo(), &memDiseaseRepo{}, noopPublisher{})

	created, err := svc.Create(testCtx(), CreateRuleDTO{Name: "基础核保规则", Version: "v1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, rule.StatusDraft, created.Status)
}

func TestRuleService_Create_ValidationFailed(t *testing.T) {
	svc := NewRuleService(newFakeRuleRepo(), &memDiseaseRepo{}, noopPublisher{})

	_, err := svc.Create(testCtx(), CreateRuleDTO{Version: "v1"})
	require.Error(t, err)

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Equal(t, "Name", validationErrs[0].Field())
}

func TestRuleService_HasImportedData(t *testing.T) {
	diseases := &memDiseaseRepo{}
	svc := NewRuleService(newFakeRuleRepo(), diseases, noopPublisher{})

	created, err := svc.Create(testCtx(), CreateRuleDTO{Name: "基础核保规则"})
	require.NoError(t, err)

	has, err := svc.HasImportedData(testCtx(), created.ID)
	require.NoError(t, err)
	assert.False(t, has)

	_, err = diseases.Create(testCtx(), &disease.Disease{RuleID: created.ID, Code: "D_HBP", Name: "高血压"})
	require.NoError(t, err)

	has, err = svc.HasImportedData(testCtx(), created.ID)
	require.NoError(t, err)
	assert.True(t, has)
}
