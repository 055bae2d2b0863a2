package importer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSchema_AcceptsTemplate(t *testing.T) {
	path := writeWorkbook(t,
		diseaseSheet(),
		questionSheet(),
		conclusionSheet(),
	)

	wb, err := Open(path)
	require.NoError(t, err)
	defer func() {
		_ = wb.Close()
	}()

	assert.NoError(t, ValidateSchema(wb, TemplateSheets()))
}

func TestValidateSchema_CollectsEveryProblem(t *testing.T) {
	path := writeWorkbook(t,
		testSheet{name: SheetDisease, rows: [][]string{
			{colDiseaseCode, colDiseaseName},
		}},
		testSheet{name: SheetQuestion, rows: nil},
	)

	wb, err := Open(path)
	require.NoError(t, err)
	defer func() {
		_ = wb.Close()
	}()

	err = ValidateSchema(wb, TemplateSheets())
	require.Error(t, err)
	se, ok := AsStructural(err)
	require.True(t, ok)

	assert.Contains(t, se.Problems, fmt.Sprintf("sheet %s: missing column %s", SheetDisease, colDiseaseCategoryCode))
	assert.Contains(t, se.Problems, fmt.Sprintf("sheet %s: missing column %s", SheetDisease, colDiseaseCategoryName))
	assert.Contains(t, se.Problems, fmt.Sprintf("sheet %s: missing column %s", SheetDisease, colDiseaseFirstQuestion))
	assert.Contains(t, se.Problems, "sheet "+SheetQuestion+" is empty")
	assert.Contains(t, se.Problems, "missing sheet "+SheetConclusion)
	assert.Len(t, se.Problems, 5)
}

func TestValidateSchema_OptionalColumnsMayBeAbsent(t *testing.T) {
	path := writeWorkbook(t, testSheet{name: SheetDisease, rows: [][]string{
		{colDiseaseName, colDiseaseCode, colDiseaseCategoryCode, colDiseaseCategoryName, colDiseaseFirstQuestion},
	}})

	wb, err := Open(path)
	require.NoError(t, err)
	defer func() {
		_ = wb.Close()
	}()

	specs := []SheetSpec{TemplateSheets()[0]}
	assert.NoError(t, ValidateSchema(wb, specs))
}
