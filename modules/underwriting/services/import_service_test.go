package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/conclusion"
	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/disease"
	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/importbatch"
	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/question"
	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/rule"
	"github.com/medinsure/underwriting-admin/modules/underwriting/services/importer"
	"github.com/medinsure/underwriting-admin/pkg/composables"
)

type identityTx struct{}

func (identityTx) InTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (identityTx) Nested(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type fakeRuleRepo struct {
	seq   int64
	items map[int64]*rule.UnderwritingRule
}

func newFakeRuleRepo() *fakeRuleRepo {
	return &fakeRuleRepo{items: map[int64]*rule.UnderwritingRule{}}
}

func (f *fakeRuleRepo) Create(_ context.Context, r *rule.UnderwritingRule) (*rule.UnderwritingRule, error) {
	f.seq++
	stored := *r
	stored.ID = f.seq
	f.items[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeRuleRepo) GetByID(_ context.Context, id int64) (*rule.UnderwritingRule, error) {
	found, ok := f.items[id]
	if !ok {
		return nil, persistenceErrRuleNotFound
	}
	out := *found
	return &out, nil
}

func (f *fakeRuleRepo) List(_ context.Context, limit, offset int) ([]*rule.UnderwritingRule, error) {
	out := make([]*rule.UnderwritingRule, 0, len(f.items))
	for _, r := range f.items {
		copied := *r
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeRuleRepo) Update(_ context.Context, r *rule.UnderwritingRule) (*rule.UnderwritingRule, error) {
	if _, ok := f.items[r.ID]; !ok {
		return nil, persistenceErrRuleNotFound
	}
	stored := *r
	f.items[r.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeRuleRepo) Delete(_ context.Context, id int64) error {
	delete(f.items, id)
	return nil
}

var persistenceErrRuleNotFound = assert.AnError

type memBatchRepo struct {
	seq     int64
	rowSeq  int64
	batches []*importbatch.Batch
	rows    []*importbatch.RowResult
}

func (m *memBatchRepo) CreateBatch(_ context.Context, b *importbatch.Batch) (*importbatch.Batch, error) {
	m.seq++
	stored := *b
	stored.ID = m.seq
	m.batches = append(m.batches, &stored)
	out := stored
	return &out, nil
}

func (m *memBatchRepo) UpdateBatch(_ context.Context, b *importbatch.Batch) (*importbatch.Batch, error) {
	for i, existing := range m.batches {
		if existing.ID == b.ID {
			stored := *b
			m.batches[i] = &stored
			out := stored
			return &out, nil
		}
	}
	return nil, assert.AnError
}

func (m *memBatchRepo) GetBatchByNo(_ context.Context, batchNo string) (*importbatch.Batch, error) {
	for _, b := range m.batches {
		if b.BatchNo == batchNo {
			out := *b
			return &out, nil
		}
	}
	return nil, assert.AnError
}

func (m *memBatchRepo) ListBatches(_ context.Context, limit, offset int) ([]*importbatch.Batch, error) {
	return m.batches, nil
}

func (m *memBatchRepo) AddRowResult(_ context.Context, r *importbatch.RowResult) (*importbatch.RowResult, error) {
	m.rowSeq++
	stored := *r
	stored.ID = m.rowSeq
	m.rows = append(m.rows, &stored)
	out := stored
	return &out, nil
}

func (m *memBatchRepo) ListRowResults(_ context.Context, batchID int64) ([]*importbatch.RowResult, error) {
	out := make([]*importbatch.RowResult, 0)
	for _, r := range m.rows {
		if r.BatchID == batchID {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

type memDiseaseRepo struct {
	seq   int64
	items []*disease.Disease
}

func (m *memDiseaseRepo) Create(_ context.Context, d *disease.Disease) (*disease.Disease, error) {
	m.seq++
	stored := *d
	stored.ID = m.seq
	m.items = append(m.items, &stored)
	out := stored
	return &out, nil
}

func (m *memDiseaseRepo) CountByRule(_ context.Context, ruleID int64) (int64, error) {
	var n int64
	for _, d := range m.items {
		if d.RuleID == ruleID {
			n++
		}
	}
	return n, nil
}

func (m *memDiseaseRepo) ListByBatch(_ context.Context, batchNo string) ([]*disease.Disease, error) {
	out := make([]*disease.Disease, 0)
	for _, d := range m.items {
		if d.BatchNo == batchNo {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}

type memQuestionRepo struct {
	seq   int64
	items []*question.Question
}

func (m *memQuestionRepo) Create(_ context.Context, q *question.Question) (*question.Question, error) {
	m.seq++
	stored := *q
	stored.ID = m.seq
	m.items = append(m.items, &stored)
	out := stored
	return &out, nil
}

func (m *memQuestionRepo) GetByCode(_ context.Context, ruleID int64, code string) (*question.Question, error) {
	for i := len(m.items) - 1; i >= 0; i-- {
		if m.items[i].RuleID == ruleID && m.items[i].Code == code {
			out := *m.items[i]
			return &out, nil
		}
	}
	return nil, &question.NotFoundError{RuleID: ruleID, Code: code}
}

func (m *memQuestionRepo) ListByBatch(_ context.Context, batchNo string) ([]*question.Question, error) {
	out := make([]*question.Question, 0)
	for _, q := range m.items {
		if q.BatchNo == batchNo {
			copied := *q
			out = append(out, &copied)
		}
	}
	return out, nil
}

type memConclusionRepo struct {
	seq   int64
	items []*conclusion.Conclusion
}

func (m *memConclusionRepo) Create(_ context.Context, c *conclusion.Conclusion) (*conclusion.Conclusion, error) {
	m.seq++
	stored := *c
	stored.ID = m.seq
	m.items = append(m.items, &stored)
	out := stored
	return &out, nil
}

func (m *memConclusionRepo) ListByBatch(_ context.Context, batchNo string) ([]*conclusion.Conclusion, error) {
	out := make([]*conclusion.Conclusion, 0)
	for _, c := range m.items {
		if c.BatchNo == batchNo {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func testEngine() *importer.Importer {
	return importer.New(
		importer.Store{
			Batches:     &memBatchRepo{},
			Diseases:    &memDiseaseRepo{},
			Questions:   &memQuestionRepo{},
			Conclusions: &memConclusionRepo{},
		},
		importer.WithTxRunner(identityTx{}),
	)
}

func testCtx() context.Context {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.PanicLevel)
	return composables.WithLogger(context.Background(), logrus.NewEntry(logger))
}

func writeRuleWorkbook(t *testing.T, sheets map[string][][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	first := true
	for _, name := range []string{"疾病", "问题", "结论"} {
		rows, ok := sheets[name]
		if !ok {
			continue
		}
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &rows[i]))
		}
	}

	path := filepath.Join(t.TempDir(), "rules.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func validWorkbook(t *testing.T) string {
	t.Helper()
	return writeRuleWorkbook(t, map[string][][]interface{}{
		"疾病": {
			{"疾病", "疾病编码", "疾病大类编码", "疾病大类", "疾病第一个问题编码"},
			{"填写说明", "", "", "", ""},
			{"高血压", "D_HBP", "C01", "循环系统疾病", "Q_HBP_1"},
		},
		"问题": {
			{"问题编码", "问题内容", "问题属性 P:普通问题 G:归类问题", "问题类型 1-单选 0-多选 2-录入问题"},
			{"填写说明", "", "", ""},
			{"Q_HBP_1", "是否规律服药？", "P", "1"},
		},
		"结论": {
			{"问题编码", "8答案内容", "10重疾结论", "11重疾特殊编码", "12重疾特殊描述", "15医疗险结论", "16医疗特殊编码", "17医疗特殊描述", "19对应下一个问题编码（结束为空）", "23答案展示顺序"},
			{"填写说明", "", "", "", "", "", "", "", "", ""},
			{"Q_HBP_1", "是", "标准承保", "", "", "标准承保", "", "", "", "1"},
		},
	})
}

func TestImportService_Import_RejectsUnsupportedExtension(t *testing.T) {
	rules := newFakeRuleRepo()
	created, err := rules.Create(testCtx(), &rule.UnderwritingRule{Name: "基础核保规则", Status: rule.StatusDraft})
	require.NoError(t, err)

	svc := NewImportService(rules, &memBatchRepo{}, testEngine(), t.TempDir(), 0)

	_, err = svc.Import(testCtx(), created.ID, "rules.csv", strings.NewReader("not a workbook"))
	require.ErrorIs(t, err, ErrUnsupportedFileType)

	unchanged, err := rules.GetByID(testCtx(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, rule.StatusDraft, unchanged.Status)
}

func TestImportService_Import_MarksRuleImported(t *testing.T) {
	rules := newFakeRuleRepo()
	created, err := rules.Create(testCtx(), &rule.UnderwritingRule{Name: "基础核保规则", Status: rule.StatusDraft})
	require.NoError(t, err)

	uploads := filepath.Join(t.TempDir(), "uploads")
	svc := NewImportService(rules, &memBatchRepo{}, testEngine(), uploads, 0)

	src, err := os.Open(validWorkbook(t))
	require.NoError(t, err)
	defer src.Close()

	report, err := svc.Import(testCtx(), created.ID, "rules.xlsx", src)
	require.NoError(t, err)
	require.NotNil(t, report.Batch)
	assert.Equal(t, importbatch.StatusCompleted, report.Batch.Status)
	assert.Equal(t, 3, report.Batch.SuccessCount)
	assert.Equal(t, 0, report.Batch.ErrorCount)

	imported, err := rules.GetByID(testCtx(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, rule.StatusImported, imported.Status)

	entries, err := os.ReadDir(uploads)
	require.NoError(t, err)
	assert.Empty(t, entries, "staged upload must be removed after the run")
}

func TestImportService_Import_StructuralFailureLeavesRuleUntouched(t *testing.T) {
	rules := newFakeRuleRepo()
	created, err := rules.Create(testCtx(), &rule.UnderwritingRule{Name: "基础核保规则", Status: rule.StatusDraft})
	require.NoError(t, err)

	uploads := filepath.Join(t.TempDir(), "uploads")
	svc := NewImportService(rules, &memBatchRepo{}, testEngine(), uploads, 0)

	// Workbook without the conclusion sheet fails schema validation.
	path := writeRuleWorkbook(t, map[string][][]interface{}{
		"疾病": {
			{"疾病", "疾病编码", "疾病大类编码", "疾病大类", "疾病第一个问题编码"},
			{"填写说明", "", "", "", ""},
			{"高血压", "D_HBP", "C01", "循环系统疾病", "Q_HBP_1"},
		},
		"问题": {
			{"问题编码", "问题内容", "问题属性 P:普通问题 G:归类问题", "问题类型 1-单选 0-多选 2-录入问题"},
			{"填写说明", "", "", ""},
			{"Q_HBP_1", "是否规律服药？", "P", "1"},
		},
	})
	src, err := os.Open(path)
	require.NoError(t, err)
	defer src.Close()

	report, err := svc.Import(testCtx(), created.ID, "rules.xlsx", src)
	require.Error(t, err)
	require.NotNil(t, report)
	assert.Equal(t, importbatch.StatusFailed, report.Batch.Status)

	unchanged, err := rules.GetByID(testCtx(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, rule.StatusDraft, unchanged.Status)

	entries, err := os.ReadDir(uploads)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
