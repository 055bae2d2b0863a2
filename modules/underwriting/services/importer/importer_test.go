package importer

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	dto "github.com/prometheus/client_model/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/conclusion"
	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/disease"
	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/importbatch"
	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/question"
	"github.com/medinsure/underwriting-admin/pkg/composables"
	"github.com/medinsure/underwriting-admin/pkg/eventbus"
	"github.com/medinsure/underwriting-admin/pkg/metrics"
)

// ---- workbook fixtures ----

type testSheet struct {
	name string
	rows [][]string
}

func writeWorkbook(t *testing.T, sheets ...testSheet) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()
	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		for r := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(s.name, cell, &s.rows[r]))
		}
	}
	path := filepath.Join(t.TempDir(), "rules.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func diseaseSheet(rows ...[]string) testSheet {
	all := [][]string{
		{colDiseaseCategoryCode, colDiseaseCategoryName, colDiseaseCode, colDiseaseName, colDiseaseFirstQuestion, colDiseaseIsCommon, colDiseaseRemark},
		{"填写说明", "", "", "", "", "", ""},
	}
	return testSheet{name: SheetDisease, rows: append(all, rows...)}
}

func diseaseRow(code, name, firstQuestion string) []string {
	return []string{"C01", "循环系统疾病", code, name, firstQuestion, "1", ""}
}

func questionSheet(rows ...[]string) testSheet {
	all := [][]string{
		{colQuestionCode, colQuestionContent, colQuestionAttribute, colQuestionArity, colQuestionRemark},
		{"填写说明", "", "", "", ""},
	}
	return testSheet{name: SheetQuestion, rows: append(all, rows...)}
}

func questionRow(code, content, attribute, arity string) []string {
	return []string{code, content, attribute, arity, ""}
}

func conclusionSheet(rows ...[]string) testSheet {
	all := [][]string{
		{colAnswerQuestionCode, colAnswerContent, colAnswerCritical, colAnswerCriticalCode, colAnswerCriticalDesc, colAnswerMedical, colAnswerMedicalCode, colAnswerMedicalDesc, colAnswerNext, colAnswerOrder, colAnswerRemark},
		{"填写说明", "", "", "", "", "", "", "", "", "", ""},
	}
	return testSheet{name: SheetConclusion, rows: append(all, rows...)}
}

func conclusionRow(questionCode, answer, next, order string) []string {
	return []string{questionCode, answer, "标准体", "", "", "标准体", "", "", next, order, ""}
}

// hypertensionWorkbook is the canonical happy-path fixture: one disease whose
// flow asks about duration, branches to a follow-up on medication and ends.
func hypertensionWorkbook(t *testing.T) string {
	t.Helper()
	return writeWorkbook(t,
		diseaseSheet(diseaseRow("D_HBP", "高血压", "Q_HBP_1")),
		questionSheet(
			questionRow("Q_HBP_1", "确诊高血压多久了？", "P", "1-单选"),
			questionRow("Q_HBP_2", "是否规律服药？", "P", "1-单选"),
		),
		conclusionSheet(
			conclusionRow("Q_HBP_1", "一年以内", "Q_HBP_2", "1"),
			conclusionRow("Q_HBP_1", "一年以上", "", "2"),
			conclusionRow("Q_HBP_2", "是", "", "1"),
			conclusionRow("Q_HBP_2", "否", "", "2"),
		),
	)
}

// ---- in-memory stores ----

type identityTx struct{}

func (identityTx) InTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (identityTx) Nested(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// deadlineTx refuses to open a transaction once the context is done, the way
// a real pool does.
type deadlineTx struct{}

func (deadlineTx) InTx(ctx context.Context, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}

func (deadlineTx) Nested(ctx context.Context, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}

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
	stored.CreatedAt = time.Now()
	m.batches = append(m.batches, &stored)
	out := stored
	return &out, nil
}

func (m *memBatchRepo) UpdateBatch(_ context.Context, b *importbatch.Batch) (*importbatch.Batch, error) {
	for i, existing := range m.batches {
		if existing.ID == b.ID {
			stored := *b
			stored.CreatedAt = existing.CreatedAt
			m.batches[i] = &stored
			out := stored
			return &out, nil
		}
	}
	return nil, fmt.Errorf("batch %d not found", b.ID)
}

func (m *memBatchRepo) GetBatchByNo(_ context.Context, batchNo string) (*importbatch.Batch, error) {
	for _, b := range m.batches {
		if b.BatchNo == batchNo {
			out := *b
			return &out, nil
		}
	}
	return nil, fmt.Errorf("batch %s not found", batchNo)
}

func (m *memBatchRepo) ListBatches(_ context.Context, limit, offset int) ([]*importbatch.Batch, error) {
	return m.batches, nil
}

func (m *memBatchRepo) AddRowResult(_ context.Context, r *importbatch.RowResult) (*importbatch.RowResult, error) {
	m.rowSeq++
	stored := *r
	stored.ID = m.rowSeq
	stored.CreatedAt = time.Now()
	m.rows = append(m.rows, &stored)
	out := stored
	return &out, nil
}

func (m *memBatchRepo) ListRowResults(_ context.Context, batchID int64) ([]*importbatch.RowResult, error) {
	var out []*importbatch.RowResult
	for _, r := range m.rows {
		if r.BatchID == batchID {
			out = append(out, r)
		}
	}
	return out, nil
}

type memDiseaseRepo struct {
	seq    int64
	items  []*disease.Disease
	failOn map[string]error
}

func (m *memDiseaseRepo) Create(_ context.Context, d *disease.Disease) (*disease.Disease, error) {
	if err, ok := m.failOn[d.Code]; ok {
		return nil, err
	}
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
	var out []*disease.Disease
	for _, d := range m.items {
		if d.BatchNo == batchNo {
			out = append(out, d)
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
	var out []*question.Question
	for _, q := range m.items {
		if q.BatchNo == batchNo {
			out = append(out, q)
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
	var out []*conclusion.Conclusion
	for _, c := range m.items {
		if c.BatchNo == batchNo {
			out = append(out, c)
		}
	}
	return out, nil
}

type testEnv struct {
	store       Store
	batches     *memBatchRepo
	diseases    *memDiseaseRepo
	questions   *memQuestionRepo
	conclusions *memConclusionRepo
}

func newTestEnv() *testEnv {
	env := &testEnv{
		batches:     &memBatchRepo{},
		diseases:    &memDiseaseRepo{failOn: map[string]error{}},
		questions:   &memQuestionRepo{},
		conclusions: &memConclusionRepo{},
	}
	env.store = Store{
		Batches:     env.batches,
		Diseases:    env.diseases,
		Questions:   env.questions,
		Conclusions: env.conclusions,
	}
	return env
}

func (e *testEnv) importer(opts ...Option) *Importer {
	return New(e.store, append([]Option{WithTxRunner(identityTx{})}, opts...)...)
}

func testContext() context.Context {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return composables.WithLogger(context.Background(), logrus.NewEntry(l))
}

// ---- tests ----

func TestGenerateBatchNo(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	got := GenerateBatchNo(now)
	require.Len(t, got, 25)
	assert.Equal(t, "IMP20260314092653", got[:17])
	assert.NotEqual(t, GenerateBatchNo(now), got)
}

func TestImporter_Run_ImportsWorkbook(t *testing.T) {
	env := newTestEnv()
	ctx := composables.WithActor(testContext(), composables.Actor{ID: 42, Name: "admin"})

	report, err := env.importer().Run(ctx, 7, Source{
		Path:     hypertensionWorkbook(t),
		FileName: "rules.xlsx",
	})
	require.NoError(t, err)

	batch := report.Batch
	assert.Equal(t, importbatch.StatusCompleted, batch.Status)
	assert.Equal(t, 7, batch.TotalCount)
	assert.Equal(t, 7, batch.SuccessCount)
	assert.Equal(t, 0, batch.ErrorCount)
	assert.Equal(t, "rules.xlsx", batch.SourceFileName)
	require.NotNil(t, batch.CreatedBy)
	assert.Equal(t, int64(42), *batch.CreatedBy)
	assert.Empty(t, report.Warnings)

	diseases, err := env.diseases.ListByBatch(ctx, batch.BatchNo)
	require.NoError(t, err)
	require.Len(t, diseases, 1)
	assert.Equal(t, "高血压", diseases[0].Name)
	assert.Equal(t, "Q_HBP_1", diseases[0].FirstQuestionCode)
	assert.True(t, diseases[0].IsCommon)
	assert.Equal(t, int64(7), diseases[0].RuleID)

	questions, err := env.questions.ListByBatch(ctx, batch.BatchNo)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, question.AttributeNormal, questions[0].Attribute)
	assert.Equal(t, question.AritySingleSelect, questions[0].Arity)

	conclusions, err := env.conclusions.ListByBatch(ctx, batch.BatchNo)
	require.NoError(t, err)
	require.Len(t, conclusions, 4)
	first, err := env.questions.GetByCode(ctx, 7, "Q_HBP_1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, conclusions[0].QuestionID)
	assert.Equal(t, "Q_HBP_2", conclusions[0].NextQuestionCode)

	rows, err := env.batches.ListRowResults(ctx, batch.ID)
	require.NoError(t, err)
	require.Len(t, rows, 7)
	for _, r := range rows {
		assert.Equal(t, importbatch.RowSuccess, r.Status)
		require.NotNil(t, r.ReferenceID)
		assert.NotEmpty(t, r.RawRow)
	}
}

func TestImporter_Run_RowErrorsDoNotFailBatch(t *testing.T) {
	env := newTestEnv()

	path := writeWorkbook(t,
		diseaseSheet(diseaseRow("D_HBP", "高血压", "Q_HBP_1")),
		questionSheet(questionRow("Q_HBP_1", "确诊高血压多久了？", "P", "1-单选")),
		conclusionSheet(
			conclusionRow("Q_HBP_1", "一年以内", "", "1"),
			conclusionRow("Q_MISSING", "一年以上", "", "2"),
		),
	)

	report, err := env.importer().Run(testContext(), 1, Source{Path: path, FileName: "rules.xlsx"})
	require.NoError(t, err)

	batch := report.Batch
	assert.Equal(t, importbatch.StatusCompleted, batch.Status)
	assert.Equal(t, 4, batch.TotalCount)
	assert.Equal(t, 3, batch.SuccessCount)
	assert.Equal(t, 1, batch.ErrorCount)

	rows, err := env.batches.ListRowResults(testContext(), batch.ID)
	require.NoError(t, err)
	var failed *importbatch.RowResult
	for _, r := range rows {
		if r.Status == importbatch.RowError {
			failed = r
		}
	}
	require.NotNil(t, failed)
	assert.Equal(t, SheetConclusion, failed.SheetName)
	assert.Equal(t, 3, failed.RowNumber)
	require.NotNil(t, failed.ErrorMessage)
	assert.Contains(t, *failed.ErrorMessage, "referential")
	assert.Contains(t, *failed.ErrorMessage, "Q_MISSING")
	assert.Equal(t, "Q_MISSING", failed.RawRow[colAnswerQuestionCode])

	conclusions, err := env.conclusions.ListByBatch(testContext(), batch.BatchNo)
	require.NoError(t, err)
	assert.Len(t, conclusions, 1)
}

func TestImporter_Run_StructuralDiagnosisIsComplete(t *testing.T) {
	env := newTestEnv()

	// Conclusion sheet absent entirely, question sheet missing its arity column.
	path := writeWorkbook(t,
		diseaseSheet(diseaseRow("D_HBP", "高血压", "Q_HBP_1")),
		testSheet{name: SheetQuestion, rows: [][]string{
			{colQuestionCode, colQuestionContent, colQuestionAttribute},
			{"填写说明", "", ""},
			{"Q_HBP_1", "确诊高血压多久了？", "P"},
		}},
	)

	report, err := env.importer().Run(testContext(), 1, Source{Path: path, FileName: "rules.xlsx"})
	require.Error(t, err)

	se, ok := AsStructural(err)
	require.True(t, ok)
	assert.Contains(t, se.Problems, "missing sheet "+SheetConclusion)
	assert.Contains(t, se.Problems, fmt.Sprintf("sheet %s: missing column %s", SheetQuestion, colQuestionArity))

	batch := report.Batch
	assert.Equal(t, importbatch.StatusFailed, batch.Status)
	require.NotNil(t, batch.ErrorSummary)
	assert.Contains(t, *batch.ErrorSummary, "does not match template")

	assert.Empty(t, env.diseases.items)
	assert.Empty(t, env.questions.items)
}

func TestImporter_Run_DuplicateCodeWithinRun(t *testing.T) {
	env := newTestEnv()

	path := writeWorkbook(t,
		diseaseSheet(
			diseaseRow("D_HBP", "高血压", "Q_HBP_1"),
			diseaseRow("D_HBP", "高血压（重复）", "Q_HBP_1"),
		),
		questionSheet(questionRow("Q_HBP_1", "确诊高血压多久了？", "P", "1-单选")),
		conclusionSheet(conclusionRow("Q_HBP_1", "一年以内", "", "1")),
	)

	report, err := env.importer().Run(testContext(), 1, Source{Path: path, FileName: "rules.xlsx"})
	require.NoError(t, err)

	assert.Equal(t, importbatch.StatusCompleted, report.Batch.Status)
	assert.Equal(t, 1, report.Batch.ErrorCount)
	require.Len(t, env.diseases.items, 1)
	assert.Equal(t, "高血压", env.diseases.items[0].Name)
}

func TestImporter_Run_ResolvesQuestionsFromPreviousBatch(t *testing.T) {
	env := newTestEnv()
	_, err := env.questions.Create(testContext(), &question.Question{
		RuleID:  1,
		Code:    "Q_OLD",
		Content: "既往问题",
		BatchNo: "IMP20250101000000aaaaaaaa",
	})
	require.NoError(t, err)

	path := writeWorkbook(t,
		diseaseSheet(diseaseRow("D_HBP", "高血压", "Q_OLD")),
		questionSheet(questionRow("Q_HBP_1", "确诊高血压多久了？", "P", "1-单选")),
		conclusionSheet(conclusionRow("Q_HBP_1", "一年以内", "Q_OLD", "1")),
	)

	report, err := env.importer().Run(testContext(), 1, Source{Path: path, FileName: "rules.xlsx"})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Batch.ErrorCount)
	assert.Empty(t, report.Warnings)
}

func TestImporter_Run_ReimportCreatesNewVersion(t *testing.T) {
	env := newTestEnv()

	first, err := env.importer().Run(testContext(), 1, Source{Path: hypertensionWorkbook(t), FileName: "rules.xlsx"})
	require.NoError(t, err)
	second, err := env.importer().Run(testContext(), 1, Source{Path: hypertensionWorkbook(t), FileName: "rules.xlsx"})
	require.NoError(t, err)

	assert.NotEqual(t, first.Batch.BatchNo, second.Batch.BatchNo)
	assert.Equal(t, importbatch.StatusCompleted, second.Batch.Status)
	assert.Equal(t, 0, second.Batch.ErrorCount)

	count, err := env.diseases.CountByRule(testContext(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	latest, err := env.diseases.ListByBatch(testContext(), second.Batch.BatchNo)
	require.NoError(t, err)
	assert.Len(t, latest, 1)
}

func TestImporter_Run_ConstraintViolationIsRowLevel(t *testing.T) {
	env := newTestEnv()
	env.diseases.failOn["D_DM"] = &pgconn.PgError{Code: "23505", ConstraintName: "diseases_rule_batch_code_key"}

	path := writeWorkbook(t,
		diseaseSheet(
			diseaseRow("D_HBP", "高血压", "Q_HBP_1"),
			diseaseRow("D_DM", "糖尿病", "Q_HBP_1"),
		),
		questionSheet(questionRow("Q_HBP_1", "确诊高血压多久了？", "P", "1-单选")),
		conclusionSheet(conclusionRow("Q_HBP_1", "一年以内", "", "1")),
	)

	report, err := env.importer().Run(testContext(), 1, Source{Path: path, FileName: "rules.xlsx"})
	require.NoError(t, err)

	assert.Equal(t, importbatch.StatusCompleted, report.Batch.Status)
	assert.Equal(t, 1, report.Batch.ErrorCount)
	assert.Equal(t, 3, report.Batch.SuccessCount)

	rows, err := env.batches.ListRowResults(testContext(), report.Batch.ID)
	require.NoError(t, err)
	var messages []string
	for _, r := range rows {
		if r.ErrorMessage != nil {
			messages = append(messages, *r.ErrorMessage)
		}
	}
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "persistence")
	assert.Contains(t, messages[0], "diseases_rule_batch_code_key")
}

func TestImporter_Run_UnexpectedStoreErrorFailsBatch(t *testing.T) {
	env := newTestEnv()
	env.diseases.failOn["D_HBP"] = fmt.Errorf("connection reset")

	report, err := env.importer().Run(testContext(), 1, Source{Path: hypertensionWorkbook(t), FileName: "rules.xlsx"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, importbatch.StatusFailed, report.Batch.Status)
	require.NotNil(t, report.Batch.ErrorSummary)
}

// cancelingDiseaseRepo cancels the run context from inside a stage write,
// mimicking a deadline expiring mid-import.
type cancelingDiseaseRepo struct {
	*memDiseaseRepo
	cancel context.CancelFunc
}

func (r *cancelingDiseaseRepo) Create(ctx context.Context, d *disease.Disease) (*disease.Disease, error) {
	r.cancel()
	return nil, ctx.Err()
}

func TestImporter_Run_CanceledMidStageStillFinalizesBatch(t *testing.T) {
	env := newTestEnv()
	ctx, cancel := context.WithCancel(testContext())
	defer cancel()
	env.store.Diseases = &cancelingDiseaseRepo{memDiseaseRepo: env.diseases, cancel: cancel}

	report, err := New(env.store, WithTxRunner(deadlineTx{})).Run(ctx, 1, Source{
		Path:     hypertensionWorkbook(t),
		FileName: "rules.xlsx",
	})
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, importbatch.StatusFailed, report.Batch.Status)

	stored, err := env.batches.GetBatchByNo(testContext(), report.Batch.BatchNo)
	require.NoError(t, err)
	assert.Equal(t, importbatch.StatusFailed, stored.Status)
	require.NotNil(t, stored.ErrorSummary)
}

func importDurationSamples(t *testing.T) uint64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, metrics.ImportDuration.Write(&m))
	return m.GetHistogram().GetSampleCount()
}

func TestImporter_Run_FailedRunObservesDuration(t *testing.T) {
	env := newTestEnv()
	env.diseases.failOn["D_HBP"] = fmt.Errorf("connection reset")

	before := importDurationSamples(t)
	_, err := env.importer().Run(testContext(), 1, Source{Path: hypertensionWorkbook(t), FileName: "rules.xlsx"})
	require.Error(t, err)
	assert.Equal(t, before+1, importDurationSamples(t))
}

func TestImporter_Run_MaxRowsBound(t *testing.T) {
	env := newTestEnv()

	report, err := env.importer(WithMaxRows(3)).Run(testContext(), 1, Source{
		Path:     hypertensionWorkbook(t),
		FileName: "rules.xlsx",
	})
	require.Error(t, err)

	_, ok := AsStructural(err)
	require.True(t, ok)
	assert.Contains(t, err.Error(), "row import bound")
	assert.Equal(t, importbatch.StatusFailed, report.Batch.Status)
	assert.Empty(t, env.diseases.items)
}

func TestImporter_Run_GraphWarnings(t *testing.T) {
	env := newTestEnv()

	path := writeWorkbook(t,
		diseaseSheet(diseaseRow("D_HBP", "高血压", "Q_NOWHERE")),
		questionSheet(
			questionRow("Q_HBP_1", "确诊高血压多久了？", "P", "1-单选"),
			questionRow("Q_HBP_2", "是否规律服药？", "P", "1-单选"),
		),
		conclusionSheet(
			conclusionRow("Q_HBP_1", "一年以内", "Q_HBP_2", "1"),
			conclusionRow("Q_HBP_2", "是", "Q_HBP_1", "1"),
		),
	)

	report, err := env.importer().Run(testContext(), 1, Source{Path: path, FileName: "rules.xlsx"})
	require.NoError(t, err)

	assert.Equal(t, importbatch.StatusCompleted, report.Batch.Status)
	assert.Equal(t, 0, report.Batch.ErrorCount)
	require.Len(t, report.Warnings, 2)
	assert.Contains(t, report.Warnings[0], "Q_NOWHERE")
	assert.Contains(t, report.Warnings[1], "cycle")
	assert.Contains(t, report.Warnings[1], "Q_HBP_1 -> Q_HBP_2 -> Q_HBP_1")
}

func TestImporter_Run_PublishesCompletionEvent(t *testing.T) {
	env := newTestEnv()

	var got []Completed
	bus := eventbus.NewEventPublisher(nil)
	bus.Subscribe(func(e Completed) { got = append(got, e) })

	report, err := env.importer(WithEventBus(bus)).Run(testContext(), 1, Source{
		Path:     hypertensionWorkbook(t),
		FileName: "rules.xlsx",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, report.Batch.BatchNo, got[0].BatchNo)
	assert.Equal(t, int64(1), got[0].RuleID)
	assert.Equal(t, importbatch.StatusCompleted, got[0].Status)
}
