package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-faster/errors"

	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/importbatch"
	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/rule"
	"github.com/medinsure/underwriting-admin/modules/underwriting/services/importer"
	"github.com/medinsure/underwriting-admin/pkg/composables"
	"github.com/medinsure/underwriting-admin/pkg/serrors"
)

var ErrUnsupportedFileType = serrors.NewError(
	"UNSUPPORTED_FILE_TYPE",
	"only .xlsx and .xlsm workbooks are supported",
	"underwriting.import.unsupported_file_type",
)

// ImportService stages an uploaded workbook on disk and hands it to the
// import engine. The staged copy is removed when the run finishes, whatever
// the outcome.
type ImportService struct {
	rules      rule.Repository
	batches    importbatch.Repository
	engine     *importer.Importer
	uploadsDir string
	timeout    time.Duration
}

func NewImportService(
	rules rule.Repository,
	batches importbatch.Repository,
	engine *importer.Importer,
	uploadsDir string,
	timeout time.Duration,
) *ImportService {
	return &ImportService{
		rules:      rules,
		batches:    batches,
		engine:     engine,
		uploadsDir: uploadsDir,
		timeout:    timeout,
	}
}

func (s *ImportService) Import(ctx context.Context, ruleID int64, fileName string, src io.Reader) (*importer.Report, error) {
	target, err := s.rules.GetByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if ext != ".xlsx" && ext != ".xlsm" {
		return nil, ErrUnsupportedFileType
	}

	path, err := s.stage(ext, src)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			composables.MustUseLogger(ctx).WithError(err).Warn("could not remove staged upload")
		}
	}()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	report, runErr := s.engine.Run(ctx, target.ID, importer.Source{Path: path, FileName: fileName})
	if runErr != nil {
		return report, runErr
	}

	if target.Status != rule.StatusImported {
		target.Status = rule.StatusImported
		if _, err := s.rules.Update(ctx, target); err != nil {
			return report, errors.Wrap(err, "mark rule imported")
		}
	}
	return report, nil
}

func (s *ImportService) stage(ext string, src io.Reader) (string, error) {
	if err := os.MkdirAll(s.uploadsDir, 0o755); err != nil {
		return "", errors.Wrap(err, "create uploads directory")
	}
	f, err := os.CreateTemp(s.uploadsDir, "rule-import-*"+ext)
	if err != nil {
		return "", errors.Wrap(err, "stage upload")
	}
	if _, err := io.Copy(f, src); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", errors.Wrap(err, "write staged upload")
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", errors.Wrap(err, "close staged upload")
	}
	return f.Name(), nil
}

func (s *ImportService) GetBatch(ctx context.Context, batchNo string) (*importbatch.Batch, error) {
	return s.batches.GetBatchByNo(ctx, batchNo)
}

func (s *ImportService) GetBatchDetails(ctx context.Context, batchNo string) (*importbatch.Batch, []*importbatch.RowResult, error) {
	batch, err := s.batches.GetBatchByNo(ctx, batchNo)
	if err != nil {
		return nil, nil, err
	}
	rows, err := s.batches.ListRowResults(ctx, batch.ID)
	if err != nil {
		return nil, nil, err
	}
	return batch, rows, nil
}

func (s *ImportService) ListBatches(ctx context.Context, limit, offset int) ([]*importbatch.Batch, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.batches.ListBatches(ctx, limit, offset)
}
