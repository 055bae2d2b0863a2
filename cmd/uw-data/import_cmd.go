package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/medinsure/underwriting-admin/modules/underwriting/domain/importbatch"
	"github.com/medinsure/underwriting-admin/modules/underwriting/infrastructure/persistence"
	"github.com/medinsure/underwriting-admin/modules/underwriting/services/importer"
	"github.com/medinsure/underwriting-admin/pkg/composables"
	"github.com/medinsure/underwriting-admin/pkg/configuration"
)

type importOptions struct {
	file   string
	ruleID int64
	actor  int64
}

func newImportCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a rule workbook and print the batch report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "Path to the .xlsx workbook (required)")
	cmd.Flags().Int64Var(&opts.ruleID, "rule", 0, "ID of the rule the workbook belongs to (required)")
	cmd.Flags().Int64Var(&opts.actor, "actor", 0, "User ID recorded as the batch creator")

	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("rule")

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(opts.file); err != nil {
			return withCode(exitUsage, fmt.Errorf("invalid --file: %w", err))
		}
		if opts.ruleID <= 0 {
			return withCode(exitUsage, fmt.Errorf("invalid --rule: %d", opts.ruleID))
		}
		return nil
	}

	return cmd
}

func runImport(ctx context.Context, opts importOptions) error {
	conf := configuration.Use()
	logger := conf.Logger()
	logger.SetLevel(logrus.WarnLevel)

	poolCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	pool, err := pgxpool.New(poolCtx, conf.Database.ConnectionString())
	if err != nil {
		return withCode(exitDB, fmt.Errorf("connect to database: %w", err))
	}
	defer pool.Close()

	ctx = composables.WithPool(ctx, pool)
	ctx = composables.WithLogger(ctx, logrus.NewEntry(logger))
	if opts.actor > 0 {
		ctx = composables.WithActor(ctx, composables.Actor{ID: opts.actor, Name: "uw-data"})
	}

	rules := persistence.NewRuleRepository()
	if _, err := rules.GetByID(ctx, opts.ruleID); err != nil {
		return withCode(exitUsage, fmt.Errorf("rule %d: %w", opts.ruleID, err))
	}

	batches := persistence.NewImportRepository()
	engine := importer.New(
		importer.Store{
			Batches:     batches,
			Diseases:    persistence.NewDiseaseRepository(),
			Questions:   persistence.NewQuestionRepository(),
			Conclusions: persistence.NewConclusionRepository(),
		},
		importer.WithMaxRows(conf.Import.MaxRows),
	)

	report, runErr := engine.Run(ctx, opts.ruleID, importer.Source{
		Path:     opts.file,
		FileName: filepath.Base(opts.file),
	})
	if report == nil {
		return withCode(exitDB, runErr)
	}

	renderReport(ctx, batches, report, runErr)
	if runErr != nil {
		return withCode(exitImport, fmt.Errorf("import failed: %w", runErr))
	}
	return nil
}

func renderReport(ctx context.Context, batches importbatch.Repository, report *importer.Report, runErr error) {
	batch := report.Batch

	if batch.Status == importbatch.StatusCompleted {
		color.Green("Batch %s completed", batch.BatchNo)
	} else {
		color.Red("Batch %s %s", batch.BatchNo, batch.Status)
	}
	if se, ok := importer.AsStructural(runErr); ok {
		for _, problem := range se.Problems {
			color.Red("  %s", problem)
		}
	}

	summary := tablewriter.NewWriter(os.Stdout)
	summary.SetHeader([]string{"Batch", "File", "Status", "Total", "Success", "Errors"})
	summary.Append([]string{
		batch.BatchNo,
		batch.SourceFileName,
		string(batch.Status),
		strconv.Itoa(batch.TotalCount),
		strconv.Itoa(batch.SuccessCount),
		strconv.Itoa(batch.ErrorCount),
	})
	summary.Render()

	if batch.ErrorCount > 0 {
		renderFailedRows(ctx, batches, batch.ID)
	}
	for _, warning := range report.Warnings {
		color.Yellow("warning: %s", warning)
	}
}

func renderFailedRows(ctx context.Context, batches importbatch.Repository, batchID int64) {
	rows, err := batches.ListRowResults(ctx, batchID)
	if err != nil {
		color.Red("could not load row results: %v", err)
		return
	}

	color.Yellow("\nFailed rows")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Sheet", "Row", "Error"})
	for _, r := range rows {
		if r.Status != importbatch.RowError {
			continue
		}
		msg := ""
		if r.ErrorMessage != nil {
			msg = *r.ErrorMessage
		}
		table.Append([]string{r.SheetName, strconv.Itoa(r.RowNumber), msg})
	}
	table.Render()
}
