// Package runner provides a standardized execution flow for orderlakeops CLI
// commands.
package runner

import (
	"context"
	"time"

	"github.com/samsarahq/go/oops"

	"orderlake.io/orderlake/cmd/orderlakeops/internal/confirm"
	"orderlake.io/orderlake/helpers/slog"
	"orderlake.io/orderlake/orderlakeops"
	"orderlake.io/orderlake/orderlakeops/runledger"
)

// Options configures how an operation is executed.
type Options struct {
	// DryRun shows what would happen without making changes.
	DryRun bool

	// SkipConfirm skips interactive confirmation prompts.
	SkipConfirm bool

	// LedgerPath is the bolt file recording executed runs. Empty disables
	// recording.
	LedgerPath string
}

// Run executes an orderlakeops.Operation with the standard flow:
//
//  1. Validate() - Check inputs
//  2. Plan() - Show what will happen (dry-run output)
//  3. Confirm - Ask user to proceed (unless --yes or --dry-run)
//  4. Execute() - Perform the action, recording the outcome in the run ledger
//
// This ensures all CLI commands behave consistently.
// Operations handle their own console output in each method.
func Run(ctx context.Context, op orderlakeops.Operation, opts Options) error {
	slog.Debugw(ctx, "validating operation", "operation", op.Name())
	if err := op.Validate(ctx); err != nil {
		return oops.Wrapf(err, "validation failed")
	}

	slog.Debugw(ctx, "planning operation", "operation", op.Name())
	if err := op.Plan(ctx); err != nil {
		return oops.Wrapf(err, "planning failed")
	}

	// Dry runs stop after the plan and leave no ledger entry.
	if opts.DryRun {
		return nil
	}

	if !opts.SkipConfirm {
		if err := confirm.Prompt("Proceed with execution?"); err != nil {
			return err
		}
	}

	slog.Debugw(ctx, "executing operation", "operation", op.Name())
	started := time.Now()
	_, execErr := op.Execute(ctx)
	record(ctx, opts.LedgerPath, op.Name(), started, execErr)
	if execErr != nil {
		return oops.Wrapf(execErr, "execution failed")
	}

	return nil
}

// record appends the run outcome to the local ledger. Ledger problems are
// logged, not returned; history keeping never fails an operation.
func record(ctx context.Context, ledgerPath, operation string, started time.Time, execErr error) {
	if ledgerPath == "" {
		return
	}

	ledger, err := runledger.Open(ledgerPath)
	if err != nil {
		slog.Warnw(ctx, "could not open run ledger", "path", ledgerPath, "error", err.Error())
		return
	}
	defer ledger.Close()

	rec := runledger.Record{
		Operation:  operation,
		StartedAt:  started.UTC(),
		DurationMs: time.Since(started).Milliseconds(),
		Outcome:    "ok",
	}
	if execErr != nil {
		rec.Outcome = "error"
		rec.Error = oops.Cause(execErr).Error()
	}
	if err := ledger.Append(rec); err != nil {
		slog.Warnw(ctx, "could not record run", "path", ledgerPath, "error", err.Error())
	}
}
