// Package orderlakeops provides reusable operational automation for the order lake.
package orderlakeops

import "context"

// Operation defines the contract that all orderlakeops operations must implement.
//
// The framework automatically calls methods in order: Validate -> Plan -> Execute.
// Developers only implement business logic; the framework handles:
//   - Calling Validate() first to check inputs
//   - Calling Plan() to show what will happen (dry-run)
//   - Prompting for confirmation (unless --yes flag)
//   - Calling Execute() to perform the action
//
// Each operation defines its own result struct. Callers use type assertion:
//
//	result, err := orderlakeops.Run(ctx, op)
//	uploadResult := result.(*pipeline.UploadResult)
type Operation interface {
	// Name returns the operation identifier (e.g., "upload").
	Name() string

	// Description returns a short description of what this operation does.
	Description() string

	// Validate checks that all required inputs are provided and valid.
	// Called first before any other method.
	Validate(ctx context.Context) error

	// Plan shows what would happen without making changes (dry-run).
	// Should print the planned actions to console.
	// Called after Validate(), before Execute().
	Plan(ctx context.Context) error

	// Execute performs the actual operation.
	// Returns the operation's typed result struct (use type assertion to access).
	// Only called after Plan() and user confirmation.
	Execute(ctx context.Context) (any, error)
}

// Run executes an operation with the standard flow: Validate -> Plan -> Execute.
// This is for programmatic use from other services (no confirmation prompts).
// For dry-run, call Validate() and Plan() directly without Execute().
func Run(ctx context.Context, op Operation) (any, error) {
	if err := op.Validate(ctx); err != nil {
		return nil, err
	}
	if err := op.Plan(ctx); err != nil {
		return nil, err
	}
	return op.Execute(ctx)
}
