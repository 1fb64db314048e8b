// Package cli provides the bidscurator command-line interface.
//
// It wires configuration, logging, the platform client and the services into
// cobra commands:
//   - meta: attach README, CHANGES, code, dataset_description.json and
//     participants/sessions/scans tables to project, subjects and sessions
//   - apply: write BIDS records and fieldmap intentions from a naming mapping
//   - sessions: list the selected sessions with their inferred BIDS labels
//
// Per-entry failures are printed as a table and turn into ErrFailures, which
// makes the process exit with status 1. See Execute.
package cli
