// Package services contains the application services of bidscurator.
//
// SessionService selects the sessions a run works on and infers BIDS labels
// from already curated files. LabelService writes BIDS records for the
// acquisitions of a naming mapping and resolves fieldmap IntendedFor paths.
// MetaService attaches dataset level sidecar files to projects, subjects and
// sessions.
//
// Per-entry failures never abort a batch: they are returned as
// bids.FailureRecord values and processing continues. Errors returned
// directly are fatal for the whole run.
package services
