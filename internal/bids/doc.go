// Package bids models the BIDS metadata that bidscurator writes onto
// platform files.
//
// # Overview
//
//   - NamingKey: a heuristic naming template that formats into the
//     sub/ses/folder/name components of one BIDS file (see NamingKey.Format).
//   - Record: the fixed-field BIDS record stored under info.BIDS of a file.
//     Unknown keys written by upstream curation are kept in Record.Extra so a
//     read-modify-write cycle never drops them.
//   - Intent: the structured IntendedFor value of a fieldmap record, with a
//     single codec (Intent.Value / ParseIntent).
//   - DefaultRecord: folder-specific records used when a file carries no
//     BIDS metadata yet.
//   - Mapping: the ordered NamingKey → acquisitions input loaded from YAML.
//   - FailureRecord: a non-fatal per-entry failure collected by the services.
package bids
