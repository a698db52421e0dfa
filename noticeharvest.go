// Package noticeharvest harvests regulatory notices (product recalls, public
// alerts and press releases) published as HTML tables on a single government
// site. Each table row is resolved to a detail page or document, backed by
// a document artifact on disk, reduced to text, and stored as one record.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/, gofpdf/).
package noticeharvest
