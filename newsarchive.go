// Package newsarchive provides a research and archival tool over a fixed
// corpus of news article metadata. It turns archived listing captures into
// structured article records, serves search and statistics over them, and
// exports a day's articles to a document, optionally fetching the full
// article text from the live site.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, excelize/, rod/).
package newsarchive
