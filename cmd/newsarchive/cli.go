package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"

	"github.com/fwojciec/newsarchive"
)

// ExportRunner builds one export document synchronously.
type ExportRunner interface {
	Run(ctx context.Context, req newsarchive.ExportRequest, progress newsarchive.ProgressFunc) (string, error)
}

// ImageDownloader stores article images locally.
type ImageDownloader interface {
	Download(ctx context.Context, a *newsarchive.Article, force bool) (string, bool, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Config *Config
	Logger *slog.Logger

	Decoder   newsarchive.CaptureDecoder
	Extractor newsarchive.ArticleExtractor
	Articles  newsarchive.ArticleService
	Content   newsarchive.ContentService
	Markdown  newsarchive.MarkdownRenderer
	Tables    newsarchive.TableWriter
	Exporter  ExportRunner
	Images    ImageDownloader

	// Handler and Shutdown back the serve command. Listener is optional;
	// when nil serve listens on the configured address.
	Handler  http.Handler
	Shutdown func(context.Context) error
	Listener net.Listener
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `short:"C" name:"config" type:"path" help:"Path to a YAML config file (env NEWSARCHIVE_CONFIG)"`

	Convert ConvertCmd `cmd:"" help:"Decode the listing page out of a saved web capture"`
	Extract ExtractCmd `cmd:"" help:"Extract article records from a listing page or capture"`
	Merge   MergeCmd   `cmd:"" help:"Merge article datasets, removing duplicates"`
	Stats   StatsCmd   `cmd:"" help:"Show dataset statistics"`
	Search  SearchCmd  `cmd:"" help:"Search the dataset"`
	Content ContentCmd `cmd:"" help:"Fetch the full text of an article"`
	Export  ExportCmd  `cmd:"" help:"Export one day's articles to a document"`
	Images  ImagesCmd  `cmd:"" help:"Download article images"`
	Serve   ServeCmd   `cmd:"" help:"Serve the JSON API"`
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	Capture string `arg:"" type:"existingfile" help:"Saved web capture (MHTML)"`
	Out     string `arg:"" help:"Output HTML file"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	In  string `arg:"" type:"existingfile" help:"Listing page (HTML or MHTML)"`
	Out string `arg:"" help:"Output JSON file"`
}

// MergeCmd is the "merge" subcommand.
type MergeCmd struct {
	Out     string   `arg:"" help:"Output JSON file"`
	Inputs  []string `arg:"" help:"Input JSON files, in priority order"`
	Summary string   `short:"s" help:"Also write the merge summary to this JSON file"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	Timeline bool     `short:"t" help:"Show monthly article counts"`
	Keywords []string `short:"k" help:"Count articles mentioning each keyword (repeatable)"`
	Days     int      `short:"d" default:"0" help:"Show the N most active days"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query   string `arg:"" optional:"" help:"Text to search for"`
	Field   string `short:"f" default:"all" enum:"all,title,excerpt" help:"Fields to search (all, title, excerpt)"`
	Type    string `short:"t" help:"Restrict to one article type"`
	From    string `help:"Earliest date (YYYY-MM-DD)"`
	To      string `help:"Latest date (YYYY-MM-DD)"`
	Page    int    `short:"p" default:"1" help:"Page number"`
	PerPage int    `short:"n" default:"20" help:"Results per page"`
	XLSX    string `name:"xlsx" help:"Write every match to this spreadsheet instead of printing"`
}

// ContentCmd is the "content" subcommand.
type ContentCmd struct {
	ID       int  `arg:"" help:"Article ID"`
	Markdown bool `short:"m" help:"Render the article body as Markdown"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Date    string `arg:"" help:"Day to export (YYYY-MM-DD)"`
	Content bool   `help:"Include the full text of every article"`
	Images  bool   `help:"Embed article images"`
}

// ImagesCmd is the "images" subcommand.
type ImagesCmd struct {
	Date  string `help:"Only articles from this day (YYYY-MM-DD)"`
	Limit int    `short:"l" default:"0" help:"Download at most N images"`
	Force bool   `short:"f" help:"Download even when the file exists"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `short:"a" help:"Listen address (overrides server.addr)"`
}
