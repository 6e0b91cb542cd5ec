package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dionysius/docweave/internal/compose"
	"github.com/dionysius/docweave/internal/content"
	"github.com/dionysius/docweave/internal/family"
	"github.com/dionysius/docweave/internal/gitsource"
	"github.com/dionysius/docweave/internal/log"
	"github.com/dionysius/docweave/internal/nav"
	"github.com/dionysius/docweave/internal/playbook"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Aggregate content, build the catalog, and report the result",
	Long: `generate runs the pipeline end to end as far as this module's
external collaborators allow: it loads the playbook, aggregates content
from every configured source, classifies it into a catalog, counts the
navigation files it discovers, and builds the site model. Building
navigation trees, composing content pages, and rendering HTML require a
markup.Parser and layout.Renderer this module treats as injected external
collaborators, so generate composes only the 404 page (which needs no
parser) and stops at reporting what it built.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	pb, err := playbook.Load(cfgFile)
	if err != nil {
		return err
	}

	bundles, err := gitsource.Aggregate(ctx, pb, realStdout)
	if err != nil {
		return err
	}

	catalog := content.NewCatalog(pb.URLs.HTMLExtensionStyle)
	navCatalog := nav.NewCatalog()

	var navFileCount int
	for _, b := range bundles {
		navSpecs := make(map[string]bool, len(b.Nav))
		for _, n := range b.Nav {
			navSpecs[n] = true
		}

		for _, raw := range b.Files {
			src, ok := content.Classify(raw, navSpecs)
			if !ok {
				continue
			}
			file := &content.File{Path: raw.Path, Contents: raw.Contents, Src: src}
			if err := catalog.AddFile(file); err != nil {
				slog.Warn("skipping file", "path", raw.Path, "error", err)
				continue
			}
			if src.Family == family.Navigation {
				navFileCount++
			}
		}

		if err := catalog.AddComponentVersion(b.Name, b.Version, b.Title, b.StartPage); err != nil {
			slog.Warn("skipping component version", "component", b.Name, "version", b.Version, "error", err)
		}
	}

	if navFileCount > 0 {
		slog.Info("discovered navigation files awaiting render", "count", navFileCount,
			"detail", "building navigation trees requires an injected markup.Parser, which this module treats as an external collaborator")
	}

	site, err := compose.NewSiteUIModel(pb, catalog)
	if err != nil {
		return err
	}
	composer := compose.New(site, catalog, navCatalog)

	// The 404 bypass page needs no markup.Parser, so it's the one page this
	// driver can compose end to end without an injected external collaborator.
	notFound := &content.File{Src: content.Src{Stem: "404"}}
	if _, err := composer(notFound, nil); err != nil {
		slog.Warn("404 page composition failed", "error", err)
	}

	slog.Info("build complete",
		"components", len(catalog.Components()),
		"site", site.Title,
		slog.Bool("has_start_page", site.StartPageURL != ""),
		log.Success(),
	)

	return nil
}
