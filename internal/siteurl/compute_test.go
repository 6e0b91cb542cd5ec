package siteurl_test

import (
	"strings"
	"testing"

	"github.com/dionysius/docweave/internal/family"
	"github.com/dionysius/docweave/internal/siteurl"
	"github.com/stretchr/testify/assert"
)

func pageLocator(component, version, module, relative string) siteurl.Locator {
	basename := relative
	if idx := strings.LastIndex(relative, "/"); idx >= 0 {
		basename = relative[idx+1:]
	}
	stem := strings.TrimSuffix(basename, ".adoc")
	return siteurl.Locator{
		Component: component,
		Version:   version,
		Module:    module,
		Family:    family.Page,
		Relative:  relative,
		Basename:  basename,
		Stem:      stem,
		MediaType: "text/asciidoc",
	}
}

func TestComputeOutAndPubDefaultStyle(t *testing.T) {
	src := pageLocator("docs", "2.0", "ROOT", "intro.adoc")
	out := siteurl.ComputeOut(src, siteurl.StyleDefault)
	assert.Equal(t, "docs/2.0/intro.html", out.Path)

	pub := siteurl.ComputePub(src, &out, siteurl.StyleDefault)
	assert.Equal(t, "/docs/2.0/intro.html", pub.URL)
}

func TestComputeOutAndPubDropStyle(t *testing.T) {
	src := pageLocator("docs", "2.0", "ROOT", "intro.adoc")
	out := siteurl.ComputeOut(src, siteurl.StyleDrop)
	pub := siteurl.ComputePub(src, &out, siteurl.StyleDrop)
	assert.Equal(t, "/docs/2.0/intro", pub.URL)

	indexSrc := pageLocator("docs", "2.0", "ROOT", "index.adoc")
	indexOut := siteurl.ComputeOut(indexSrc, siteurl.StyleDrop)
	indexPub := siteurl.ComputePub(indexSrc, &indexOut, siteurl.StyleDrop)
	assert.Equal(t, "/docs/2.0/", indexPub.URL)
}

func TestComputeOutAndPubIndexifyStyle(t *testing.T) {
	src := pageLocator("docs", "2.0", "ROOT", "intro.adoc")
	out := siteurl.ComputeOut(src, siteurl.StyleIndexify)
	assert.Equal(t, "docs/2.0/intro/index.html", out.Path)

	pub := siteurl.ComputePub(src, &out, siteurl.StyleIndexify)
	assert.Equal(t, "/docs/2.0/intro/", pub.URL)
}

func TestComputeOutElidesMasterAndRoot(t *testing.T) {
	src := pageLocator("docs", "master", "ROOT", "intro.adoc")
	out := siteurl.ComputeOut(src, siteurl.StyleDefault)
	assert.Equal(t, "docs/intro.html", out.Path)
}

func TestComputeOutNonRootModuleAndNestedRelative(t *testing.T) {
	src := pageLocator("docs", "1.0", "ui", "widgets/button.adoc")
	out := siteurl.ComputeOut(src, siteurl.StyleDefault)
	assert.Equal(t, "docs/1.0/ui/widgets/button.html", out.Path)
	assert.Equal(t, "..", out.ModuleRootPath)
	assert.Equal(t, "../../../..", out.RootPath)
}

func TestComputeOutImageFamilyUsesImagesSegment(t *testing.T) {
	src := siteurl.Locator{
		Component: "docs",
		Version:   "1.0",
		Module:    "ROOT",
		Family:    family.Image,
		Relative:  "diagram.png",
		Basename:  "diagram.png",
		Stem:      "diagram",
		MediaType: "image/png",
	}
	out := siteurl.ComputeOut(src, siteurl.StyleDefault)
	assert.Equal(t, "docs/1.0/_images/diagram.png", out.Path)

	pub := siteurl.ComputePub(src, &out, siteurl.StyleDefault)
	assert.Equal(t, "/docs/1.0/_images/diagram.png", pub.URL)
}

func TestComputeOutAttachmentFamilyUsesAttachmentsSegment(t *testing.T) {
	src := siteurl.Locator{
		Component: "docs",
		Version:   "1.0",
		Module:    "ROOT",
		Family:    family.Attachment,
		Relative:  "sample.zip",
		Basename:  "sample.zip",
		Stem:      "sample",
		MediaType: "application/zip",
	}
	out := siteurl.ComputeOut(src, siteurl.StyleDefault)
	assert.Equal(t, "docs/1.0/_attachments/sample.zip", out.Path)
}

func TestComputePubNavigationSynthesizesURL(t *testing.T) {
	src := siteurl.Locator{Component: "docs", Version: "1.0", Module: "ui", Family: family.Navigation}
	pub := siteurl.ComputePub(src, nil, siteurl.StyleDefault)
	assert.Equal(t, "/docs/1.0/ui/", pub.URL)
	assert.Equal(t, ".", pub.ModuleRootPath)
}

func TestComputePubNavigationElidesMasterAndRoot(t *testing.T) {
	src := siteurl.Locator{Component: "docs", Version: "master", Module: "ROOT", Family: family.Navigation}
	pub := siteurl.ComputePub(src, nil, siteurl.StyleDefault)
	assert.Equal(t, "/docs/", pub.URL)
}
