package etree

import (
	"archive/zip"
	"fmt"
	"io"
	"time"

	"github.com/beevik/etree"
	"github.com/dartisan/webscraper"
)

// XML namespaces used by the package parts.
const (
	nsWordML       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsOfficeRels   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels  = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsCoreProps    = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
)

// Relationship types.
const (
	relOfficeDocument = nsOfficeRels + "/officeDocument"
	relStyles         = nsOfficeRels + "/styles"
	relCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
)

// Part names inside the .docx archive.
const (
	PartContentTypes = "[Content_Types].xml"
	PartRels         = "_rels/.rels"
	PartDocument     = "word/document.xml"
	PartStyles       = "word/styles.xml"
	PartDocumentRels = "word/_rels/document.xml.rels"
	PartCoreProps    = "docProps/core.xml"
)

type part struct {
	name string
	doc  *etree.Document
}

func newPart() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	return doc
}

// writePackage zips the document part together with the fixed parts.
func writePackage(w io.Writer, document *etree.Document, req *webscraper.RenderRequest) error {
	parts := []part{
		{PartContentTypes, contentTypes()},
		{PartRels, packageRels()},
		{PartDocument, document},
		{PartStyles, styles()},
		{PartDocumentRels, documentRels()},
		{PartCoreProps, coreProps(req)},
	}

	zw := zip.NewWriter(w)
	for _, p := range parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: req.GeneratedAt,
		})
		if err != nil {
			return fmt.Errorf("creating %s: %w", p.name, err)
		}
		if _, err := p.doc.WriteTo(fw); err != nil {
			return fmt.Errorf("writing %s: %w", p.name, err)
		}
	}
	return zw.Close()
}

func contentTypes() *etree.Document {
	doc := newPart()
	types := doc.CreateElement("Types")
	types.CreateAttr("xmlns", nsContentTypes)

	addDefault := func(ext, contentType string) {
		d := types.CreateElement("Default")
		d.CreateAttr("Extension", ext)
		d.CreateAttr("ContentType", contentType)
	}
	addOverride := func(partName, contentType string) {
		o := types.CreateElement("Override")
		o.CreateAttr("PartName", "/"+partName)
		o.CreateAttr("ContentType", contentType)
	}

	addDefault("rels", "application/vnd.openxmlformats-package.relationships+xml")
	addDefault("xml", "application/xml")
	addOverride(PartDocument, "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml")
	addOverride(PartStyles, "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml")
	addOverride(PartCoreProps, "application/vnd.openxmlformats-package.core-properties+xml")
	return doc
}

func relationships(rels ...[3]string) *etree.Document {
	doc := newPart()
	root := doc.CreateElement("Relationships")
	root.CreateAttr("xmlns", nsPackageRels)
	for _, rel := range rels {
		r := root.CreateElement("Relationship")
		r.CreateAttr("Id", rel[0])
		r.CreateAttr("Type", rel[1])
		r.CreateAttr("Target", rel[2])
	}
	return doc
}

func packageRels() *etree.Document {
	return relationships(
		[3]string{"rId1", relOfficeDocument, PartDocument},
		[3]string{"rId2", relCoreProps, PartCoreProps},
	)
}

func documentRels() *etree.Document {
	return relationships([3]string{"rId1", relStyles, "styles.xml"})
}

func coreProps(req *webscraper.RenderRequest) *etree.Document {
	doc := newPart()
	root := doc.CreateElement("cp:coreProperties")
	root.CreateAttr("xmlns:cp", nsCoreProps)
	root.CreateAttr("xmlns:dc", "http://purl.org/dc/elements/1.1/")
	root.CreateAttr("xmlns:dcterms", "http://purl.org/dc/terms/")
	root.CreateAttr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")

	root.CreateElement("dc:title").SetText(webscraper.DocumentTitle)
	root.CreateElement("dc:description").SetText(sanitizeXML(req.Prompt))
	for _, tag := range []string{"dcterms:created", "dcterms:modified"} {
		el := root.CreateElement(tag)
		el.CreateAttr("xsi:type", "dcterms:W3CDTF")
		el.SetText(req.GeneratedAt.UTC().Format(time.RFC3339))
	}
	return doc
}

type styleDef struct {
	id, name string
	bold     bool
	size     int // half-points
	color    string
	before   int // twips of spacing above
	indent   int // twips of left indent
}

var styleDefs = []styleDef{
	{id: StyleTitle, name: "Title", size: 52, color: "17365D", before: 0},
	{id: StyleHeading1, name: "heading 1", bold: true, size: 32, color: "365F91", before: 480},
	{id: StyleHeading2, name: "heading 2", bold: true, size: 26, color: "4F81BD", before: 200},
	{id: StyleListBullet, name: "List Bullet", indent: 720},
}

func styles() *etree.Document {
	doc := newPart()
	root := doc.CreateElement("w:styles")
	root.CreateAttr("xmlns:w", nsWordML)

	rPrDefault := root.CreateElement("w:docDefaults").CreateElement("w:rPrDefault").CreateElement("w:rPr")
	fonts := rPrDefault.CreateElement("w:rFonts")
	fonts.CreateAttr("w:ascii", "Calibri")
	fonts.CreateAttr("w:hAnsi", "Calibri")
	fonts.CreateAttr("w:cs", "Calibri")
	rPrDefault.CreateElement("w:sz").CreateAttr("w:val", "22")

	normal := root.CreateElement("w:style")
	normal.CreateAttr("w:type", "paragraph")
	normal.CreateAttr("w:default", "1")
	normal.CreateAttr("w:styleId", "Normal")
	normal.CreateElement("w:name").CreateAttr("w:val", "Normal")
	normal.CreateElement("w:qFormat")

	for _, def := range styleDefs {
		s := root.CreateElement("w:style")
		s.CreateAttr("w:type", "paragraph")
		s.CreateAttr("w:styleId", def.id)
		s.CreateElement("w:name").CreateAttr("w:val", def.name)
		s.CreateElement("w:basedOn").CreateAttr("w:val", "Normal")
		s.CreateElement("w:next").CreateAttr("w:val", "Normal")
		s.CreateElement("w:qFormat")

		pPr := s.CreateElement("w:pPr")
		if def.before > 0 {
			pPr.CreateElement("w:spacing").CreateAttr("w:before", fmt.Sprint(def.before))
		}
		if def.indent > 0 {
			pPr.CreateElement("w:ind").CreateAttr("w:left", fmt.Sprint(def.indent))
		}

		rPr := s.CreateElement("w:rPr")
		if def.bold {
			rPr.CreateElement("w:b")
		}
		if def.color != "" {
			rPr.CreateElement("w:color").CreateAttr("w:val", def.color)
		}
		if def.size > 0 {
			rPr.CreateElement("w:sz").CreateAttr("w:val", fmt.Sprint(def.size))
		}
	}
	return doc
}
