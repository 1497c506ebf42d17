package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"
)

// DocxContentType is the MIME type of the serialized package.
const DocxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const (
	nsMain = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRel  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	// BulletNumID is the numbering instance every bulleted block refers to.
	BulletNumID     = 1
	bulletAbstract  = 0
	bulletIndent    = 720
	bulletHanging   = 360
	bulletGlyph     = "•"
	bulletListName  = "resume-bullets"
	pageWidthTwips  = 11906
	pageHeightTwips = 16838
)

// zipEpoch is stamped on every entry so identical documents serialize to
// identical bytes.
var zipEpoch = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

type docxPart struct {
	name    string
	content []byte
}

// Serialize writes doc as a DOCX package.
func Serialize(doc Document) ([]byte, error) {
	body, err := documentXML(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document.xml: %w", err)
	}

	parts := []docxPart{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/document.xml", body},
		{"word/styles.xml", []byte(stylesXML())},
		{"word/numbering.xml", []byte(numberingXML())},
		{"docProps/core.xml", []byte(coreXML)},
		{"docProps/app.xml", []byte(appXML)},
	}

	var output bytes.Buffer
	writer := zip.NewWriter(&output)
	for _, part := range parts {
		if err := writeZipFile(writer, part.name, part.content); err != nil {
			_ = writer.Close()
			return nil, fmt.Errorf("write %s: %w", part.name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}

func writeZipFile(writer *zip.Writer, name string, content []byte) error {
	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: zipEpoch,
	}
	dst, err := writer.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = dst.Write(content)
	return err
}

// WordprocessingML elements. encoding/xml writes prefixed names verbatim, and
// child order follows the schema sequence.

type wDocument struct {
	XMLName xml.Name `xml:"w:document"`
	XmlnsW  string   `xml:"xmlns:w,attr"`
	XmlnsR  string   `xml:"xmlns:r,attr"`
	Body    wBody    `xml:"w:body"`
}

type wBody struct {
	Paragraphs []wParagraph `xml:"w:p"`
	Section    wSectPr      `xml:"w:sectPr"`
}

type wParagraph struct {
	Props wParaProps `xml:"w:pPr"`
	Runs  []wRun     `xml:"w:r"`
}

type wParaProps struct {
	NumPr   *wNumPr   `xml:"w:numPr"`
	Spacing *wSpacing `xml:"w:spacing"`
	Jc      *wVal     `xml:"w:jc"`
}

type wNumPr struct {
	Ilvl  wVal `xml:"w:ilvl"`
	NumID wVal `xml:"w:numId"`
}

type wSpacing struct {
	Before string `xml:"w:before,attr"`
	After  string `xml:"w:after,attr"`
}

type wRun struct {
	Props wRunProps `xml:"w:rPr"`
	Text  wText     `xml:"w:t"`
}

type wRunProps struct {
	Bold      *struct{} `xml:"w:b"`
	Size      *wVal     `xml:"w:sz"`
	SizeCS    *wVal     `xml:"w:szCs"`
	Underline *wVal     `xml:"w:u"`
}

type wText struct {
	Space string `xml:"xml:space,attr"`
	Value string `xml:",chardata"`
}

type wVal struct {
	Val string `xml:"w:val,attr"`
}

type wSectPr struct {
	PageSize   wPageSize   `xml:"w:pgSz"`
	PageMargin wPageMargin `xml:"w:pgMar"`
}

type wPageSize struct {
	W string `xml:"w:w,attr"`
	H string `xml:"w:h,attr"`
}

type wPageMargin struct {
	Top    string `xml:"w:top,attr"`
	Right  string `xml:"w:right,attr"`
	Bottom string `xml:"w:bottom,attr"`
	Left   string `xml:"w:left,attr"`
	Header string `xml:"w:header,attr"`
	Footer string `xml:"w:footer,attr"`
	Gutter string `xml:"w:gutter,attr"`
}

func documentXML(doc Document) ([]byte, error) {
	margin := strconv.Itoa(PageMargin)
	root := wDocument{
		XmlnsW: nsMain,
		XmlnsR: nsRel,
		Body: wBody{
			Paragraphs: make([]wParagraph, 0, len(doc.Blocks)),
			Section: wSectPr{
				PageSize: wPageSize{W: strconv.Itoa(pageWidthTwips), H: strconv.Itoa(pageHeightTwips)},
				PageMargin: wPageMargin{
					Top: margin, Right: margin, Bottom: margin, Left: margin,
					Header: margin, Footer: margin, Gutter: "0",
				},
			},
		},
	}
	for _, block := range doc.Blocks {
		root.Body.Paragraphs = append(root.Body.Paragraphs, paragraphFor(block))
	}

	var buf bytes.Buffer
	buf.WriteString(xmlDeclaration)
	if err := xml.NewEncoder(&buf).Encode(root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func paragraphFor(block Block) wParagraph {
	p := wParagraph{
		Props: wParaProps{
			Spacing: &wSpacing{
				Before: strconv.Itoa(block.SpacingBefore),
				After:  strconv.Itoa(block.SpacingAfter),
			},
		},
		Runs: make([]wRun, 0, len(block.Runs)),
	}
	if block.Bullet {
		p.Props.NumPr = &wNumPr{Ilvl: wVal{"0"}, NumID: wVal{strconv.Itoa(BulletNumID)}}
	}
	if block.Align != "" {
		p.Props.Jc = &wVal{string(block.Align)}
	}

	for _, run := range block.Runs {
		r := wRun{Text: wText{Space: "preserve", Value: run.Text}}
		if run.Bold {
			r.Props.Bold = &struct{}{}
		}
		if run.Size > 0 {
			size := strconv.Itoa(run.Size)
			r.Props.Size = &wVal{size}
			r.Props.SizeCS = &wVal{size}
		}
		if run.Underline {
			r.Props.Underline = &wVal{"single"}
		}
		p.Runs = append(p.Runs, r)
	}
	return p
}

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const contentTypesXML = xmlDeclaration +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>` +
	`</Types>`

const packageRelsXML = xmlDeclaration +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>` +
	`</Relationships>`

const documentRelsXML = xmlDeclaration +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/>` +
	`</Relationships>`

// No created/modified dates, so the part is stable across runs.
const coreXML = xmlDeclaration +
	`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
	`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" ` +
	`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
	`<dc:title>Resume</dc:title>` +
	`</cp:coreProperties>`

const appXML = xmlDeclaration +
	`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">` +
	`<Application>atsclaude</Application>` +
	`</Properties>`

func stylesXML() string {
	return xmlDeclaration + fmt.Sprintf(
		`<w:styles xmlns:w="%s">`+
			`<w:docDefaults>`+
			`<w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:cs="Calibri"/><w:sz w:val="%d"/><w:szCs w:val="%d"/></w:rPr></w:rPrDefault>`+
			`<w:pPrDefault><w:pPr><w:spacing w:before="0" w:after="0"/></w:pPr></w:pPrDefault>`+
			`</w:docDefaults>`+
			`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>`+
			`</w:styles>`,
		nsMain, BodySize, BodySize,
	)
}

func numberingXML() string {
	return xmlDeclaration + fmt.Sprintf(
		`<w:numbering xmlns:w="%s">`+
			`<w:abstractNum w:abstractNumId="%d">`+
			`<w:multiLevelType w:val="singleLevel"/>`+
			`<w:name w:val="%s"/>`+
			`<w:lvl w:ilvl="0">`+
			`<w:start w:val="1"/><w:numFmt w:val="bullet"/><w:lvlText w:val="%s"/><w:lvlJc w:val="left"/>`+
			`<w:pPr><w:ind w:left="%d" w:hanging="%d"/></w:pPr>`+
			`</w:lvl>`+
			`</w:abstractNum>`+
			`<w:num w:numId="%d"><w:abstractNumId w:val="%d"/></w:num>`+
			`</w:numbering>`,
		nsMain, bulletAbstract, bulletListName, bulletGlyph, bulletIndent, bulletHanging, BulletNumID, bulletAbstract,
	)
}
