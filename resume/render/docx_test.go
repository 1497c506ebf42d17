package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/Suhaibk137/atsclaude/resume/model"
)

func sampleRecord() model.ResumeRecord {
	return model.ResumeRecord{
		Name:     "ADA LOVELACE",
		Location: "London",
		Phone:    "+44 20 0000 0000",
		Email:    "ada@example.com",
		Summary:  []string{"Mathematician & writer.", "Analytical engine <programmer>."},
		Experience: []model.Experience{
			{Title: "Analyst", Dates: "1842 - 1843", Company: "Babbage", Responsibilities: []string{"Wrote notes"}},
		},
		Certifications: []string{"Royal Society"},
	}
}

func TestSerializeIsDeterministic(t *testing.T) {
	first, err := Serialize(Render(sampleRecord()))
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}
	second, err := Serialize(Render(sampleRecord()))
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("expected identical bytes across runs")
	}
}

func TestSerializeWritesRequiredParts(t *testing.T) {
	docxBytes, err := Serialize(Render(sampleRecord()))
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}

	reader, err := zip.NewReader(bytes.NewReader(docxBytes), int64(len(docxBytes)))
	if err != nil {
		t.Fatalf("zip reader failed: %v", err)
	}

	required := map[string]bool{
		"[Content_Types].xml":          false,
		"_rels/.rels":                  false,
		"word/_rels/document.xml.rels": false,
		"word/document.xml":            false,
		"word/styles.xml":              false,
		"word/numbering.xml":           false,
		"docProps/core.xml":            false,
		"docProps/app.xml":             false,
	}
	for _, file := range reader.File {
		if _, ok := required[file.Name]; ok {
			required[file.Name] = true
		}
		if !file.Modified.Equal(zipEpoch) {
			t.Fatalf("%s has modification time %v", file.Name, file.Modified)
		}
		content := readPart(t, docxBytes, file.Name)
		if err := xml.Unmarshal([]byte(content), new(struct{ XMLName xml.Name })); err != nil {
			t.Fatalf("%s is not well-formed: %v", file.Name, err)
		}
	}
	for name, found := range required {
		if !found {
			t.Fatalf("expected docx to contain %s", name)
		}
	}
}

func TestSerializeDocumentXML(t *testing.T) {
	docxBytes, err := Serialize(Render(sampleRecord()))
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}
	documentXML := readPart(t, docxBytes, "word/document.xml")

	assertContains(t, documentXML, `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`)
	assertContains(t, documentXML, `<w:t xml:space="preserve">ADA LOVELACE</w:t>`)
	assertContains(t, documentXML, `Analytical engine &lt;programmer&gt;.`)
	assertContains(t, documentXML, `Mathematician &amp; writer.`)
	assertContains(t, documentXML, `<w:jc w:val="center">`)
	assertContains(t, documentXML, `<w:jc w:val="both">`)
	assertContains(t, documentXML, `<w:u w:val="single">`)
	assertContains(t, documentXML, `<w:numId w:val="1">`)
	assertContains(t, documentXML, `<w:pgMar w:top="720" w:right="720" w:bottom="720" w:left="720"`)
	assertContains(t, documentXML, `<w:t xml:space="preserve">`+HeadingEducation+`</w:t>`)
	assertHeadingStyled(t, documentXML, HeadingExperience)
	assertHeadingStyled(t, documentXML, HeadingCertifications)
	assertNotContains(t, documentXML, HeadingAchievements)

	var decoded struct {
		Body struct {
			Paragraphs []struct {
				NumPr *struct{} `xml:"pPr>numPr"`
			} `xml:"p"`
		} `xml:"body"`
	}
	if err := xml.Unmarshal([]byte(documentXML), &decoded); err != nil {
		t.Fatalf("document.xml parse failed: %v", err)
	}
	doc := Render(sampleRecord())
	if len(decoded.Body.Paragraphs) != len(doc.Blocks) {
		t.Fatalf("expected %d paragraphs, got %d", len(doc.Blocks), len(decoded.Body.Paragraphs))
	}
	for i, p := range decoded.Body.Paragraphs {
		if (p.NumPr != nil) != doc.Blocks[i].Bullet {
			t.Fatalf("paragraph %d bullet mismatch", i)
		}
	}
}

func TestSerializeNumberingDefinition(t *testing.T) {
	docxBytes, err := Serialize(Document{})
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}
	numbering := readPart(t, docxBytes, "word/numbering.xml")

	assertContains(t, numbering, `<w:abstractNum w:abstractNumId="0">`)
	assertContains(t, numbering, `<w:name w:val="resume-bullets"/>`)
	assertContains(t, numbering, `<w:lvlText w:val="•"/>`)
	assertContains(t, numbering, `<w:ind w:left="720" w:hanging="360"/>`)
	assertContains(t, numbering, `<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>`)

	core := readPart(t, docxBytes, "docProps/core.xml")
	assertNotContains(t, core, "dcterms:created")
	assertNotContains(t, core, "dcterms:modified")
}

func readPart(t *testing.T, docxBytes []byte, name string) string {
	t.Helper()
	reader, err := zip.NewReader(bytes.NewReader(docxBytes), int64(len(docxBytes)))
	if err != nil {
		t.Fatalf("zip reader failed: %v", err)
	}
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(content)
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected to contain %q", needle)
	}
}

func assertNotContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		t.Fatalf("expected to not contain %q", needle)
	}
}

// assertHeadingStyled checks the run properties preceding a heading's text.
func assertHeadingStyled(t *testing.T, xmlText, heading string) {
	t.Helper()
	tag := `<w:t xml:space="preserve">` + heading + "</w:t>"
	idx := strings.Index(xmlText, tag)
	if idx == -1 {
		t.Fatalf("expected heading %q", heading)
	}
	windowStart := idx - 300
	if windowStart < 0 {
		windowStart = 0
	}
	window := xmlText[windowStart:idx]

	style := StyleMap["sectionHeading"]
	if style.Bold && !strings.Contains(window, "<w:b>") {
		t.Fatalf("expected %q heading to be bold", heading)
	}
	if !strings.Contains(window, `<w:sz w:val="24">`) {
		t.Fatalf("expected %q heading size %d", heading, style.Size)
	}
	if !strings.Contains(window, `<w:spacing w:before="120" w:after="100">`) {
		t.Fatalf("expected %q heading spacing", heading)
	}
}
