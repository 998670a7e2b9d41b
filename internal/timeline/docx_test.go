// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package timeline

import (
	"archive/zip"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleDocumentXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>1954 - Verbiest, JBJS</w:t></w:r></w:p>
    <w:p><w:r><w:t>Lumbar spinal</w:t></w:r><w:r><w:tab/><w:t>stenosis described</w:t></w:r></w:p>
    <w:p><w:r><w:t xml:space="preserve">   </w:t></w:r></w:p>
    <w:p><w:r><w:t>Closing paragraph text</w:t></w:r></w:p>
  </w:body>
</w:document>`

// writeDocx builds a minimal .docx archive containing document.xml.
func writeDocx(t *testing.T, dir, name, documentXML string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDocxParagraphs(t *testing.T) {
	path := writeDocx(t, t.TempDir(), "sample.docx", sampleDocumentXML)

	got, err := DocxParagraphs(path)
	if err != nil {
		t.Fatalf("DocxParagraphs: %v", err)
	}
	want := []string{
		"1954 - Verbiest, JBJS",
		"Lumbar spinal stenosis described",
		"Closing paragraph text",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DocxParagraphs = %q, want %q", got, want)
	}
}

func TestDocxParagraphsMissingDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	if _, err := DocxParagraphs(path); err == nil || !strings.Contains(err.Error(), "missing") {
		t.Errorf("want missing-document error, got %v", err)
	}
}

func TestImportDir(t *testing.T) {
	dir := t.TempDir()
	writeDocx(t, dir, "Spine Timeline.docx", sampleDocumentXML)
	// Non-docx and temp files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "~$lock.docx"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	entries, err := ImportDir(dir, &out)
	if err != nil {
		t.Fatalf("ImportDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1: %+v", len(entries), entries)
	}
	e := entries[0]
	if e.Year != 1954 || e.Author != "Verbiest" || e.Subspecialty != "SPINE" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.Title != "Lumbar spinal stenosis described" {
		t.Errorf("Title = %q", e.Title)
	}
	if e.Description != "Closing paragraph text" {
		t.Errorf("Description = %q", e.Description)
	}
}
