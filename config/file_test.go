package config

import (
	"strings"
	"testing"
)

func TestReadFileParsesSectionsAndOptions(t *testing.T) {
	input := "" +
		"# a comment\n" +
		"[em]\n" +
		"nclass = 3\n" +
		"width=8\n" +
		"flip = true\n" +
		"\n" +
		"[io]\n" +
		"outdir = /tmp/out\n"

	cfg, err := ReadFile(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	n, err := cfg.Int("em", "nclass")
	if err != nil || n != 3 {
		t.Errorf("Int(em,nclass) = (%d,%v), want (3,nil)", n, err)
	}
	w, err := cfg.Int("em", "width")
	if err != nil || w != 8 {
		t.Errorf("Int(em,width) = (%d,%v), want (8,nil)", w, err)
	}
	b, err := cfg.Bool("em", "flip")
	if err != nil || !b {
		t.Errorf("Bool(em,flip) = (%v,%v), want (true,nil)", b, err)
	}
	s, err := cfg.String("io", "outdir")
	if err != nil || s != "/tmp/out" {
		t.Errorf("String(io,outdir) = (%q,%v), want (/tmp/out,nil)", s, err)
	}
}

func TestReadFileRejectsOptionOutsideSection(t *testing.T) {
	if _, err := ReadFile(strings.NewReader("nclass = 3\n")); err == nil {
		t.Error("option before any section: want error")
	}
}

func TestReadFileRejectsDuplicateSection(t *testing.T) {
	input := "[em]\nnclass = 1\n[em]\nnclass = 2\n"
	if _, err := ReadFile(strings.NewReader(input)); err == nil {
		t.Error("duplicate section: want error")
	}
}

func TestReadFileRejectsDuplicateOption(t *testing.T) {
	input := "[em]\nnclass = 1\nnclass = 2\n"
	if _, err := ReadFile(strings.NewReader(input)); err == nil {
		t.Error("duplicate option: want error")
	}
}

func TestReadFileRejectsMalformedOptionLine(t *testing.T) {
	input := "[em]\nnclass == 1\n"
	if _, err := ReadFile(strings.NewReader(input)); err == nil {
		t.Error("malformed option line (two '='): want error")
	}
}

func TestBoolRejectsUnrecognizedValue(t *testing.T) {
	cfg, err := ReadFile(strings.NewReader("[em]\nflip = maybe\n"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if _, err := cfg.Bool("em", "flip"); err == nil {
		t.Error("Bool with unrecognized value: want error")
	}
}

func TestLookupMissingSectionOrOption(t *testing.T) {
	cfg, err := ReadFile(strings.NewReader("[em]\nnclass = 1\n"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if _, err := cfg.String("nosuch", "x"); err == nil {
		t.Error("missing section: want error")
	}
	if _, err := cfg.String("em", "nosuch"); err == nil {
		t.Error("missing option: want error")
	}
}
