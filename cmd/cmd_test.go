package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"watty-downloader/model"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	RootCmd.SetOut(buf)
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetArgs(nil)
		flagConfig = ""
	})
	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return buf.String()
}

func TestVersionCommand(t *testing.T) {
	if out := execute(t, "version"); !strings.Contains(out, Version) {
		t.Errorf("version output = %q", out)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watty", "config.yaml")

	out := execute(t, "config", "init", path)
	if !strings.Contains(out, path) {
		t.Errorf("init output = %q", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	out = execute(t, "config", "show", "--config", path)
	for _, want := range []string{path, " -language: en", " -rolling_user_agent: true"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output lacks %q:\n%s", want, out)
		}
	}
}

func TestBuildRequiresUrl(t *testing.T) {
	RootCmd.SetArgs([]string{"build"})
	RootCmd.SetOut(&bytes.Buffer{})
	RootCmd.SetErr(&bytes.Buffer{})
	defer func() {
		RootCmd.SetArgs(nil)
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
	}()
	if err := RootCmd.Execute(); err == nil {
		t.Error("build without a url should fail")
	}
}

func TestPrintSummary(t *testing.T) {
	buf := &bytes.Buffer{}
	book := &model.Book{
		Title:    "Test",
		Author:   "Jane Doe",
		Chapters: []*model.ChapterDocument{{}, {}, {}},
		Images:   []*model.ImageAsset{{}},
	}
	printSummary(buf, book, "Test.epub", "")

	out := buf.String()
	for _, want := range []string{"Test", "Jane Doe", "2", "1", "Test.epub"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "text") {
		t.Errorf("summary mentions text export:\n%s", out)
	}
}
