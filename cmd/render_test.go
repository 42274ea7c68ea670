package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	cfgpkg "github.com/KaramelBytes/geotally/internal/config"
	"github.com/KaramelBytes/geotally/internal/report"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestRunRenderEndToEnd(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeCSV(t, dir, "contacts.csv", strings.Join([]string{
		"nick,remark,sex,province",
		"a,,1,广东",
		"b,,2,山东",
		"c,,1,广东",
	}, "\n"))

	c := cfgpkg.Defaults()
	c.Output = filepath.Join(dir, "map.html")
	c.WriteReport = true
	runRender(csvPath, c)

	b, err := os.ReadFile(c.Output)
	if err != nil {
		t.Fatalf("map not written: %v", err)
	}
	if !strings.Contains(string(b), "广东") {
		t.Fatalf("map missing label data")
	}

	rep, err := report.Load(c.Output + ".report.yaml")
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if rep.Counted != 3 || rep.Distinct != 2 || rep.ScaleBound != 2 {
		t.Fatalf("report = %+v", rep)
	}
	if rep.Partial {
		t.Fatalf("clean run marked partial")
	}
}

func TestRunRenderMissingFileSkipsRenderer(t *testing.T) {
	dir := t.TempDir()
	c := cfgpkg.Defaults()
	c.Output = filepath.Join(dir, "map.html")
	runRender(filepath.Join(dir, "missing.csv"), c)
	if _, err := os.Stat(c.Output); !os.IsNotExist(err) {
		t.Fatalf("renderer must not run when the input is missing")
	}
}

func TestRunRenderNoDataSkipsRenderer(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeCSV(t, dir, "header.csv", "nick,remark,sex,province\n")
	c := cfgpkg.Defaults()
	c.Output = filepath.Join(dir, "map.html")
	runRender(csvPath, c)
	if _, err := os.Stat(c.Output); !os.IsNotExist(err) {
		t.Fatalf("renderer must not run for an empty label sequence")
	}
}

func TestRunRenderPartialData(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeCSV(t, dir, "broken.csv", strings.Join([]string{
		"province,name",
		"广东,a",
		"山东,b",
		"河南,\"unterminated",
	}, "\n"))

	c := cfgpkg.Defaults()
	c.FieldIndex = 0
	c.Output = filepath.Join(dir, "map.html")
	c.WriteReport = true
	runRender(csvPath, c)

	if _, err := os.Stat(c.Output); err != nil {
		t.Fatalf("partial data should still render: %v", err)
	}
	rep, err := report.Load(c.Output + ".report.yaml")
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !rep.Partial {
		t.Fatalf("partial run not marked in report")
	}
	if rep.Counted != 2 {
		t.Fatalf("counted = %d, want 2", rep.Counted)
	}
}

func TestColumnFlagBeatsEnvAndFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("field_index: 4\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("GEOTALLY_FIELD_INDEX", "2")

	c, err := cfgpkg.Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.FieldIndex != 2 {
		t.Fatalf("field_index = %d, want env override 2", c.FieldIndex)
	}

	if err := renderCmd.Flags().Set("column", "1"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if err := applyRenderFlags(renderCmd, c); err != nil {
		t.Fatalf("applyRenderFlags: %v", err)
	}
	if c.FieldIndex != 1 {
		t.Fatalf("field_index = %d, want flag override 1", c.FieldIndex)
	}
}

func TestColumnFlagRejectsNegative(t *testing.T) {
	if err := renderCmd.Flags().Set("column", "-1"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if err := applyRenderFlags(renderCmd, cfgpkg.Defaults()); err == nil {
		t.Fatalf("expected error for --column -1")
	}
}

func TestDelimRune(t *testing.T) {
	cases := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{"", 0, false},
		{",", 0, false},
		{";", ';', false},
		{"tab", '\t', false},
		{"\t", '\t', false},
		{"|", 0, true},
	}
	for _, tc := range cases {
		got, err := delimRune(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("delimRune(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("delimRune(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("delimRune(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
