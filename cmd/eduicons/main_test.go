package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/codeGROOVE-dev/eduicons/pkg/appsettings"
)

func runTool(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	settings := appsettings.NewManagerAt(t.TempDir(), appName)
	code = run(append([]string{"-log-level", "error"}, args...), &out, &errOut, settings)
	return code, out.String(), errOut.String()
}

func TestList(t *testing.T) {
	code, out, errOut := runTool(t, "-list")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut)
	}

	for _, want := range []string{
		"NAME",
		"CheckPanel.CheckDetailsToolWindow",
		"icons/org/hyperskill/academy/eduCourseTask.svg",
		"Submission.TaskSolvedHighContrast",
		"rasterized",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	// Header plus one line per icon.
	if lines := strings.Count(out, "\n"); lines != 56 {
		t.Errorf("line count = %d, want 56", lines)
	}
}

func TestCheck_Embedded(t *testing.T) {
	code, out, errOut := runTool(t, "-check")
	if code != 0 {
		t.Fatalf("exit code = %d, stdout = %s, stderr = %s", code, out, errOut)
	}
	if !strings.Contains(out, "55 icons, 0 missing, 0 size mismatches") {
		t.Errorf("unexpected summary: %s", out)
	}
}

func TestCheck_EmptyAssetDir(t *testing.T) {
	code, out, _ := runTool(t, "-check", "-assets", t.TempDir())
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(out, "FAIL  TaskToolWindow.CourseToolWindow") {
		t.Errorf("rasterized failure not reported: %s", out)
	}
	if !strings.Contains(out, "MISS  Dot") {
		t.Errorf("placeholder not reported: %s", out)
	}
	if !strings.Contains(out, "55 icons, 55 missing") {
		t.Errorf("unexpected summary: %s", out)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		icon     string
		args     []string
		wantSize int
	}{
		{"standard", "CheckPanel.ResultCorrect", nil, 16},
		{"tab icon", "Platform.Tab.HyperskillAcademyTab", nil, 24},
		{"hidpi png", "Submission.TaskSolved", nil, 11},
		{"rasterized", "TaskToolWindow.CourseToolWindow", nil, 16},
		{"rasterized custom size", "TaskToolWindow.CourseToolWindow", []string{"-raster-size", "20"}, 20},
		{"scaled", "Dot", []string{"-size", "48"}, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outPath := filepath.Join(t.TempDir(), "icon.png")
			args := append([]string{"-render", tt.icon, "-out", outPath}, tt.args...)
			code, _, errOut := runTool(t, args...)
			if code != 0 {
				t.Fatalf("exit code = %d, stderr = %s", code, errOut)
			}

			f, err := os.Open(outPath)
			if err != nil {
				t.Fatalf("open output: %v", err)
			}
			defer f.Close() //nolint:errcheck // Read-only

			img, err := png.Decode(f)
			if err != nil {
				t.Fatalf("invalid PNG: %v", err)
			}
			b := img.Bounds()
			if b.Dx() != tt.wantSize || b.Dy() != tt.wantSize {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantSize, tt.wantSize)
			}
		})
	}
}

func TestRun_Errors(t *testing.T) {
	notDir := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(notDir, []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no command", nil, 2},
		{"unknown flag", []string{"-nope"}, 2},
		{"negative size", []string{"-render", "Dot", "-size", "-1"}, 2},
		{"unknown icon", []string{"-render", "Nope.Nothing"}, 1},
		{"missing asset dir", []string{"-list", "-assets", "/does/not/exist"}, 1},
		{"asset dir is a file", []string{"-list", "-assets", notDir}, 1},
		{"rasterized missing in asset dir", []string{"-render", "TaskToolWindow.CourseToolWindow", "-assets", t.TempDir()}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code, _, _ := runTool(t, tt.args...); code != tt.want {
				t.Errorf("exit code = %d, want %d", code, tt.want)
			}
		})
	}
}

func TestRun_BadLogLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	settings := appsettings.NewManagerAt(t.TempDir(), appName)
	if code := run([]string{"-log-level", "loud", "-list"}, &out, &errOut, settings); code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}

func TestVersion(t *testing.T) {
	code, out, _ := runTool(t, "-version")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.HasPrefix(out, "eduicons dev") {
		t.Errorf("output = %q", out)
	}
}

func TestRun_SettingsRasterSize(t *testing.T) {
	dir := t.TempDir()
	settings := appsettings.NewManagerAt(dir, appName)
	if err := settings.Save(appsettings.Settings{LogLevel: "error", RasterSize: 12}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	outPath := filepath.Join(t.TempDir(), "tw.png")
	var out, errOut bytes.Buffer
	code := run([]string{"-render", "CheckPanel.CheckDetailsToolWindow", "-out", outPath}, &out, &errOut, settings)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut.String())
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("invalid PNG: %v", err)
	}
	if cfg.Width != 12 {
		t.Errorf("width = %d, want 12", cfg.Width)
	}
}
