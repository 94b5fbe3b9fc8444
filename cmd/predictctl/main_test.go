package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fininclusion/internal/artifact"
	"fininclusion/internal/testutil"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("ARTIFACT_SOURCE", "file")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func kenyaArgs(dir string) []string {
	return []string{
		"predict", "--dir", dir,
		"--country", "Kenya",
		"--year", "2017",
		"--location-type", "Urban",
		"--cellphone-access", "Yes",
		"--household-size", "3",
		"--age", "30",
		"--gender", "Female",
		"--relationship", "Head of Household",
		"--education", "Secondary education",
		"--job", "Self employed",
		"--marital-status", "Single/Never Married",
	}
}

func TestCheck(t *testing.T) {
	dir := testutil.WriteArtifacts(t)

	out, err := run(t, "check", "--dir", dir)
	if err != nil {
		t.Fatalf("check error: %v", err)
	}
	if !strings.Contains(out, artifact.DefaultModelName) {
		t.Errorf("output missing model artifact: %s", out)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "ok") {
		t.Errorf("output should end with ok: %s", out)
	}
}

func TestCheck_MissingArtifacts(t *testing.T) {
	_, err := run(t, "check", "--dir", t.TempDir())
	var loadErr *artifact.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("check error = %v, want LoadError", err)
	}
}

func TestPredict(t *testing.T) {
	out, err := run(t, kenyaArgs(testutil.WriteArtifacts(t))...)
	if err != nil {
		t.Fatalf("predict error: %v", err)
	}
	if !strings.Contains(out, "The individual has a bank account") {
		t.Errorf("output missing outcome: %s", out)
	}
	if !strings.Contains(out, "Confidence: 90.00%") {
		t.Errorf("output missing confidence: %s", out)
	}
}

func TestPredict_InvalidLabel(t *testing.T) {
	args := kenyaArgs(testutil.WriteArtifacts(t))
	for i, a := range args {
		if a == "Kenya" {
			args[i] = "Atlantis"
		}
	}

	_, err := run(t, args...)
	if err == nil || !strings.Contains(err.Error(), "invalid_input") {
		t.Errorf("predict error = %v, want invalid_input", err)
	}
}

func TestReadArtifactDir(t *testing.T) {
	dir := testutil.WriteArtifacts(t)

	files, err := readArtifactDir(dir)
	if err != nil {
		t.Fatalf("readArtifactDir() error: %v", err)
	}
	if len(files) != 9 {
		t.Errorf("got %d files, want 9", len(files))
	}

	if err := os.WriteFile(filepath.Join(dir, "country_encoder.json"), []byte(`{"feature":"country"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err = readArtifactDir(dir)
	var loadErr *artifact.LoadError
	if !errors.As(err, &loadErr) || loadErr.Artifact != "country_encoder.json" {
		t.Errorf("readArtifactDir() error = %v, want LoadError for country_encoder.json", err)
	}

	if _, err := readArtifactDir(t.TempDir()); err == nil {
		t.Error("expected error for empty directory")
	}
}
