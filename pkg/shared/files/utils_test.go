package files

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetermineFileFullPath(t *testing.T) {
	type testCase struct {
		name         string
		inputPath    string
		nameTemplate string
		expectFile   string
		expectFolder string
		setup        func(t *testing.T) (inputPath, expectFile, expectFolder string)
	}

	tmpDir := t.TempDir()

	tests := []testCase{
		{
			name:         "Directory path with name template",
			inputPath:    tmpDir,
			nameTemplate: "report.json",
			expectFile:   filepath.Join(tmpDir, "report.json"),
			expectFolder: tmpDir,
		},
		{
			name:         "File path with extension",
			inputPath:    filepath.Join(tmpDir, "report.json"),
			nameTemplate: "ignored.txt",
			expectFile:   filepath.Join(tmpDir, "report.json"),
			expectFolder: tmpDir,
			setup: func(t *testing.T) (string, string, string) {
				f := filepath.Join(tmpDir, "report.json")
				_ = os.WriteFile(f, []byte("test"), 0644)
				return f, f, tmpDir
			},
		},
		{
			name:         "Path with no extension, treat as folder",
			inputPath:    filepath.Join(tmpDir, "reports"),
			nameTemplate: "simulation.json",
			expectFile:   filepath.Join(tmpDir, "reports", "simulation.json"),
			expectFolder: filepath.Join(tmpDir, "reports"),
		},
		{
			name:         "Non-existent file with extension",
			inputPath:    filepath.Join(tmpDir, "missing.yaml"),
			nameTemplate: "ignored.txt",
			expectFile:   filepath.Join(tmpDir, "missing.yaml"),
			expectFolder: tmpDir,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inputPath := tc.inputPath
			if tc.setup != nil {
				inputPath, tc.expectFile, tc.expectFolder = tc.setup(t)
			}

			gotFile, gotFolder, err := DetermineFileFullPath(inputPath, tc.nameTemplate)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotFile != tc.expectFile {
				t.Errorf("expected file %q, got %q", tc.expectFile, gotFile)
			}
			if gotFolder != tc.expectFolder {
				t.Errorf("expected folder %q, got %q", tc.expectFolder, gotFolder)
			}
		})
	}
}

func TestHashFileStableForIdenticalContent(t *testing.T) {
	tmpDir := t.TempDir()
	a := filepath.Join(tmpDir, "a.yml")
	b := filepath.Join(tmpDir, "b.yml")
	if err := os.WriteFile(a, []byte("strict: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("strict: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	hashA, err := HashFile(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hashB, err := HashFile(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hashA != hashB {
		t.Errorf("identical content produced different hashes: %q vs %q", hashA, hashB)
	}

	if err := os.WriteFile(b, []byte("strict: false\n"), 0644); err != nil {
		t.Fatal(err)
	}
	hashB2, err := HashFile(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hashA == hashB2 {
		t.Error("different content produced the same hash")
	}
}
