package card

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testInfo() Info {
	return Info{
		Labels: []string{"ant", "bee"},
		Splits: []SplitStat{
			{Name: "train", NumBytes: 1000, NumExamples: 5},
			{Name: "validation", NumBytes: 0, NumExamples: 0},
			{Name: "test", NumBytes: 200, NumExamples: 1},
		},
	}
}

// --- Build tests ---

func TestBuild_Fields(t *testing.T) {
	block, err := Build(testInfo())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for _, want := range []string{
		"dataset_info:",
		"features:",
		"name: image",
		"class_label:",
		"'0': ant",
		"'1': bee",
		"name: train",
		"num_bytes: 1000",
		"num_examples: 5",
		"download_size: 1200",
		"dataset_size: 1200",
		"label_mapping.json",
	} {
		if !strings.Contains(block, want) {
			t.Errorf("block missing %q\n%s", want, block)
		}
	}
}

func TestBuild_OmitsEmptySplits(t *testing.T) {
	block, err := Build(testInfo())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if strings.Contains(block, "name: validation") {
		t.Errorf("empty validation split should be omitted:\n%s", block)
	}
}

func TestBuild_TruncatesLabels(t *testing.T) {
	labels := make([]string, 120)
	for i := range labels {
		labels[i] = fmt.Sprintf("label%03d", i)
	}
	block, err := Build(Info{Labels: labels, Splits: []SplitStat{{Name: "train", NumBytes: 1, NumExamples: 1}}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.Contains(block, "'49': label049") {
		t.Errorf("label 49 should be inlined:\n%s", block)
	}
	if strings.Contains(block, "label050") {
		t.Errorf("label 50 should be truncated:\n%s", block)
	}
	if !strings.Contains(block, "label_mapping.json") {
		t.Errorf("truncated list should point at label_mapping.json:\n%s", block)
	}
}

// --- Splice tests ---

func TestSplice_ReplacesBetweenMarkers(t *testing.T) {
	existing := "---\ndataset_info:\n  old: stuff\nconfigs:\n- config_name: default\n\n# My Dataset\nBody text.\n"
	out := Splice(existing, "dataset_info:\n  fresh: yes\n")

	if strings.Contains(out, "old: stuff") {
		t.Errorf("old block should be gone:\n%s", out)
	}
	if !strings.Contains(out, "fresh: yes") {
		t.Errorf("new block missing:\n%s", out)
	}
	if !strings.Contains(out, "# My Dataset\nBody text.") {
		t.Errorf("body after configs must survive:\n%s", out)
	}
	if !strings.Contains(out, "configs:\n- config_name: default") {
		t.Errorf("configs section must survive:\n%s", out)
	}
}

func TestSplice_AppendsWhenMarkersAbsent(t *testing.T) {
	out := Splice("", "dataset_info:\n  fresh: yes\n")
	if !strings.HasPrefix(out, "---\ndataset_info:") {
		t.Errorf("should start with front-matter marker:\n%s", out)
	}
	if !strings.Contains(out, "\nconfigs:") {
		t.Errorf("should end with configs marker:\n%s", out)
	}
}

// --- Update tests ---

func TestUpdate_CreatesMissingCard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	if err := Update(path, testInfo()); err != nil {
		t.Fatalf("Update: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read card: %v", err)
	}
	if !strings.Contains(string(data), "dataset_info:") {
		t.Errorf("card missing dataset_info:\n%s", data)
	}
}

func TestUpdate_IsIdempotentOnMarkers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	if err := Update(path, testInfo()); err != nil {
		t.Fatalf("first Update: %v", err)
	}
	if err := Update(path, testInfo()); err != nil {
		t.Fatalf("second Update: %v", err)
	}
	data, _ := os.ReadFile(path)
	if got := strings.Count(string(data), "dataset_info:"); got != 1 {
		t.Errorf("dataset_info appears %d times, want 1:\n%s", got, data)
	}
}
