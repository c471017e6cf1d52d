package internal

import (
	"testing"
	"time"

	"github.com/spf13/afero"
)

// stubReader serves canned metadata per path, standing in for the EXIF
// decoders so tests do not need real image files.
type stubReader struct {
	tags map[string]map[string]string
}

func (r *stubReader) ReadTags(path string) map[string]string {
	if tags, ok := r.tags[path]; ok {
		return tags
	}
	return map[string]string{}
}

func testConfig(dest string) *Config {
	return &Config{
		Destination: dest,
		ImageExt:    []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".webp"},
		SuffixLimit: 100,
	}
}

func TestOrganize_DuplicateScenario(t *testing.T) {
	fs := afero.NewMemMapFs()

	// a.jpg and b.jpg are byte-identical but carry different capture dates
	content := []byte("identical image content")
	afero.WriteFile(fs, "/src/a.jpg", content, 0644)
	afero.WriteFile(fs, "/src/b.jpg", content, 0644)

	reader := &stubReader{tags: map[string]map[string]string{
		"/src/a.jpg": {tagDateTimeOriginal: "2022:01:15 10:00:00"},
		"/src/b.jpg": {tagDateTimeOriginal: "2022:02:20 10:00:00"},
	}}

	org := NewOrganizer(fs, testConfig("/out"), reader)
	if err := org.Run([]string{"/src"}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if ok, _ := afero.Exists(fs, "/out/2022/01/a.jpg"); !ok {
		t.Error("Expected /out/2022/01/a.jpg to exist")
	}
	if ok, _ := afero.Exists(fs, "/out/duplicates/src/2022_02_b.jpg"); !ok {
		t.Error("Expected duplicate at /out/duplicates/src/2022_02_b.jpg")
	}

	got, _ := afero.ReadFile(fs, "/out/duplicates/src/2022_02_b.jpg")
	if string(got) != string(content) {
		t.Error("Duplicate copy does not contain the original content")
	}

	if org.Stats.Processed != 1 {
		t.Errorf("Expected processed = 1, got %d", org.Stats.Processed)
	}
	if org.Stats.Duplicates != 1 {
		t.Errorf("Expected duplicates = 1, got %d", org.Stats.Duplicates)
	}
}

func TestOrganize_SameNameDifferentContent(t *testing.T) {
	fs := afero.NewMemMapFs()

	afero.WriteFile(fs, "/one/x.jpg", []byte("first image"), 0644)
	afero.WriteFile(fs, "/two/x.jpg", []byte("second image"), 0644)

	reader := &stubReader{tags: map[string]map[string]string{
		"/one/x.jpg": {tagDateTimeOriginal: "2022:03:01 09:00:00"},
		"/two/x.jpg": {tagDateTimeOriginal: "2022:03:05 09:00:00"},
	}}

	org := NewOrganizer(fs, testConfig("/out"), reader)
	if err := org.Run([]string{"/one", "/two"}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if ok, _ := afero.Exists(fs, "/out/2022/03/x.jpg"); !ok {
		t.Error("Expected /out/2022/03/x.jpg")
	}
	if ok, _ := afero.Exists(fs, "/out/2022/03/x_1.jpg"); !ok {
		t.Error("Expected collision-suffixed /out/2022/03/x_1.jpg")
	}
	if org.Stats.Processed != 2 {
		t.Errorf("Expected processed = 2, got %d", org.Stats.Processed)
	}
}

func TestOrganize_ExactRerunIsIdempotent(t *testing.T) {
	fs := afero.NewMemMapFs()

	afero.WriteFile(fs, "/src/a.jpg", []byte("image a"), 0644)
	afero.WriteFile(fs, "/src/b.jpg", []byte("image b"), 0644)

	reader := &stubReader{tags: map[string]map[string]string{
		"/src/a.jpg": {tagDateTimeOriginal: "2022:01:15 10:00:00"},
		"/src/b.jpg": {tagDateTimeOriginal: "2022:06:01 10:00:00"},
	}}

	first := NewOrganizer(fs, testConfig("/out"), reader)
	if err := first.Run([]string{"/src"}); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	if first.Stats.Processed != 2 {
		t.Fatalf("Expected 2 processed on first run, got %d", first.Stats.Processed)
	}

	second := NewOrganizer(fs, testConfig("/out"), reader)
	if err := second.Run([]string{"/src"}); err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if second.Stats.Processed != 0 {
		t.Errorf("Second run copied %d files, expected 0", second.Stats.Processed)
	}
	if second.Stats.AlreadyPresent != 2 {
		t.Errorf("Expected already present = 2, got %d", second.Stats.AlreadyPresent)
	}
	if ok, _ := afero.Exists(fs, "/out/2022/01/a_1.jpg"); ok {
		t.Error("Exact rerun produced a second copy a_1.jpg")
	}
}

func TestOrganize_RerunIndexCatchesRenamedContent(t *testing.T) {
	fs := afero.NewMemMapFs()

	afero.WriteFile(fs, "/src/a.jpg", []byte("image a"), 0644)
	reader := &stubReader{tags: map[string]map[string]string{
		"/src/a.jpg": {tagDateTimeOriginal: "2022:01:15 10:00:00"},
	}}

	first := NewOrganizer(fs, testConfig("/out"), reader)
	if err := first.Run([]string{"/src"}); err != nil {
		t.Fatalf("First run failed: %v", err)
	}

	// Same content arrives under a new name; without the destination index it
	// would be copied again to a different month folder
	afero.WriteFile(fs, "/src2/renamed.jpg", []byte("image a"), 0644)
	reader.tags["/src2/renamed.jpg"] = map[string]string{tagDateTimeOriginal: "2022:09:09 10:00:00"}

	conf := testConfig("/out")
	conf.Rerun = true
	second := NewOrganizer(fs, conf, reader)
	if err := second.Run([]string{"/src2"}); err != nil {
		t.Fatalf("Rerun failed: %v", err)
	}

	if second.Stats.AlreadyPresent != 1 {
		t.Errorf("Expected already present = 1, got %d", second.Stats.AlreadyPresent)
	}
	if second.Stats.Processed != 0 {
		t.Errorf("Rerun copied %d files, expected 0", second.Stats.Processed)
	}
	if ok, _ := afero.Exists(fs, "/out/2022/09/renamed.jpg"); ok {
		t.Error("Rerun placed content that already exists in the destination")
	}
}

func TestOrganize_TagPrefixRecordedInTracker(t *testing.T) {
	fs := afero.NewMemMapFs()

	content := []byte("tagged content")
	afero.WriteFile(fs, "/src/a.jpg", content, 0644)
	afero.WriteFile(fs, "/src/copy.jpg", content, 0644)

	reader := &stubReader{tags: map[string]map[string]string{
		"/src/a.jpg":    {tagDateTimeOriginal: "2022:01:15 10:00:00"},
		"/src/copy.jpg": {tagDateTimeOriginal: "2022:01:16 10:00:00"},
	}}

	conf := testConfig("/out")
	conf.Tag = "trip"
	org := NewOrganizer(fs, conf, reader)
	if err := org.Run([]string{"/src"}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if ok, _ := afero.Exists(fs, "/out/2022/01/trip_a.jpg"); !ok {
		t.Error("Expected tag-prefixed /out/2022/01/trip_a.jpg")
	}
	if org.Stats.Duplicates != 1 {
		t.Errorf("Expected 1 duplicate, got %d", org.Stats.Duplicates)
	}
}

func TestOrganize_PerSourceTrackerScope(t *testing.T) {
	fs := afero.NewMemMapFs()

	// Identical content in two separate source roots
	content := []byte("shared content")
	afero.WriteFile(fs, "/one/a.jpg", content, 0644)
	afero.WriteFile(fs, "/two/b.jpg", content, 0644)

	reader := &stubReader{tags: map[string]map[string]string{
		"/one/a.jpg": {tagDateTimeOriginal: "2022:01:15 10:00:00"},
		"/two/b.jpg": {tagDateTimeOriginal: "2022:02:20 10:00:00"},
	}}

	// Default scope: a fresh tracker per source folder, so b.jpg is not a
	// duplicate of a.jpg
	org := NewOrganizer(fs, testConfig("/out"), reader)
	if err := org.Run([]string{"/one", "/two"}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if org.Stats.Processed != 2 || org.Stats.Duplicates != 0 {
		t.Errorf("Per-source scope: expected 2 processed / 0 duplicates, got %d / %d",
			org.Stats.Processed, org.Stats.Duplicates)
	}

	// Shared scope: the same pair is one original plus one duplicate
	fs2 := afero.NewMemMapFs()
	afero.WriteFile(fs2, "/one/a.jpg", content, 0644)
	afero.WriteFile(fs2, "/two/b.jpg", content, 0644)

	conf := testConfig("/out")
	conf.SharedTracker = true
	shared := NewOrganizer(fs2, conf, reader)
	if err := shared.Run([]string{"/one", "/two"}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if shared.Stats.Processed != 1 || shared.Stats.Duplicates != 1 {
		t.Errorf("Shared scope: expected 1 processed / 1 duplicate, got %d / %d",
			shared.Stats.Processed, shared.Stats.Duplicates)
	}
}

func TestOrganize_MissingSourceContinues(t *testing.T) {
	fs := afero.NewMemMapFs()

	afero.WriteFile(fs, "/good/a.jpg", []byte("fine"), 0644)
	reader := &stubReader{tags: map[string]map[string]string{
		"/good/a.jpg": {tagDateTimeOriginal: "2022:01:15 10:00:00"},
	}}

	org := NewOrganizer(fs, testConfig("/out"), reader)
	if err := org.Run([]string{"/missing", "/good"}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if org.Stats.Processed != 1 {
		t.Errorf("Expected the good folder to be processed, got %d", org.Stats.Processed)
	}
}

func TestOrganize_SkipsNonImages(t *testing.T) {
	fs := afero.NewMemMapFs()

	afero.WriteFile(fs, "/src/a.jpg", []byte("image"), 0644)
	afero.WriteFile(fs, "/src/notes.txt", []byte("text"), 0644)
	afero.WriteFile(fs, "/src/.hidden.jpg", []byte("hidden"), 0644)

	reader := &stubReader{tags: map[string]map[string]string{
		"/src/a.jpg": {tagDateTimeOriginal: "2022:01:15 10:00:00"},
	}}

	org := NewOrganizer(fs, testConfig("/out"), reader)
	if err := org.Run([]string{"/src"}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if org.Stats.Processed != 1 {
		t.Errorf("Expected 1 processed, got %d", org.Stats.Processed)
	}
	if org.Stats.Skipped != 2 {
		t.Errorf("Expected 2 skipped, got %d", org.Stats.Skipped)
	}
}

func TestOrganize_ModTimeFallbackPlacement(t *testing.T) {
	fs := afero.NewMemMapFs()

	afero.WriteFile(fs, "/src/nometa.jpg", []byte("no exif here"), 0644)
	modTime := time.Date(2021, 12, 24, 18, 0, 0, 0, time.UTC)
	fs.Chtimes("/src/nometa.jpg", modTime, modTime)

	org := NewOrganizer(fs, testConfig("/out"), &stubReader{})
	if err := org.Run([]string{"/src"}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if ok, _ := afero.Exists(fs, "/out/2021/12/nometa.jpg"); !ok {
		t.Error("Expected placement by modification time at /out/2021/12/nometa.jpg")
	}
}

func TestOrganize_SidecarSweep(t *testing.T) {
	fs := afero.NewMemMapFs()

	afero.WriteFile(fs, "/src/a.jpg", []byte("image"), 0644)
	// A stray resource-fork file already sitting in the destination tree
	afero.WriteFile(fs, "/out/2020/01/._shadow.jpg", []byte("junk"), 0644)

	reader := &stubReader{tags: map[string]map[string]string{
		"/src/a.jpg": {tagDateTimeOriginal: "2022:01:15 10:00:00"},
	}}

	org := NewOrganizer(fs, testConfig("/out"), reader)
	if err := org.Run([]string{"/src"}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if ok, _ := afero.Exists(fs, "/out/2020/01/._shadow.jpg"); ok {
		t.Error("Sidecar file survived the cleanup sweep")
	}
	if org.Stats.SidecarsRemoved != 1 {
		t.Errorf("Expected 1 sidecar removed, got %d", org.Stats.SidecarsRemoved)
	}
}
