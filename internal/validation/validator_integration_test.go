package validation

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/backup-toolkit/internal/backup"
	"github.com/backup-toolkit/internal/models"
)

func testdataPath(t *testing.T, filename string) string {
	t.Helper()
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(currentFile)))
	path := filepath.Join(projectRoot, "testdata", filename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skipf("testdata file not found: %s", path)
	}
	return path
}

func loadSample(t *testing.T) *models.Document {
	t.Helper()
	data, err := os.ReadFile(testdataPath(t, "backup_sample.json"))
	if err != nil {
		t.Fatal(err)
	}
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("sample document does not parse: %v", err)
	}
	return &doc
}

func TestValidatePermissions_SampleBeforeRenumber(t *testing.T) {
	doc := loadSample(t)
	validator := NewValidator()

	failed := 0
	for _, r := range doc.Permissions {
		errors := validator.ValidatePermission(r)
		if len(errors) > 0 {
			failed++
			continue
		}
		id, _ := r.ID()
		validator.AddPermission(id, r["slug"].(string))
	}

	// empty slug, non-kebab slug with a duplicate id
	if failed != 2 {
		t.Errorf("Expected 2 invalid permissions in the raw sample, got %d", failed)
	}
}

func TestValidateSample_AfterRenumber(t *testing.T) {
	doc := loadSample(t)

	backup.Renumber(doc.News)
	backup.Renumber(doc.Products)
	backup.RenumberPermissions(doc.Permissions)

	validator := NewValidator()

	for i, r := range doc.News {
		if errors := validator.ValidateNews(r); len(errors) > 0 {
			t.Errorf("news %d: %v", i+1, errors)
		}
		validator.AddNewsID(i + 1)
	}
	for i, r := range doc.Products {
		if errors := validator.ValidateProduct(r); len(errors) > 0 {
			t.Errorf("product %d: %v", i+1, errors)
		}
		validator.AddProductID(i + 1)
	}
	for i, r := range doc.Permissions {
		if errors := validator.ValidatePermission(r); len(errors) > 0 {
			t.Errorf("permission %d: %v", i+1, errors)
		}
		validator.AddPermission(i+1, r["slug"].(string))
	}
}
