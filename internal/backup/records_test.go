package backup

import (
	"encoding/json"
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/backup-toolkit/internal/models"
)

func sampleNews() []models.Record {
	return []models.Record{
		{"id": json.Number("3"), "title": "Ra mắt sản phẩm", "desc": "d1", "content": "c1", "thumbnail": "a.png", "published": false},
		{"id": json.Number("9"), "title": "Khuyến mãi", "desc": "d2", "content": "c2", "thumbnail": "b.png", "published": true},
	}
}

func sampleProducts() []models.Record {
	return []models.Record{
		{"id": json.Number("5"), "name": "Áo thun", "price": json.Number("199000"), "desc": "cotton"},
		{"id": json.Number("8"), "price": json.Number("10")},
	}
}

func TestNewsLines(t *testing.T) {
	got := slices.Collect(NewsLines(sampleNews()))
	want := []string{"3: Ra mắt sản phẩm", "9: Khuyến mãi"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NewsLines = %v, want %v", got, want)
	}
}

func TestProductLines_DefaultName(t *testing.T) {
	seq := ProductLines(sampleProducts())

	want := []string{"5: Áo thun", "8: No name"}
	// the sequence is restartable
	for i := 0; i < 2; i++ {
		if got := slices.Collect(seq); !reflect.DeepEqual(got, want) {
			t.Errorf("pass %d: ProductLines = %v, want %v", i, got, want)
		}
	}
}

func TestProductLines_StopsEarly(t *testing.T) {
	count := 0
	for range ProductLines(sampleProducts()) {
		count++
		break
	}
	if count != 1 {
		t.Errorf("Expected iteration to stop after one line, got %d", count)
	}
}

func TestFindByID(t *testing.T) {
	news := sampleNews()

	found, err := FindByID(news, 9)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found["title"] != "Khuyến mãi" {
		t.Errorf("Found wrong record: %v", found)
	}

	// a match returns the record itself, not a copy
	found["title"] = "changed"
	if news[1]["title"] != "changed" {
		t.Error("Expected FindByID to return the stored record")
	}
}

func TestFindByID_NotFound(t *testing.T) {
	for name, list := range map[string][]models.Record{"news": sampleNews(), "products": sampleProducts()} {
		t.Run(name, func(t *testing.T) {
			before := cloneAll(list)

			_, err := FindByID(list, 42)
			if !errors.Is(err, ErrRecordNotFound) {
				t.Errorf("Expected ErrRecordNotFound, got %v", err)
			}
			if !reflect.DeepEqual(before, list) {
				t.Error("FindByID must not mutate records")
			}
		})
	}
}

func TestSetNewsField(t *testing.T) {
	tests := []struct {
		name  string
		field string
		input string
		want  any
	}{
		{name: "string field", field: "title", input: "Tiêu đề mới", want: "Tiêu đề mới"},
		{name: "published true", field: "published", input: "true", want: true},
		{name: "published YES", field: "published", input: "YES", want: true},
		{name: "published 1", field: "published", input: "1", want: true},
		{name: "published other", field: "published", input: "on", want: false},
		{name: "published empty", field: "published", input: "", want: false},
		{name: "numeric field stored as typed", field: "id", input: "12", want: "12"},
		{name: "numeric field with text", field: "id", input: "abc", want: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := sampleNews()[0]
			before := rec.Clone()

			if err := SetNewsField(rec, tt.field, tt.input); err != nil {
				t.Fatalf("SetNewsField failed: %v", err)
			}
			if !reflect.DeepEqual(rec[tt.field], tt.want) {
				t.Errorf("field %s = %#v, want %#v", tt.field, rec[tt.field], tt.want)
			}

			// every other field is untouched
			for k, v := range before {
				if k == tt.field {
					continue
				}
				if !reflect.DeepEqual(rec[k], v) {
					t.Errorf("field %s changed from %#v to %#v", k, v, rec[k])
				}
			}
			if len(rec) != len(before) {
				t.Errorf("Expected %d fields, got %d", len(before), len(rec))
			}
		})
	}
}

func TestSetField_StoresInputString(t *testing.T) {
	tests := []struct {
		name  string
		field string
		input string
	}{
		{name: "numeric price", field: "price", input: "199000"},
		{name: "bool field", field: "featured", input: "abc"},
		{name: "bool field truthy text", field: "featured", input: "yes"},
		{name: "published on a product", field: "published", input: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := models.Record{"id": json.Number("1"), "price": json.Number("10"), "featured": true, "published": false}

			if err := SetField(rec, tt.field, tt.input); err != nil {
				t.Fatalf("SetField failed: %v", err)
			}
			if rec[tt.field] != tt.input {
				t.Errorf("field %s = %#v, want %q", tt.field, rec[tt.field], tt.input)
			}
		})
	}
}

func TestSetNewsField_InvalidField(t *testing.T) {
	rec := models.Record{"id": json.Number("1"), "title": "t"}
	if err := SetNewsField(rec, "published", "true"); !errors.Is(err, ErrInvalidField) {
		t.Errorf("Expected ErrInvalidField, got %v", err)
	}
	if _, ok := rec["published"]; ok {
		t.Error("A missing published field must not be added")
	}
}

func TestSetField_InvalidField(t *testing.T) {
	rec := sampleProducts()[1]
	before := rec.Clone()

	err := SetField(rec, "name", "Quần")
	if !errors.Is(err, ErrInvalidField) {
		t.Errorf("Expected ErrInvalidField, got %v", err)
	}
	if !reflect.DeepEqual(before, rec) {
		t.Errorf("Record mutated: %v", rec)
	}
}

func TestRenumber(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{name: "empty", size: 0},
		{name: "single", size: 1},
		{name: "many", size: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := make([]models.Record, tt.size)
			for i := range list {
				// scrambled ids with duplicates and gaps
				list[i] = models.Record{"id": json.Number("7"), "title": i}
				if i%3 == 0 {
					list[i]["id"] = json.Number("100")
				}
			}

			Renumber(list)

			for i, r := range list {
				id, ok := r.ID()
				if !ok || id != i+1 {
					t.Errorf("position %d: id = %v, want %d", i, r["id"], i+1)
				}
				if r["title"] != i {
					t.Errorf("position %d: order changed", i)
				}
			}
		})
	}
}

func TestRenumberPermissions(t *testing.T) {
	list := []models.Record{
		{"id": json.Number("4"), "name": "Quản Trị Viên", "slug": "old"},
		{"id": json.Number("4"), "name": "Lấy danh sách user", "slug": "", "method": "GET"},
		{"id": json.Number("10"), "name": "Xoá category"},
	}

	RenumberPermissions(list)

	want := []struct {
		id   int
		slug string
	}{
		{1, "quan-tri-vien"},
		{2, "lay-danh-sach-user"},
		{3, "xoa-category"},
	}
	for i, w := range want {
		id, _ := list[i].ID()
		if id != w.id {
			t.Errorf("permission %d: id = %d, want %d", i, id, w.id)
		}
		if list[i]["slug"] != w.slug {
			t.Errorf("permission %d: slug = %q, want %q", i, list[i]["slug"], w.slug)
		}
	}
	if list[1]["method"] != "GET" {
		t.Error("Expected unrelated fields to be kept")
	}
}

func TestTruthy(t *testing.T) {
	for _, in := range []string{"true", "TRUE", "True", "1", "yes", "Yes"} {
		if !Truthy(in) {
			t.Errorf("Truthy(%q) = false, want true", in)
		}
	}
	for _, in := range []string{"false", "0", "no", "y", " true", ""} {
		if Truthy(in) {
			t.Errorf("Truthy(%q) = true, want false", in)
		}
	}
}

func cloneAll(list []models.Record) []models.Record {
	out := make([]models.Record, len(list))
	for i, r := range list {
		out[i] = r.Clone()
	}
	return out
}

func TestFindByID_IntegralDecimalID(t *testing.T) {
	list := []models.Record{{"id": json.Number("1.0"), "title": "t"}}

	got, err := FindByID(list, 1)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if got["title"] != "t" {
		t.Errorf("Unexpected record %v", got)
	}
}
