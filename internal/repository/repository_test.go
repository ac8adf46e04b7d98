package repository

import (
	"encoding/json"
	"testing"
)

func TestEncodeAttributes(t *testing.T) {
	tests := []struct {
		name  string
		attrs map[string]any
		want  string
	}{
		{name: "nil", attrs: nil, want: "{}"},
		{name: "empty", attrs: map[string]any{}, want: "{}"},
		{name: "values", attrs: map[string]any{"authorId": json.Number("1"), "tags": []any{"a"}}, want: `{"authorId":1,"tags":["a"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := encodeAttributes(tt.attrs)
			if err != nil {
				t.Fatalf("encodeAttributes failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDecodeAttributes_KeepsNumbers(t *testing.T) {
	attrs, err := decodeAttributes([]byte(`{"categoryId": 12345678901234567890, "ratio": 0.1}`))
	if err != nil {
		t.Fatalf("decodeAttributes failed: %v", err)
	}

	if attrs["categoryId"] != json.Number("12345678901234567890") {
		t.Errorf("Large integer lost precision: %#v", attrs["categoryId"])
	}
	if attrs["ratio"] != json.Number("0.1") {
		t.Errorf("Unexpected ratio %#v", attrs["ratio"])
	}
}

func TestDecodeAttributes_Empty(t *testing.T) {
	attrs, err := decodeAttributes(nil)
	if err != nil {
		t.Fatalf("decodeAttributes failed: %v", err)
	}
	if attrs == nil || len(attrs) != 0 {
		t.Errorf("Expected an empty map, got %#v", attrs)
	}
}

func TestDecodeAttributes_Invalid(t *testing.T) {
	if _, err := decodeAttributes([]byte(`[1,2]`)); err == nil {
		t.Error("Expected an error for a non-object")
	}
}

func TestNullString(t *testing.T) {
	if nullString("") != nil {
		t.Error("Empty string should map to NULL")
	}
	if nullString("GET") != "GET" {
		t.Error("Non-empty string should pass through")
	}
}
