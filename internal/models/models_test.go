package models

import (
	"encoding/json"
	"testing"
)

func TestBaseModelBeforeCreateGeneratesID(t *testing.T) {
	var base BaseModel
	if err := base.BeforeCreate(nil); err != nil {
		t.Fatalf("before create: %v", err)
	}
	if base.ID == "" {
		t.Fatal("expected base model ID to be generated")
	}
}

func TestBaseModelBeforeCreateKeepsExistingID(t *testing.T) {
	base := BaseModel{ID: "fixed"}
	if err := base.BeforeCreate(nil); err != nil {
		t.Fatalf("before create: %v", err)
	}
	if base.ID != "fixed" {
		t.Fatalf("expected ID to be preserved, got %q", base.ID)
	}
}

func TestEmbeddedModelsUseBaseBeforeCreate(t *testing.T) {
	cases := []struct {
		name  string
		model func() *BaseModel
	}{
		{"company", func() *BaseModel {
			c := &Company{}
			return &c.BaseModel
		}},
		{"category", func() *BaseModel {
			c := &Category{}
			return &c.BaseModel
		}},
		{"subcategory", func() *BaseModel {
			s := &Subcategory{}
			return &s.BaseModel
		}},
		{"product", func() *BaseModel {
			p := &Product{}
			return &p.BaseModel
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			model := tc.model()
			if err := model.BeforeCreate(nil); err != nil {
				t.Fatalf("before create: %v", err)
			}
			if model.ID == "" {
				t.Fatal("expected ID to be generated")
			}
		})
	}
}

func TestStatusValid(t *testing.T) {
	if !StatusActive.Valid() || !StatusInactive.Valid() {
		t.Fatal("expected known statuses to be valid")
	}
	if Status("ARCHIVED").Valid() {
		t.Fatal("expected unknown status to be invalid")
	}
}

func TestProductJSONOmitsUnloadedAssociations(t *testing.T) {
	payload, err := json.Marshal(Product{Name: "Crisps", Barcode: "5000112637922"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"company", "category", "subcategory"} {
		if _, ok := fields[key]; ok {
			t.Fatalf("expected %s to be omitted", key)
		}
	}
	if fields["stockQuantity"] != float64(0) {
		t.Fatalf("expected stockQuantity in camelCase, got %v", fields["stockQuantity"])
	}
}
