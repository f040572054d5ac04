package animals

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func validationKeys(t *testing.T, err error) map[string]bool {
	t.Helper()
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation.Errors, got %v", err)
	}
	keys := map[string]bool{}
	for k := range verrs {
		keys[k] = true
	}
	return keys
}

func TestParseListQuery_Defaults(t *testing.T) {
	q, err := parseListQuery(httptest.NewRequest("GET", "/api/v1/animals/", nil))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if q.Page != 1 || q.Size != DefaultPageSize {
		t.Fatalf("expected page=1 size=%d, got %d/%d", DefaultPageSize, q.Page, q.Size)
	}
	if err := q.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestParseListQuery_BadTypes(t *testing.T) {
	_, err := parseListQuery(httptest.NewRequest("GET", "/api/v1/animals/?min_age=old&only_parents=maybe", nil))
	keys := validationKeys(t, err)
	if !keys["min_age"] || !keys["only_parents"] {
		t.Fatalf("expected min_age and only_parents errors, got %v", keys)
	}
}

func TestListQuery_Validate(t *testing.T) {
	cases := []struct {
		query string
		key   string
	}{
		{"page=0", "page"},
		{"size=0", "size"},
		{"size=101", "size"},
		{"sex=robot", "sex"},
		{"max_age=151", "max_age"},
		{"min_age=5&max_age=2", "max_age"},
		{"min_age=5&max_age=0", "max_age"},
		{"max_children=101", "max_children"},
		{"min_children=3&max_children=1", "max_children"},
		{"without_children=true&only_children=true", "without_children"},
		{"without_children=true&only_parents=true", "without_children"},
	}
	for _, tc := range cases {
		q, err := parseListQuery(httptest.NewRequest("GET", "/api/v1/animals/?"+tc.query, nil))
		if err != nil {
			t.Fatalf("%s: parse: %v", tc.query, err)
		}
		keys := validationKeys(t, q.Validate())
		if !keys[tc.key] {
			t.Fatalf("%s: expected error on %s, got %v", tc.query, tc.key, keys)
		}
	}
}

func TestListQuery_FilterMapping(t *testing.T) {
	q, err := parseListQuery(httptest.NewRequest("GET", "/api/v1/animals/?name=re&sex=male&species=dog&min_children=1&only_children=1", nil))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := q.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	f := q.filter()
	if f.Name != "re" || f.Sex != SexMale || f.Species != "dog" || !f.OnlyChildren || f.MinChildren == nil || *f.MinChildren != 1 {
		t.Fatalf("unexpected filter: %+v", f)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("filter from a valid query must be well formed: %v", err)
	}
}

func decodeAnimalRequest(t *testing.T, body string) animalRequest {
	t.Helper()
	var req animalRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return req
}

func TestAnimalRequest_CreateRequiresCoreFields(t *testing.T) {
	req := decodeAnimalRequest(t, `{"species_id": 0, "parent_id": null}`)
	keys := validationKeys(t, req.validate(true, time.Now()))
	for _, k := range []string{"name", "age", "sex", "species_id"} {
		if !keys[k] {
			t.Fatalf("expected error on %s, got %v", k, keys)
		}
	}
	if keys["parent_id"] {
		t.Fatalf("null parent_id is valid")
	}
}

func TestAnimalRequest_Ranges(t *testing.T) {
	req := decodeAnimalRequest(t, `{"name": "abcdefghijklmnopqrstuvwxyz0123456", "age": 151, "sex": "robot", "created_at": "2999-01-01T00:00:00Z"}`)
	keys := validationKeys(t, req.validate(true, time.Now()))
	for _, k := range []string{"name", "age", "sex", "created_at"} {
		if !keys[k] {
			t.Fatalf("expected error on %s, got %v", k, keys)
		}
	}
}

func TestAnimalRequest_PartialAcceptsSubset(t *testing.T) {
	req := decodeAnimalRequest(t, `{"age": 0, "parent_id": null}`)
	if err := req.validate(false, time.Now()); err != nil {
		t.Fatalf("expected valid partial, got %v", err)
	}

	p := req.patch()
	if p.Age == nil || *p.Age != 0 {
		t.Fatalf("expected age=0 in patch")
	}
	if !p.ParentID.Set || p.ParentID.Value != nil {
		t.Fatalf("expected explicit null parent, got %+v", p.ParentID)
	}
	if p.SpeciesID.Set || p.Name != nil || p.Sex != nil {
		t.Fatalf("absent fields must stay unset: %+v", p)
	}
}

func TestAnimalRequest_PartialRejectsBlankName(t *testing.T) {
	req := decodeAnimalRequest(t, `{"name": ""}`)
	keys := validationKeys(t, req.validate(false, time.Now()))
	if !keys["name"] {
		t.Fatalf("expected error on name, got %v", keys)
	}
}
