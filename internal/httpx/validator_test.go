package httpx

import (
	"strings"
	"testing"
)

type testParams struct {
	ID    int    `param:"id" validate:"gt=0"`
	Title string `param:"title" validate:"omitempty,max=5,nocontrol"`
	Genre string `param:"genre" validate:"required"`
}

func TestValidateStruct_ValidInput(t *testing.T) {
	errs := ValidateStruct(testParams{ID: 1, Title: "Dune", Genre: "SF"})
	if len(errs) != 0 {
		t.Errorf("Expected no validation errors, got %v", errs)
	}
}

func TestValidateStruct_ReportsParamNames(t *testing.T) {
	errs := ValidateStruct(testParams{ID: 0, Title: "too long title"})
	if len(errs) != 3 {
		t.Fatalf("Expected 3 validation errors, got %v", errs)
	}

	byField := map[string]string{}
	for _, e := range errs {
		byField[e.Field] = e.Message
	}

	if !strings.Contains(byField["id"], "greater than 0") {
		t.Errorf("Unexpected id message %q", byField["id"])
	}
	if !strings.Contains(byField["title"], "at most 5") {
		t.Errorf("Unexpected title message %q", byField["title"])
	}
	if !strings.Contains(byField["genre"], "required") {
		t.Errorf("Unexpected genre message %q", byField["genre"])
	}
}

func TestValidateStruct_NoControl(t *testing.T) {
	errs := ValidateStruct(testParams{ID: 1, Title: "a\x00b", Genre: "SF"})
	if len(errs) != 1 || errs[0].Field != "title" {
		t.Fatalf("Expected a title error, got %v", errs)
	}
}
