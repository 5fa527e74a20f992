package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func paramsFor(t *testing.T, target string) *Params {
	t.Helper()

	app := fiber.New()
	var got *Params
	app.Get("/", func(c *fiber.Ctx) error {
		got = GetParams(c)
		return nil
	})

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	return got
}

func TestGetParamsDefaults(t *testing.T) {
	params := paramsFor(t, "/")

	if params.Page != 1 {
		t.Errorf("page = %d, want 1", params.Page)
	}
	if params.Limit != DefaultLimit {
		t.Errorf("limit = %d, want %d", params.Limit, DefaultLimit)
	}
	if params.Offset != 0 {
		t.Errorf("offset = %d, want 0", params.Offset)
	}
}

func TestGetParamsClamping(t *testing.T) {
	params := paramsFor(t, "/?page=-3&limit=9999")

	if params.Page != 1 {
		t.Errorf("negative page should clamp to 1, got %d", params.Page)
	}
	if params.Limit != MaxLimit {
		t.Errorf("oversized limit should clamp to %d, got %d", MaxLimit, params.Limit)
	}
}

func TestGetParamsOffset(t *testing.T) {
	params := paramsFor(t, "/?page=3&limit=20")

	if params.Offset != 40 {
		t.Errorf("offset = %d, want 40", params.Offset)
	}
}

func TestGetMeta(t *testing.T) {
	meta := GetMeta(&Params{Page: 2, Limit: 10}, 25)

	if meta.Pages != 3 {
		t.Errorf("pages = %d, want 3", meta.Pages)
	}
	if meta.Total != 25 {
		t.Errorf("total = %d, want 25", meta.Total)
	}
	if meta.Page != 2 {
		t.Errorf("page = %d, want 2", meta.Page)
	}
}

func TestGetMetaExactMultiple(t *testing.T) {
	meta := GetMeta(&Params{Page: 1, Limit: 10}, 30)

	if meta.Pages != 3 {
		t.Errorf("pages = %d, want 3", meta.Pages)
	}
}
