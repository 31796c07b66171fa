package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"stockledger/internal/domain"
	"stockledger/internal/http/handlers"
	"stockledger/internal/repos"
)

// Minimal app setup mirroring cmd/stockledger wiring.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				return c.SendStatus(fiber.StatusNotFound)
			case errors.Is(err, domain.ErrDuplicateKey):
				return c.SendStatus(fiber.StatusConflict)
			case errors.Is(err, domain.ErrReferenceNotFound):
				return c.SendStatus(fiber.StatusUnprocessableEntity)
			}
			return c.SendStatus(fiber.StatusInternalServerError)
		},
	})
	app.Use(requestid.New())
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	deps := handlers.NewDeps(db)
	app.Get("/products", deps.ProductHandler.Page)
	app.Post("/products", deps.ProductHandler.Create)
	app.Get("/products/edit/:id", deps.ProductHandler.EditForm)
	app.Post("/products/edit/:id", deps.ProductHandler.Edit)
	app.Post("/products/delete/:id", deps.ProductHandler.Delete)
	app.Get("/locations", deps.LocationHandler.Page)
	app.Post("/locations", deps.LocationHandler.Create)
	app.Post("/locations/delete/:id", deps.LocationHandler.Delete)
	app.Get("/movements", deps.MovementHandler.Page)
	app.Post("/movements", deps.MovementHandler.Create)
	app.Get("/report", deps.ReportHandler.Page)
	app.Get("/report/export", deps.ReportHandler.Export)
	api := app.Group("/api/v1")
	api.Get("/products", deps.ProductHandler.ListJSON)
	api.Get("/locations", deps.LocationHandler.ListJSON)
	api.Get("/movements", deps.MovementHandler.ListJSON)
	api.Get("/balances", deps.ReportHandler.ListJSON)

	return app
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func csrfToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/products", nil))
	if err != nil {
		t.Fatal(err)
	}
	tok := extractCookie(resp, "csrf_")
	if tok == "" {
		t.Fatal("csrf token missing")
	}
	return tok
}

func postForm(t *testing.T, app *fiber.App, tok, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader("csrf="+tok+"&"+body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: tok})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func getJSON(t *testing.T, app *fiber.App, path string, out any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatal(err)
	}
}

func TestProductFormFlow(t *testing.T) {
	app := newTestApp(t)
	tok := csrfToken(t, app)

	resp := postForm(t, app, tok, "/products", "product_id=P1&name=Widget")
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("create expected 303, got %d", resp.StatusCode)
	}

	// duplicate id is a conflict, not an overwrite
	resp = postForm(t, app, tok, "/products", "product_id=P1&name=Other")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate expected 409, got %d", resp.StatusCode)
	}

	var products []domain.Product
	getJSON(t, app, "/api/v1/products", &products)
	if len(products) != 1 || products[0].Name != "Widget" {
		t.Fatalf("unexpected products: %+v", products)
	}

	// rename in place
	resp = postForm(t, app, tok, "/products/edit/P1", "name=Wide+Widget")
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("edit expected 303, got %d", resp.StatusCode)
	}
	getJSON(t, app, "/api/v1/products", &products)
	if products[0].ID != "P1" || products[0].Name != "Wide Widget" {
		t.Fatalf("rename missed: %+v", products)
	}

	// edit page for a missing id is a 404
	resp404, err := app.Test(httptest.NewRequest("GET", "/products/edit/PX", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp404.StatusCode != http.StatusNotFound {
		t.Fatalf("missing edit expected 404, got %d", resp404.StatusCode)
	}

	// delete, then the listing is empty again
	resp = postForm(t, app, tok, "/products/delete/P1", "")
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("delete expected 303, got %d", resp.StatusCode)
	}
	getJSON(t, app, "/api/v1/products", &products)
	if len(products) != 0 {
		t.Fatalf("product survived delete: %+v", products)
	}
}

func TestValidationBadInputs(t *testing.T) {
	app := newTestApp(t)
	tok := csrfToken(t, app)

	resp := postForm(t, app, tok, "/products", "product_id=%3Cscript%3E&name=x")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad product id expected 400, got %d", resp.StatusCode)
	}

	resp = postForm(t, app, tok, "/locations", "location_id=L1&name=")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("blank name expected 400, got %d", resp.StatusCode)
	}
}
