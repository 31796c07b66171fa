package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"stockledger/internal/domain"
	"stockledger/internal/log"
	"stockledger/internal/metrics"
	"stockledger/internal/services"
	"stockledger/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) Page(c *fiber.Ctx) error {
	return h.page(c, fiber.StatusOK, "")
}

func (h *ProductHandler) page(c *fiber.Ctx, status int, errMsg string) error {
	products, err := h.Catalog.ListProducts()
	if err != nil {
		return err
	}
	data := fiber.Map{"Products": products}
	if errMsg != "" {
		data["Err"] = errMsg
	}
	return render(c.Status(status), "products", data)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("product_id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product_id"})
		return h.page(c, fiber.StatusBadRequest, "enter a valid product id")
	}
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return h.page(c, fiber.StatusBadRequest, "enter a valid product name")
	}

	if _, err := h.Catalog.CreateProduct(id, name); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return h.page(c, fiber.StatusConflict, "product id already in use")
		}
		return err
	}
	log.Audit(c, "product.create", map[string]any{"id": id})
	return c.Redirect("/products", fiber.StatusSeeOther)
}

func (h *ProductHandler) EditForm(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "No such product"})
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "No such product"})
		}
		return err
	}
	products, err := h.Catalog.ListProducts()
	if err != nil {
		return err
	}
	return render(c, "products", fiber.Map{"Products": products, "Edit": p})
}

func (h *ProductHandler) Edit(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "No such product"})
	}
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return h.page(c, fiber.StatusBadRequest, "enter a valid product name")
	}
	if err := h.Catalog.RenameProduct(id, name); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "No such product"})
		}
		return err
	}
	log.Audit(c, "product.rename", map[string]any{"id": id})
	return c.Redirect("/products", fiber.StatusSeeOther)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "No such product"})
	}
	removed, err := h.Catalog.DeleteProduct(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "No such product"})
		}
		return err
	}
	metrics.CascadedMovements.Add(float64(removed))
	log.Audit(c, "product.delete", map[string]any{"id": id, "cascaded": removed})
	return c.Redirect("/products", fiber.StatusSeeOther)
}

func (h *ProductHandler) ListJSON(c *fiber.Ctx) error {
	products, err := h.Catalog.ListProducts()
	if err != nil {
		return err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return c.JSON(products)
}
