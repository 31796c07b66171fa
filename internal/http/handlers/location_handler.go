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

type LocationHandler struct {
	Catalog *services.CatalogService
}

func (h *LocationHandler) Page(c *fiber.Ctx) error {
	return h.page(c, fiber.StatusOK, "")
}

func (h *LocationHandler) page(c *fiber.Ctx, status int, errMsg string) error {
	locations, err := h.Catalog.ListLocations()
	if err != nil {
		return err
	}
	data := fiber.Map{"Locations": locations}
	if errMsg != "" {
		data["Err"] = errMsg
	}
	return render(c.Status(status), "locations", data)
}

func (h *LocationHandler) Create(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("location_id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "location_id"})
		return h.page(c, fiber.StatusBadRequest, "enter a valid location id")
	}
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return h.page(c, fiber.StatusBadRequest, "enter a valid location name")
	}

	if _, err := h.Catalog.CreateLocation(id, name); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return h.page(c, fiber.StatusConflict, "location id already in use")
		}
		return err
	}
	log.Audit(c, "location.create", map[string]any{"id": id})
	return c.Redirect("/locations", fiber.StatusSeeOther)
}

func (h *LocationHandler) EditForm(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "No such location"})
	}
	l, err := h.Catalog.GetLocation(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "No such location"})
		}
		return err
	}
	locations, err := h.Catalog.ListLocations()
	if err != nil {
		return err
	}
	return render(c, "locations", fiber.Map{"Locations": locations, "Edit": l})
}

func (h *LocationHandler) Edit(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "No such location"})
	}
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return h.page(c, fiber.StatusBadRequest, "enter a valid location name")
	}
	if err := h.Catalog.RenameLocation(id, name); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "No such location"})
		}
		return err
	}
	log.Audit(c, "location.rename", map[string]any{"id": id})
	return c.Redirect("/locations", fiber.StatusSeeOther)
}

func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "No such location"})
	}
	removed, err := h.Catalog.DeleteLocation(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "No such location"})
		}
		return err
	}
	metrics.CascadedMovements.Add(float64(removed))
	log.Audit(c, "location.delete", map[string]any{"id": id, "cascaded": removed})
	return c.Redirect("/locations", fiber.StatusSeeOther)
}

func (h *LocationHandler) ListJSON(c *fiber.Ctx) error {
	locations, err := h.Catalog.ListLocations()
	if err != nil {
		return err
	}
	if locations == nil {
		locations = []domain.Location{}
	}
	return c.JSON(locations)
}
