package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"stockledger/internal/domain"
	"stockledger/internal/log"
	"stockledger/internal/metrics"
	"stockledger/internal/repos"
	"stockledger/internal/services"
	"stockledger/internal/validate"
)

type MovementHandler struct {
	Ledger  *services.LedgerService
	Catalog *services.CatalogService
}

func (h *MovementHandler) Page(c *fiber.Ctx) error {
	return h.page(c, fiber.StatusOK, "")
}

// page renders the ledger listing plus the record form with its dropdown
// choices (products, and locations with a blank optional entry).
func (h *MovementHandler) page(c *fiber.Ctx, status int, errMsg string) error {
	movements, err := h.Ledger.List()
	if err != nil {
		return err
	}
	products, err := h.Catalog.ListProducts()
	if err != nil {
		return err
	}
	locations, err := h.Catalog.ListLocations()
	if err != nil {
		return err
	}
	data := fiber.Map{
		"Movements": movements,
		"Products":  products,
		"Locations": locations,
	}
	if errMsg != "" {
		data["Err"] = errMsg
	}
	return render(c.Status(status), "movements", data)
}

func (h *MovementHandler) Create(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.FormValue("movement_id"))
	if id == "" {
		id = uuid.NewString()
	} else if _, ok := validate.ID(id); !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "movement_id"})
		return h.page(c, fiber.StatusBadRequest, "enter a valid movement id")
	}

	productID, ok := validate.ID(c.FormValue("product_id"))
	if !ok {
		return h.page(c, fiber.StatusBadRequest, "pick a product")
	}

	from := strings.TrimSpace(c.FormValue("from_location"))
	if from != "" {
		if _, ok := validate.ID(from); !ok {
			return h.page(c, fiber.StatusBadRequest, "enter a valid from location")
		}
	}
	to := strings.TrimSpace(c.FormValue("to_location"))
	if to != "" {
		if _, ok := validate.ID(to); !ok {
			return h.page(c, fiber.StatusBadRequest, "enter a valid to location")
		}
	}

	qty, ok := validate.Qty(c.FormValue("qty"))
	if !ok {
		return h.page(c, fiber.StatusBadRequest, "enter a whole-number quantity")
	}
	ts, ok := validate.Timestamp(c.FormValue("timestamp"))
	if !ok {
		return h.page(c, fiber.StatusBadRequest, "timestamp must be YYYY-MM-DD HH:MM:SS")
	}

	m, err := h.Ledger.Record(domain.Movement{
		ID:           id,
		Timestamp:    ts,
		ProductID:    productID,
		FromLocation: from,
		ToLocation:   to,
		Qty:          qty,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateKey):
			return h.page(c, fiber.StatusConflict, "movement id already in use")
		case errors.Is(err, domain.ErrReferenceNotFound):
			return h.page(c, fiber.StatusUnprocessableEntity, "movement references an unknown product or location")
		}
		return err
	}

	metrics.MovementsRecorded.Inc()
	log.Audit(c, "movement.record", map[string]any{
		"id": m.ID, "product": m.ProductID, "from": m.FromLocation, "to": m.ToLocation, "qty": m.Qty,
	})
	return c.Redirect("/movements", fiber.StatusSeeOther)
}

func (h *MovementHandler) ListJSON(c *fiber.Ctx) error {
	movements, err := h.Ledger.List()
	if err != nil {
		return err
	}
	if movements == nil {
		movements = []repos.MovementRow{}
	}
	return c.JSON(movements)
}
