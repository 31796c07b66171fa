package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stockledger/internal/domain"
	"stockledger/internal/export"
	"stockledger/internal/services"
)

type ReportHandler struct {
	Report *services.ReportService
}

func (h *ReportHandler) Page(c *fiber.Ctx) error {
	rows, err := h.Report.Balances()
	if err != nil {
		return err
	}
	return render(c, "report", fiber.Map{"Report": rows})
}

func (h *ReportHandler) ListJSON(c *fiber.Ctx) error {
	rows, err := h.Report.Balances()
	if err != nil {
		return err
	}
	if rows == nil {
		rows = []domain.BalanceRow{}
	}
	return c.JSON(rows)
}

func (h *ReportHandler) Export(c *fiber.Ctx) error {
	rows, err := h.Report.Balances()
	if err != nil {
		return err
	}
	buf, err := export.BalanceWorkbook(rows)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="balance_report.xlsx"`)
	return c.Send(buf.Bytes())
}
