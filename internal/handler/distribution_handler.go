package handler

import (
	"fmt"
	"time"

	"cantera-backend/internal/mailer"
	"cantera-backend/internal/model"
	"cantera-backend/internal/repository"
	"cantera-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

// DistributionHandler produces the monthly fuel and labour allocation
// summaries and can mail a generated report to the office.
type DistributionHandler struct {
	distribution service.DistributionService
	logs         repository.OperationLogRepository
	machines     repository.MachineRepository
	centers      repository.CostCenterRepository
	rules        repository.CostRuleRepository
	personal     repository.PersonalReportRepository
	workers      repository.WorkerRepository
	mail         *mailer.Mailer
}

func NewDistributionHandler(
	distribution service.DistributionService,
	logs repository.OperationLogRepository,
	machines repository.MachineRepository,
	centers repository.CostCenterRepository,
	rules repository.CostRuleRepository,
	personal repository.PersonalReportRepository,
	workers repository.WorkerRepository,
	mail *mailer.Mailer,
) *DistributionHandler {
	return &DistributionHandler{
		distribution: distribution,
		logs:         logs,
		machines:     machines,
		centers:      centers,
		rules:        rules,
		personal:     personal,
		workers:      workers,
		mail:         mail,
	}
}

// FuelSummary aggregates the month's REFUELING logs into per-machine litre
// totals and runs them through the distribution rules.
func (h *DistributionHandler) FuelSummary(c *fiber.Ctx) error {
	year := c.QueryInt("year")
	month := c.QueryInt("month")
	if year == 0 || month < 1 || month > 12 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "year and month query params are required"})
	}

	logs, err := h.logs.GetByMonthAndType(year, time.Month(month), model.LogTypeRefueling)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load refueling logs"})
	}

	totals := make(map[uint]float64)
	for i := range logs {
		if litres := logs[i].RefuelingLitres(); litres > 0 {
			totals[logs[i].MachineID] += litres
		}
	}

	input, err := h.buildInput(year, month)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load reference data"})
	}

	rows := h.distribution.Distribute(totals, input)
	return c.JSON(fiber.Map{"year": year, "month": month, "rows": roundRows(rows)})
}

// LabourSummary takes the office's name-keyed cost table in the request body
// and distributes it over the month's worked hours.
func (h *DistributionHandler) LabourSummary(c *fiber.Ctx) error {
	year := c.QueryInt("year")
	month := c.QueryInt("month")
	if year == 0 || month < 1 || month > 12 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "year and month query params are required"})
	}

	var entries []service.ExternalCostEntry
	if err := c.BodyParser(&entries); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if len(entries) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cost entries are required"})
	}

	roster, err := h.workers.GetAll(false)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load workers"})
	}

	input, err := h.buildInput(year, month)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load reference data"})
	}

	rows := h.distribution.DistributeWorkerCosts(entries, roster, input)
	return c.JSON(fiber.Map{"year": year, "month": month, "rows": roundRows(rows)})
}

// SendReport mails a pre-rendered report file (base64 in the body) to the
// configured office address or an explicit recipient.
func (h *DistributionHandler) SendReport(c *fiber.Ctx) error {
	var input struct {
		To             string `json:"to"`
		Subject        string `json:"subject"`
		Body           string `json:"body"`
		AttachmentB64  string `json:"attachment_base64"`
		AttachmentName string `json:"attachment_name"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if input.Subject == "" {
		input.Subject = fmt.Sprintf("Cantera report %s", time.Now().Format("2006-01-02"))
	}

	if err := h.mail.SendEmail(input.To, input.Subject, input.Body, input.AttachmentB64, input.AttachmentName); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not send report email"})
	}
	return c.JSON(fiber.Map{"message": "Report sent"})
}

func (h *DistributionHandler) buildInput(year, month int) (service.DistributionInput, error) {
	machines, err := h.machines.GetAll(false)
	if err != nil {
		return service.DistributionInput{}, err
	}
	centers, err := h.centers.GetAll()
	if err != nil {
		return service.DistributionInput{}, err
	}
	rules, err := h.rules.GetAll()
	if err != nil {
		return service.DistributionInput{}, err
	}
	reports, err := h.personal.GetByMonth(year, time.Month(month))
	if err != nil {
		return service.DistributionInput{}, err
	}
	return service.DistributionInput{
		Machines:        machines,
		Centers:         centers,
		Rules:           rules,
		PersonalReports: reports,
	}, nil
}

func roundRows(rows []service.SummaryRow) []service.SummaryRow {
	for i := range rows {
		rows[i].Amount = service.RoundAmount(rows[i].Amount)
	}
	return rows
}
