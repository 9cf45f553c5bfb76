// file: internals/features/questionnaire/llmusage/controller/llm_usage_controller.go
package controller

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	model "moobee_backend/internals/features/questionnaire/llmusage/model"
	helper "moobee_backend/internals/helpers"
)

type LLMUsageController struct {
	DB *gorm.DB
}

func NewLLMUsageController(db *gorm.DB) *LLMUsageController {
	return &LLMUsageController{DB: db}
}

// GET /admin/llm-usage
// Query: limit, page, operation, status, model
func (ctl *LLMUsageController) List(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}

	page := helper.ParsePageWith(c, "created_at", "desc", helper.AdminOpts)

	qry := ctl.DB.Model(&model.LLMUsageModel{}).Where("usage_tenant_id = ?", tenantID)
	if op := strings.TrimSpace(c.Query("operation")); op != "" {
		qry = qry.Where("usage_operation = ?", op)
	}
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		qry = qry.Where("usage_status = ?", st)
	}
	if m := strings.TrimSpace(c.Query("model")); m != "" {
		qry = qry.Where("usage_model = ?", m)
	}

	var total int64
	if err := qry.Count(&total).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to count usage records")
	}

	var rows []model.LLMUsageModel
	if err := qry.Order("usage_created_at DESC").
		Limit(page.PerPage).Offset(page.Offset()).
		Find(&rows).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to list usage records")
	}

	// tenant-level spend summary alongside the page
	var totals struct {
		TotalTokens int64   `json:"total_tokens"`
		TotalCost   float64 `json:"total_cost"`
	}
	if err := ctl.DB.Model(&model.LLMUsageModel{}).
		Where("usage_tenant_id = ?", tenantID).
		Select("COALESCE(SUM(usage_total_tokens),0) AS total_tokens, COALESCE(SUM(usage_estimated_cost),0) AS total_cost").
		Scan(&totals).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to aggregate usage")
	}

	return helper.Success(c, fiber.Map{
		"records":    rows,
		"totals":     totals,
		"pagination": helper.NewPageMeta(page, total),
	})
}
