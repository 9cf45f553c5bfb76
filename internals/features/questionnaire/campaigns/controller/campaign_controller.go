// file: internals/features/questionnaire/campaigns/controller/campaign_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	assignmentModel "moobee_backend/internals/features/questionnaire/assignments/model"
	dto "moobee_backend/internals/features/questionnaire/campaigns/dto"
	model "moobee_backend/internals/features/questionnaire/campaigns/model"
	notifService "moobee_backend/internals/features/questionnaire/notifications/service"
	resultModel "moobee_backend/internals/features/questionnaire/results/model"
	templateModel "moobee_backend/internals/features/questionnaire/templates/model"
	helper "moobee_backend/internals/helpers"
)

/* ========================================================
   Controller
======================================================== */

type CampaignController struct {
	DB         *gorm.DB
	Validator  *validator.Validate
	Family     string
	Dispatcher notifService.Dispatcher
}

func NewCampaignController(db *gorm.DB, family string, dispatcher notifService.Dispatcher) *CampaignController {
	return &CampaignController{
		DB:         db,
		Validator:  validator.New(),
		Family:     family,
		Dispatcher: dispatcher,
	}
}

/* ========================================================
   Helpers
======================================================== */

func (ctl *CampaignController) findTenantCampaign(c *fiber.Ctx, id uuid.UUID) (*model.CampaignModel, error) {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return nil, err
	}
	var m model.CampaignModel
	err = ctl.DB.
		Joins("JOIN questionnaire_templates t ON t.template_id = questionnaire_campaigns.campaign_template_id").
		Where("questionnaire_campaigns.campaign_tenant_id = ? AND t.template_kind IN ?", tenantID, templateModel.KindsOf(ctl.Family)).
		First(&m, "campaign_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// findConflicts returns employees holding an overlapping non-terminal
// assignment of the same questionnaire family within [start, deadline].
func (ctl *CampaignController) findConflicts(tenantID uuid.UUID, employeeIDs []uuid.UUID, start, deadline time.Time) ([]dto.ConflictEntry, error) {
	var rows []struct {
		EmployeeID   uuid.UUID
		CampaignID   uuid.UUID
		CampaignName string
		DeadlineAt   time.Time
	}
	err := ctl.DB.Table("questionnaire_assignments AS a").
		Select("a.assignment_employee_id AS employee_id, c.campaign_id, c.campaign_name, c.campaign_deadline_at AS deadline_at").
		Joins("JOIN questionnaire_campaigns c ON c.campaign_id = a.assignment_campaign_id").
		Joins("JOIN questionnaire_templates t ON t.template_id = c.campaign_template_id").
		Where("a.assignment_tenant_id = ?", tenantID).
		Where("a.assignment_employee_id IN ?", employeeIDs).
		Where("a.assignment_status IN ?", []string{assignmentModel.StatusAssigned, assignmentModel.StatusInProgress}).
		Where("t.template_kind IN ?", templateModel.KindsOf(ctl.Family)).
		Where("c.campaign_start_at <= ? AND c.campaign_deadline_at >= ?", deadline, start).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]dto.ConflictEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ConflictEntry{
			EmployeeID:   r.EmployeeID,
			CampaignID:   r.CampaignID,
			CampaignName: r.CampaignName,
			DeadlineAt:   r.DeadlineAt,
		})
	}
	return out, nil
}

func advisoryWarnings(employeeCount int, start, deadline time.Time) []string {
	warnings := []string{}
	if employeeCount > 200 {
		warnings = append(warnings, "large cohort: consider splitting the rollout")
	}
	if deadline.Sub(start) < 72*time.Hour {
		warnings = append(warnings, "short response window: less than 3 days between start and deadline")
	}
	return warnings
}

/* ========================================================
   Handlers
======================================================== */

// POST /:family/campaigns
// Creation is idempotent on (tenant, template, name, start, deadline)
// and fans out one assignment per employee in a single transaction.
func (ctl *CampaignController) Create(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, helper.CodeValidation, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.DeadlineAt.Before(req.StartAt) {
		return helper.Error(c, http.StatusBadRequest, helper.CodeValidation, "campaign_deadline_at must not precede campaign_start_at")
	}

	// template must exist in the tenant, be active, and match the family
	var tpl templateModel.TemplateModel
	if err := ctl.DB.
		Where("template_tenant_id = ? AND template_kind IN ? AND template_is_active = TRUE", tenantID, templateModel.KindsOf(ctl.Family)).
		First(&tpl, "template_id = ?", req.TemplateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, helper.CodeNotFound, "Template not found")
		}
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to load template")
	}

	// natural-key idempotency: a retry returns the existing campaign
	var existing model.CampaignModel
	err = ctl.DB.Where(
		"campaign_tenant_id = ? AND campaign_template_id = ? AND campaign_name = ? AND campaign_start_at = ? AND campaign_deadline_at = ?",
		tenantID, req.TemplateID, req.Name, req.StartAt, req.DeadlineAt,
	).First(&existing).Error
	if err == nil {
		var n int64
		ctl.DB.Model(&assignmentModel.AssignmentModel{}).
			Where("assignment_campaign_id = ?", existing.CampaignID).Count(&n)
		return helper.Success(c, dto.ToCampaignResponse(&existing, n))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to check existing campaigns")
	}

	// conflicts never block creation, but they are surfaced
	conflicts, err := ctl.findConflicts(tenantID, req.EmployeeIDs, req.StartAt, req.DeadlineAt)
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to check conflicts")
	}

	m := req.ToModel(tenantID, userID)
	if m.CampaignStartAt.After(time.Now()) {
		m.CampaignStatus = model.StatusScheduled
	} else {
		m.CampaignStatus = model.StatusActive
	}

	var assignments []assignmentModel.AssignmentModel
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		for _, empID := range req.EmployeeIDs {
			assignments = append(assignments, assignmentModel.AssignmentModel{
				AssignmentTenantID:      tenantID,
				AssignmentCampaignID:    m.CampaignID,
				AssignmentEmployeeID:    empID,
				AssignmentAttemptNumber: 1,
				AssignmentStatus:        assignmentModel.StatusAssigned,
			})
		}
		return tx.Create(&assignments).Error
	}); err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to create campaign")
	}

	// invite hooks after commit; delivery is the collaborator's concern
	for _, a := range assignments {
		if err := ctl.Dispatcher.Invite(c.UserContext(), a.AssignmentID); err != nil {
			log.Printf("[NOTIFY] invite failed for assignment %s: %v", a.AssignmentID, err)
		}
	}

	resp := dto.ToCampaignResponse(&m, int64(len(assignments)))
	return helper.SuccessWithCode(c, http.StatusCreated, fiber.Map{
		"campaign":  resp,
		"conflicts": conflicts,
		"warnings":  advisoryWarnings(len(req.EmployeeIDs), req.StartAt, req.DeadlineAt),
	})
}

// GET /:family/campaigns
func (ctl *CampaignController) List(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}

	var q dto.ListCampaignQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.Error(c, http.StatusBadRequest, helper.CodeValidation, "Invalid query parameters")
	}
	if err := ctl.Validator.Struct(&q); err != nil {
		return helper.ValidationError(c, err)
	}

	page := helper.ParsePage(c, "created_at", "desc")

	qry := ctl.DB.Model(&model.CampaignModel{}).
		Joins("JOIN questionnaire_templates t ON t.template_id = questionnaire_campaigns.campaign_template_id").
		Where("questionnaire_campaigns.campaign_tenant_id = ? AND t.template_kind IN ?", tenantID, templateModel.KindsOf(ctl.Family))
	if q.Status != nil {
		qry = qry.Where("campaign_status = ?", *q.Status)
	}

	var total int64
	if err := qry.Count(&total).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to count campaigns")
	}

	var items []model.CampaignModel
	if err := qry.Order("campaign_created_at DESC").
		Limit(page.PerPage).Offset(page.Offset()).
		Find(&items).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to list campaigns")
	}

	resp := make([]dto.CampaignResponse, 0, len(items))
	for i := range items {
		var n int64
		ctl.DB.Model(&assignmentModel.AssignmentModel{}).
			Where("assignment_campaign_id = ?", items[i].CampaignID).Count(&n)
		resp = append(resp, dto.ToCampaignResponse(&items[i], n))
	}

	return helper.Success(c, fiber.Map{
		"campaigns":  resp,
		"pagination": helper.NewPageMeta(page, total),
	})
}

// GET /:family/campaigns/:id
func (ctl *CampaignController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, helper.CodeValidation, "Invalid campaign id")
	}
	m, err := ctl.findTenantCampaign(c, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, helper.CodeNotFound, "Campaign not found")
		}
		return err
	}
	var n int64
	ctl.DB.Model(&assignmentModel.AssignmentModel{}).
		Where("assignment_campaign_id = ?", m.CampaignID).Count(&n)
	return helper.Success(c, dto.ToCampaignResponse(m, n))
}

// POST /:family/campaigns/check-conflicts
// Pure read: {employeeIds, startDate, deadline} → {hasConflicts, conflicts[], warnings[]}
func (ctl *CampaignController) CheckConflicts(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.ConflictCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, helper.CodeValidation, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.Deadline.Before(req.StartDate) {
		return helper.Error(c, http.StatusBadRequest, helper.CodeValidation, "deadline must not precede startDate")
	}

	conflicts, err := ctl.findConflicts(tenantID, req.EmployeeIDs, req.StartDate, req.Deadline)
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to check conflicts")
	}

	return helper.Success(c, dto.ConflictCheckResponse{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    conflicts,
		Warnings:     advisoryWarnings(len(req.EmployeeIDs), req.StartDate, req.Deadline),
	})
}

// GET /:family/campaigns/:id/stats
func (ctl *CampaignController) Stats(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, helper.CodeValidation, "Invalid campaign id")
	}
	m, err := ctl.findTenantCampaign(c, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, helper.CodeNotFound, "Campaign not found")
		}
		return err
	}

	// counts by status
	var statusRows []struct {
		Status string
		N      int64
	}
	if err := ctl.DB.Model(&assignmentModel.AssignmentModel{}).
		Select("assignment_status AS status, COUNT(*) AS n").
		Where("assignment_campaign_id = ?", m.CampaignID).
		Group("assignment_status").
		Scan(&statusRows).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to aggregate assignments")
	}

	stats := dto.CampaignStatsResponse{
		CampaignID:       m.CampaignID,
		ByStatus:         map[string]int64{},
		CategoryAverages: map[string]float64{},
	}
	var completed int64
	for _, r := range statusRows {
		stats.ByStatus[r.Status] = r.N
		stats.Total += r.N
		if r.Status == assignmentModel.StatusCompleted {
			completed = r.N
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = float64(completed) / float64(stats.Total)
	}

	// average time taken, completed only
	if completed > 0 {
		var avg *float64
		if err := ctl.DB.Model(&assignmentModel.AssignmentModel{}).
			Where("assignment_campaign_id = ? AND assignment_status = ?", m.CampaignID, assignmentModel.StatusCompleted).
			Select("AVG(assignment_time_taken_seconds)").
			Scan(&avg).Error; err == nil {
			stats.AvgTimeSeconds = avg
		}
	}

	// per-category averages over completed results
	var results []resultModel.ResultModel
	if err := ctl.DB.
		Joins("JOIN questionnaire_assignments a ON a.assignment_id = questionnaire_results.result_assignment_id").
		Where("a.assignment_campaign_id = ?", m.CampaignID).
		Find(&results).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to load results")
	}
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, r := range results {
		var cats map[string]struct {
			Average float64 `json:"average"`
		}
		if err := json.Unmarshal(r.ResultCategories, &cats); err != nil {
			continue
		}
		for code, cs := range cats {
			sums[code] += cs.Average
			counts[code]++
		}
	}
	for code, sum := range sums {
		stats.CategoryAverages[code] = sum / float64(counts[code])
	}

	return helper.Success(c, stats)
}

// POST /:family/campaigns/:id/cancel
// Status transition is a compare-and-set; non-terminal assignments are
// demoted to skipped.
func (ctl *CampaignController) Cancel(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, helper.CodeValidation, "Invalid campaign id")
	}
	m, err := ctl.findTenantCampaign(c, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, helper.CodeNotFound, "Campaign not found")
		}
		return err
	}

	if m.CampaignStatus == model.StatusCancelled {
		return helper.ErrorWithDetails(c, http.StatusConflict, helper.CodeCampaignAlreadyCancelled,
			"Campaign is already cancelled", fiber.Map{"campaign_id": m.CampaignID})
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.CampaignModel{}).
			Where("campaign_id = ? AND campaign_status = ?", m.CampaignID, m.CampaignStatus).
			Update("campaign_status", model.StatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrInvalidTransaction // lost the CAS race
		}
		return tx.Model(&assignmentModel.AssignmentModel{}).
			Where("assignment_campaign_id = ? AND assignment_status NOT IN ?", m.CampaignID, assignmentModel.TerminalStatuses).
			Update("assignment_status", assignmentModel.StatusSkipped).Error
	}); err != nil {
		return helper.Error(c, http.StatusConflict, helper.CodeCampaignAlreadyCancelled, "Campaign status changed concurrently")
	}

	m.CampaignStatus = model.StatusCancelled
	var n int64
	ctl.DB.Model(&assignmentModel.AssignmentModel{}).
		Where("assignment_campaign_id = ?", m.CampaignID).Count(&n)
	return helper.Success(c, dto.ToCampaignResponse(m, n))
}
