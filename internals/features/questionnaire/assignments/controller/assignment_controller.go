// file: internals/features/questionnaire/assignments/controller/assignment_controller.go
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
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"moobee_backend/internals/configs"
	roleService "moobee_backend/internals/features/employees/roles/service"
	dto "moobee_backend/internals/features/questionnaire/assignments/dto"
	model "moobee_backend/internals/features/questionnaire/assignments/model"
	campaignModel "moobee_backend/internals/features/questionnaire/campaigns/model"
	insightService "moobee_backend/internals/features/questionnaire/insights/service"
	notifService "moobee_backend/internals/features/questionnaire/notifications/service"
	resultModel "moobee_backend/internals/features/questionnaire/results/model"
	scoring "moobee_backend/internals/features/questionnaire/scoring/service"
	templateModel "moobee_backend/internals/features/questionnaire/templates/model"
	helper "moobee_backend/internals/helpers"
)

/* ========================================================
   Controller
======================================================== */

type AssignmentController struct {
	DB         *gorm.DB
	Validator  *validator.Validate
	Family     string
	Dispatcher notifService.Dispatcher
}

func NewAssignmentController(db *gorm.DB, family string, dispatcher notifService.Dispatcher) *AssignmentController {
	return &AssignmentController{
		DB:         db,
		Validator:  validator.New(),
		Family:     family,
		Dispatcher: dispatcher,
	}
}

/* ========================================================
   Handlers
======================================================== */

// GET /:family/my-assignments
// Lists the caller's open assignments with campaign/template context.
func (ctl *AssignmentController) ListMine(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	employeeID, err := helper.GetEmployeeIDFromToken(c)
	if err != nil {
		return err
	}

	var rows []struct {
		model.AssignmentModel
		CampaignName        string
		CampaignDeadlineAt  time.Time
		CampaignIsMandatory bool
		CampaignIsAnonymous bool
		TemplateID          uuid.UUID
		TemplateName        string
		TemplateKind        string
	}
	err = ctl.DB.Table("questionnaire_assignments").
		Select(`questionnaire_assignments.*,
		        c.campaign_name, c.campaign_deadline_at, c.campaign_is_mandatory, c.campaign_is_anonymous,
		        t.template_id, t.template_name, t.template_kind`).
		Joins("JOIN questionnaire_campaigns c ON c.campaign_id = questionnaire_assignments.assignment_campaign_id").
		Joins("JOIN questionnaire_templates t ON t.template_id = c.campaign_template_id").
		Where("questionnaire_assignments.assignment_tenant_id = ?", tenantID).
		Where("questionnaire_assignments.assignment_employee_id = ?", employeeID).
		Where("questionnaire_assignments.assignment_status IN ?", []string{model.StatusAssigned, model.StatusInProgress}).
		Where("c.campaign_status = ?", campaignModel.StatusActive).
		Where("t.template_kind IN ?", templateModel.KindsOf(ctl.Family)).
		Order("c.campaign_deadline_at ASC").
		Scan(&rows).Error
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to list assignments")
	}

	out := make([]dto.MyAssignmentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MyAssignmentResponse{
			AssignmentID:     r.AssignmentID,
			Status:           r.AssignmentStatus,
			AttemptNumber:    r.AssignmentAttemptNumber,
			AssignedAt:       r.AssignmentAssignedAt,
			StartedAt:        r.AssignmentStartedAt,
			CampaignID:       r.AssignmentCampaignID,
			CampaignName:     r.CampaignName,
			CampaignDeadline: r.CampaignDeadlineAt,
			IsMandatory:      r.CampaignIsMandatory,
			IsAnonymous:      r.CampaignIsAnonymous,
			TemplateID:       r.TemplateID,
			TemplateName:     r.TemplateName,
			TemplateKind:     r.TemplateKind,
		})
	}
	return helper.Success(c, fiber.Map{"assignments": out})
}

// POST /:family/assignments/:id/submit
// Idempotent on (assignment, attempt, payload hash): an identical
// resubmit returns the stored Result, a different payload either opens
// a retake attempt or fails with ALREADY_COMPLETED.
func (ctl *AssignmentController) Submit(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	employeeID, err := helper.GetEmployeeIDFromToken(c)
	if err != nil {
		return err
	}
	assignmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, helper.CodeValidation, "Invalid assignment id")
	}

	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, helper.CodeValidation, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var assignment model.AssignmentModel
	err = ctl.DB.
		Where("assignment_tenant_id = ? AND assignment_employee_id = ?", tenantID, employeeID).
		First(&assignment, "assignment_id = ?", assignmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, helper.CodeNotFound, "Assignment not found")
		}
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to load assignment")
	}

	// the route id may point at an earlier attempt; retake and
	// idempotency decisions run against the latest one
	var latest model.AssignmentModel
	err = ctl.DB.
		Where("assignment_campaign_id = ? AND assignment_employee_id = ?",
			assignment.AssignmentCampaignID, assignment.AssignmentEmployeeID).
		Order("assignment_attempt_number DESC").
		First(&latest).Error
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to load assignment")
	}
	assignment = latest

	var campaign campaignModel.CampaignModel
	if err := ctl.DB.First(&campaign, "campaign_id = ?", assignment.AssignmentCampaignID).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to load campaign")
	}

	var tpl templateModel.TemplateModel
	err = ctl.DB.
		Preload("TemplateQuestions", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_position ASC")
		}).
		Preload("TemplateQuestions.QuestionOptions", func(db *gorm.DB) *gorm.DB {
			return db.Order("option_position ASC")
		}).
		Preload("TemplateWeights").
		Where("template_kind IN ?", templateModel.KindsOf(ctl.Family)).
		First(&tpl, "template_id = ?", campaign.CampaignTemplateID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, helper.CodeNotFound, "Assignment not found")
		}
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to load template")
	}

	hash := req.Hash()

	var stored resultModel.ResultModel
	storedHash := ""
	if assignment.AssignmentStatus == model.StatusCompleted {
		if err := ctl.DB.First(&stored, "result_assignment_id = ?", assignment.AssignmentID).Error; err == nil {
			storedHash = stored.ResultResponseHash
		}
	}

	switch resolveSubmit(assignment.AssignmentStatus, assignment.AssignmentAttemptNumber,
		campaign.CampaignMaxAttempts, storedHash, hash) {
	case submitRejectClosed:
		return helper.Error(c, http.StatusConflict, helper.CodeValidation, "Assignment is no longer open")
	case submitReturnStored:
		return helper.Success(c, dto.ToResultResponse(&stored))
	case submitRejectCompleted:
		return helper.ErrorWithDetails(c, http.StatusConflict, helper.CodeAlreadyCompleted,
			"Assignment already completed and no retakes remain",
			fiber.Map{"max_attempts": campaign.CampaignMaxAttempts})
	case submitNewAttempt:
		next := model.AssignmentModel{
			AssignmentTenantID:      assignment.AssignmentTenantID,
			AssignmentCampaignID:    assignment.AssignmentCampaignID,
			AssignmentEmployeeID:    assignment.AssignmentEmployeeID,
			AssignmentAttemptNumber: assignment.AssignmentAttemptNumber + 1,
			AssignmentStatus:        model.StatusAssigned,
		}
		if err := ctl.DB.Create(&next).Error; err != nil {
			return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to open retake attempt")
		}
		assignment = next
	}

	snap := scoring.BuildSnapshot(&tpl)

	answered := map[uuid.UUID]bool{}
	for _, a := range req.Responses {
		answered[a.QuestionID] = true
	}
	if missing := missingRequired(snap.Questions, answered); len(missing) > 0 {
		return helper.ErrorWithDetails(c, http.StatusUnprocessableEntity, helper.CodeIncompleteResponse,
			"Required questions are missing answers", fiber.Map{"missing": missing})
	}

	answers, kinds, categories := buildAnswers(&snap, &req)

	policy, err := roleService.BuildRolePolicy(ctl.DB, tenantID, employeeID)
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to resolve role policy")
	}

	var population []float64
	if err := ctl.DB.Model(&resultModel.ResultModel{}).
		Where("result_tenant_id = ? AND result_template_id = ?", tenantID, tpl.TemplateID).
		Pluck("result_overall_score", &population).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to load population")
	}
	skillPops, err := ctl.skillPopulations(tenantID, tpl.TemplateID)
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to load population")
	}

	report, err := scoring.Score(scoring.Input{
		Snapshot:         snap,
		Answers:          answers,
		RolePolicy:       policy,
		Population:       population,
		SkillPopulations: skillPops,
		PercentileFloor:  configs.PercentileFloor,
	})
	if err != nil {
		correlationID := uuid.New()
		log.Printf("[SCORING ERROR] correlation=%s assignment=%s: %v", correlationID, assignment.AssignmentID, err)
		return helper.ErrorWithDetails(c, http.StatusInternalServerError, helper.CodeScoringFailed,
			"Scoring failed; the submission was not recorded", fiber.Map{"correlation_id": correlationID})
	}
	ins := insightService.Generate(&report, policy)

	now := time.Now()
	result, err := buildResult(tenantID, &assignment, &tpl, &report, &ins, &snap, policy, hash)
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to encode result")
	}

	response := model.ResponseModel{
		ResponseTenantID:     tenantID,
		ResponseAssignmentID: assignment.AssignmentID,
		ResponseStartedAt:    req.StartedAt,
		ResponseCompletedAt:  &now,
		ResponseHash:         hash,
		ResponseClientMeta:   datatypes.JSONMap(req.ClientMeta),
	}

	completionRate := 1.0
	if n := len(snap.Questions); n > 0 {
		answeredCount := 0
		for _, q := range snap.Questions {
			if answered[q.QuestionID] {
				answeredCount++
			}
		}
		completionRate = float64(answeredCount) / float64(n)
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&response).Error; err != nil {
			return err
		}
		answerRows := dto.ToAnswerModels(&req, response.ResponseID, kinds, categories)
		if len(answerRows) > 0 {
			if err := tx.Create(&answerRows).Error; err != nil {
				return err
			}
		}
		if err := tx.Create(result).Error; err != nil {
			return err
		}
		updates := map[string]any{
			"assignment_status":          model.StatusCompleted,
			"assignment_completed_at":    now,
			"assignment_completion_rate": completionRate,
		}
		if assignment.AssignmentStartedAt == nil {
			startedAt := now
			if req.StartedAt != nil {
				startedAt = *req.StartedAt
			}
			updates["assignment_started_at"] = startedAt
		}
		if req.TimeTakenSeconds != nil {
			updates["assignment_time_taken_seconds"] = *req.TimeTakenSeconds
		}
		return tx.Model(&model.AssignmentModel{}).
			Where("assignment_id = ?", assignment.AssignmentID).
			Updates(updates).Error
	}); err != nil {
		correlationID := uuid.New()
		log.Printf("[SUBMIT ERROR] correlation=%s assignment=%s: %v", correlationID, assignment.AssignmentID, err)
		return helper.ErrorWithDetails(c, http.StatusInternalServerError, helper.CodeScoringFailed,
			"Failed to record submission", fiber.Map{"correlation_id": correlationID})
	}

	if err := ctl.Dispatcher.AnnounceCompletion(c.UserContext(), assignment.AssignmentID); err != nil {
		log.Printf("[NOTIFY] completion hook failed for assignment %s: %v", assignment.AssignmentID, err)
	}

	return helper.SuccessWithCode(c, http.StatusCreated, dto.ToResultResponse(result))
}

// GET /:family/my-latest-result
func (ctl *AssignmentController) MyLatestResult(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	employeeID, err := helper.GetEmployeeIDFromToken(c)
	if err != nil {
		return err
	}

	var result resultModel.ResultModel
	err = ctl.DB.
		Joins("JOIN questionnaire_templates t ON t.template_id = questionnaire_results.result_template_id").
		Where("questionnaire_results.result_tenant_id = ? AND questionnaire_results.result_employee_id = ?", tenantID, employeeID).
		Where("t.template_kind IN ?", templateModel.KindsOf(ctl.Family)).
		Order("questionnaire_results.result_computed_at DESC").
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, helper.CodeNotFound, "No completed result yet")
		}
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to load result")
	}
	return helper.Success(c, dto.ToResultResponse(&result))
}

/* ========================================================
   Internals
======================================================== */

// buildAnswers maps wire answers onto the scoring union, tagging each
// with the kind and category from the snapshot. Answers referencing
// unknown questions are dropped.
func buildAnswers(snap *scoring.WeightSnapshot, req *dto.SubmitRequest) ([]scoring.Answer, map[uuid.UUID]string, map[uuid.UUID]string) {
	kinds := make(map[uuid.UUID]string, len(snap.Questions))
	categories := make(map[uuid.UUID]string, len(snap.Questions))
	for _, q := range snap.Questions {
		kinds[q.QuestionID] = q.Kind
		categories[q.QuestionID] = q.Category
	}

	answers := make([]scoring.Answer, 0, len(req.Responses))
	for _, a := range req.Responses {
		kind, known := kinds[a.QuestionID]
		if !known {
			continue
		}
		ans := scoring.Answer{
			QuestionID: a.QuestionID,
			Kind:       kind,
			Value:      a.Value,
			OptionID:   a.OptionID,
			OptionIDs:  a.OptionIDs,
		}
		if a.Text != nil {
			ans.Text = *a.Text
		}
		answers = append(answers, ans)
	}
	return answers, kinds, categories
}

// skillPopulations collects prior raw soft-skill scores for the tenant
// and template, keyed by skill code, so each skill can be ranked against
// the same cohort the overall percentile uses.
func (ctl *AssignmentController) skillPopulations(tenantID, templateID uuid.UUID) (map[string][]float64, error) {
	var rows []datatypes.JSON
	if err := ctl.DB.Model(&resultModel.ResultModel{}).
		Where("result_tenant_id = ? AND result_template_id = ?", tenantID, templateID).
		Where("result_soft_skills IS NOT NULL").
		Pluck("result_soft_skills", &rows).Error; err != nil {
		return nil, err
	}

	pops := map[string][]float64{}
	for _, raw := range rows {
		var skills map[string]scoring.SoftSkillScore
		if err := json.Unmarshal(raw, &skills); err != nil {
			continue
		}
		for code, ss := range skills {
			pops[code] = append(pops[code], ss.Raw)
		}
	}
	return pops, nil
}

// buildResult freezes the report, insights and the full scoring input
// into one immutable row.
func buildResult(
	tenantID uuid.UUID,
	assignment *model.AssignmentModel,
	tpl *templateModel.TemplateModel,
	report *scoring.Report,
	ins *insightService.Insights,
	snap *scoring.WeightSnapshot,
	policy []scoring.RoleSkillPolicy,
	hash string,
) (*resultModel.ResultModel, error) {
	categories, err := json.Marshal(report.Categories)
	if err != nil {
		return nil, err
	}
	strengths, err := json.Marshal(ins.Strengths)
	if err != nil {
		return nil, err
	}
	improvements, err := json.Marshal(ins.Improvements)
	if err != nil {
		return nil, err
	}
	recommendations, err := json.Marshal(ins.Recommendations)
	if err != nil {
		return nil, err
	}
	frozen, err := json.Marshal(fiber.Map{"snapshot": snap, "role_policy": policy})
	if err != nil {
		return nil, err
	}

	result := &resultModel.ResultModel{
		ResultTenantID:        tenantID,
		ResultAssignmentID:    assignment.AssignmentID,
		ResultEmployeeID:      assignment.AssignmentEmployeeID,
		ResultTemplateID:      tpl.TemplateID,
		ResultAttemptNumber:   assignment.AssignmentAttemptNumber,
		ResultOverallScore:    report.Overall,
		ResultPercentile:      report.Percentile,
		ResultRoleFit:         report.RoleFit,
		ResultCategories:      categories,
		ResultStrengths:       strengths,
		ResultImprovements:    improvements,
		ResultRecommendations: recommendations,
		ResultWeightSnapshot:  frozen,
		ResultResponseHash:    hash,
	}
	if report.Sentiment != "" {
		result.ResultSentiment = &report.Sentiment
	}
	if len(report.SoftSkills) > 0 {
		skills, err := json.Marshal(report.SoftSkills)
		if err != nil {
			return nil, err
		}
		result.ResultSoftSkills = skills
	}
	return result, nil
}
