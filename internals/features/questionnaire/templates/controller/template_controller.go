// file: internals/features/questionnaire/templates/controller/template_controller.go
package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "moobee_backend/internals/features/questionnaire/templates/dto"
	model "moobee_backend/internals/features/questionnaire/templates/model"
	helper "moobee_backend/internals/helpers"
)

/* ========================================================
   Controller
======================================================== */

// TemplateController serves one questionnaire family; the same type is
// mounted under /assessments and /engagement with a different Family.
type TemplateController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Family    string
}

func NewTemplateController(db *gorm.DB, family string) *TemplateController {
	return &TemplateController{
		DB:        db,
		Validator: validator.New(),
		Family:    family,
	}
}

/* ========================================================
   Helpers
======================================================== */

// templateInUse reports whether any assignment references the template.
func templateInUse(db *gorm.DB, templateID uuid.UUID) (bool, error) {
	var n int64
	err := db.Table("questionnaire_assignments AS a").
		Joins("JOIN questionnaire_campaigns AS c ON c.campaign_id = a.assignment_campaign_id").
		Where("c.campaign_template_id = ?", templateID).
		Count(&n).Error
	return n > 0, err
}

func (ctl *TemplateController) findTenantTemplate(c *fiber.Ctx, id uuid.UUID, withNested bool) (*model.TemplateModel, error) {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return nil, err
	}

	q := ctl.DB.Where("template_tenant_id = ? AND template_kind IN ?", tenantID, model.KindsOf(ctl.Family))
	if withNested {
		q = q.Preload("TemplateQuestions", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_position ASC")
		}).Preload("TemplateQuestions.QuestionOptions", func(db *gorm.DB) *gorm.DB {
			return db.Order("option_position ASC")
		}).Preload("TemplateWeights")
	}

	var m model.TemplateModel
	if err := q.First(&m, "template_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// persistWeights stores per-question target mappings after the questions
// themselves received their ids.
func persistWeights(tx *gorm.DB, tpl *model.TemplateModel, reqs []dto.QuestionRequest) error {
	var rows []model.QuestionWeightModel
	for i, qr := range reqs {
		if i >= len(tpl.TemplateQuestions) {
			break
		}
		qid := tpl.TemplateQuestions[i].QuestionID
		for _, w := range qr.Weights {
			val := w.Value
			if val == 0 {
				val = 1
			}
			rows = append(rows, model.QuestionWeightModel{
				WeightTemplateID: tpl.TemplateID,
				WeightQuestionID: qid,
				WeightTargetKind: w.TargetKind,
				WeightTargetCode: strings.TrimSpace(w.TargetCode),
				WeightValue:      val,
				WeightIsReversed: w.IsReversed,
			})
		}
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

/* ========================================================
   Handlers
======================================================== */

// GET /:family/templates
// Query: limit, page, type, active, search, sort_by, sort_order
func (ctl *TemplateController) List(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}

	var q dto.ListTemplateQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.Error(c, http.StatusBadRequest, helper.CodeValidation, "Invalid query parameters")
	}
	if err := ctl.Validator.Struct(&q); err != nil {
		return helper.ValidationError(c, err)
	}

	page := helper.ParsePage(c, "created_at", "desc")

	qry := ctl.DB.Model(&model.TemplateModel{}).
		Where("template_tenant_id = ? AND template_kind IN ?", tenantID, model.KindsOf(ctl.Family))

	if q.Type != nil && *q.Type != "" {
		if model.FamilyOf(*q.Type) != ctl.Family {
			return helper.Error(c, http.StatusBadRequest, helper.CodeValidation, "type does not belong to this questionnaire family")
		}
		qry = qry.Where("template_kind = ?", *q.Type)
	}
	if q.Active != nil {
		qry = qry.Where("template_is_active = ?", *q.Active)
	}
	if q.Search != nil && strings.TrimSpace(*q.Search) != "" {
		like := "%" + strings.ToLower(strings.TrimSpace(*q.Search)) + "%"
		qry = qry.Where("LOWER(template_name) LIKE ?", like)
	}

	var total int64
	if err := qry.Count(&total).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to count templates")
	}

	order := page.OrderClause(map[string]string{
		"created_at": "template_created_at",
		"name":       "template_name",
	}, "template_created_at")

	var items []model.TemplateModel
	if err := qry.Order(order).Limit(page.PerPage).Offset(page.Offset()).Find(&items).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to list templates")
	}

	resp := make([]dto.TemplateResponse, 0, len(items))
	for i := range items {
		resp = append(resp, dto.ToTemplateResponse(&items[i], false))
	}

	return helper.Success(c, fiber.Map{
		"templates":  resp,
		"pagination": helper.NewPageMeta(page, total),
	})
}

// GET /:family/templates/:id
func (ctl *TemplateController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, helper.CodeValidation, "Invalid template id")
	}

	m, err := ctl.findTenantTemplate(c, id, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, helper.CodeNotFound, "Template not found")
		}
		return err
	}
	return helper.Success(c, dto.ToTemplateResponse(m, true))
}

// POST /:family/templates
func (ctl *TemplateController) Create(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, helper.CodeValidation, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if model.FamilyOf(req.Kind) != ctl.Family {
		return helper.Error(c, http.StatusBadRequest, helper.CodeValidation, "template_kind does not belong to this questionnaire family")
	}

	m := req.ToModel(tenantID)
	if issues := model.ValidateQuestions(m.TemplateKind, m.TemplateQuestions); len(issues) > 0 {
		return helper.ErrorWithDetails(c, http.StatusBadRequest, helper.CodeValidation, "Invalid questions", issues)
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		return persistWeights(tx, &m, req.Questions)
	}); err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to create template")
	}

	return helper.SuccessWithCode(c, http.StatusCreated, dto.ToTemplateResponse(&m, true))
}

// PUT /:family/templates/:id
// Rejected with TEMPLATE_IN_USE once any assignment references the
// template; the caller must duplicate instead.
func (ctl *TemplateController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, helper.CodeValidation, "Invalid template id")
	}

	m, err := ctl.findTenantTemplate(c, id, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, helper.CodeNotFound, "Template not found")
		}
		return err
	}

	inUse, err := templateInUse(ctl.DB, m.TemplateID)
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to check template usage")
	}
	if inUse {
		return helper.ErrorWithDetails(c, http.StatusConflict, helper.CodeTemplateInUse,
			"Template is referenced by a campaign; duplicate it instead", fiber.Map{"template_id": m.TemplateID})
	}

	var req dto.UpdateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, helper.CodeValidation, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if req.Name != nil {
			m.TemplateName = strings.TrimSpace(*req.Name)
		}
		if req.Language != nil {
			m.TemplateLanguage = *req.Language
		}
		if req.Description != nil {
			m.TemplateDescription = req.Description
		}
		if req.SuggestedRoles != nil {
			m.TemplateSuggestedRoles = req.SuggestedRoles
		}
		if req.SuggestedFrequency != nil {
			m.TemplateSuggestedFrequency = req.SuggestedFrequency
		}
		if req.IsActive != nil {
			m.TemplateIsActive = *req.IsActive
		}
		m.TemplateVersion++

		if req.Questions != nil {
			// wholesale question replacement
			var qIDs []uuid.UUID
			if err := tx.Model(&model.QuestionModel{}).
				Where("question_template_id = ?", m.TemplateID).
				Pluck("question_id", &qIDs).Error; err != nil {
				return err
			}
			if len(qIDs) > 0 {
				if err := tx.Where("option_question_id IN ?", qIDs).Delete(&model.QuestionOptionModel{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("weight_template_id = ?", m.TemplateID).Delete(&model.QuestionWeightModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("question_template_id = ?", m.TemplateID).Delete(&model.QuestionModel{}).Error; err != nil {
				return err
			}

			m.TemplateQuestions = nil
			for _, qr := range req.Questions {
				m.TemplateQuestions = append(m.TemplateQuestions, qr.ToModel(m.TemplateID))
			}
			if issues := model.ValidateQuestions(m.TemplateKind, m.TemplateQuestions); len(issues) > 0 {
				return &questionValidationError{issues}
			}
			if len(m.TemplateQuestions) > 0 {
				if err := tx.Create(&m.TemplateQuestions).Error; err != nil {
					return err
				}
			}
			if err := persistWeights(tx, m, req.Questions); err != nil {
				return err
			}
		}

		return tx.Save(m).Error
	}); err != nil {
		var qve *questionValidationError
		if errors.As(err, &qve) {
			return helper.ErrorWithDetails(c, http.StatusBadRequest, helper.CodeValidation, "Invalid questions", qve.issues)
		}
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to update template")
	}

	return helper.Success(c, dto.ToTemplateResponse(m, false))
}

// POST /:family/templates/:id/publish  and  /unpublish
func (ctl *TemplateController) Publish(c *fiber.Ctx) error   { return ctl.setActive(c, true) }
func (ctl *TemplateController) Unpublish(c *fiber.Ctx) error { return ctl.setActive(c, false) }

func (ctl *TemplateController) setActive(c *fiber.Ctx, active bool) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, helper.CodeValidation, "Invalid template id")
	}
	m, err := ctl.findTenantTemplate(c, id, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, helper.CodeNotFound, "Template not found")
		}
		return err
	}
	if err := ctl.DB.Model(m).Update("template_is_active", active).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to update template")
	}
	m.TemplateIsActive = active
	return helper.Success(c, dto.ToTemplateResponse(m, false))
}

// POST /:family/templates/:id/duplicate
// Deep copy with fresh ids, version=1 and usage reset.
func (ctl *TemplateController) Duplicate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, helper.CodeValidation, "Invalid template id")
	}

	src, err := ctl.findTenantTemplate(c, id, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, helper.CodeNotFound, "Template not found")
		}
		return err
	}

	cp := model.TemplateModel{
		TemplateTenantID:           src.TemplateTenantID,
		TemplateName:               src.TemplateName + " (copy)",
		TemplateKind:               src.TemplateKind,
		TemplateLanguage:           src.TemplateLanguage,
		TemplateDescription:        src.TemplateDescription,
		TemplateIsActive:           src.TemplateIsActive,
		TemplateVersion:            1,
		TemplateSuggestedRoles:     src.TemplateSuggestedRoles,
		TemplateSuggestedFrequency: src.TemplateSuggestedFrequency,
		TemplateAIConfig:           src.TemplateAIConfig,
	}

	// old question id → index, so weights can be re-pointed
	oldIndex := make(map[uuid.UUID]int, len(src.TemplateQuestions))
	for i, q := range src.TemplateQuestions {
		oldIndex[q.QuestionID] = i
		nq := model.QuestionModel{
			QuestionText:       q.QuestionText,
			QuestionCategory:   q.QuestionCategory,
			QuestionKind:       q.QuestionKind,
			QuestionScaleMin:   q.QuestionScaleMin,
			QuestionScaleMax:   q.QuestionScaleMax,
			QuestionWeight:     q.QuestionWeight,
			QuestionIsRequired: q.QuestionIsRequired,
			QuestionIsReversed: q.QuestionIsReversed,
			QuestionPosition:   q.QuestionPosition,
		}
		for _, o := range q.QuestionOptions {
			nq.QuestionOptions = append(nq.QuestionOptions, model.QuestionOptionModel{
				OptionText:     o.OptionText,
				OptionValue:    o.OptionValue,
				OptionPosition: o.OptionPosition,
			})
		}
		cp.TemplateQuestions = append(cp.TemplateQuestions, nq)
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&cp).Error; err != nil {
			return err
		}
		var weights []model.QuestionWeightModel
		for _, w := range src.TemplateWeights {
			idx, ok := oldIndex[w.WeightQuestionID]
			if !ok || idx >= len(cp.TemplateQuestions) {
				continue
			}
			weights = append(weights, model.QuestionWeightModel{
				WeightTemplateID: cp.TemplateID,
				WeightQuestionID: cp.TemplateQuestions[idx].QuestionID,
				WeightTargetKind: w.WeightTargetKind,
				WeightTargetCode: w.WeightTargetCode,
				WeightValue:      w.WeightValue,
				WeightIsReversed: w.WeightIsReversed,
			})
		}
		if len(weights) > 0 {
			return tx.Create(&weights).Error
		}
		return nil
	}); err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to duplicate template")
	}

	return helper.SuccessWithCode(c, http.StatusCreated, dto.ToTemplateResponse(&cp, true))
}

// DELETE /:family/templates/:id
// Hard delete when unreferenced, soft delete (active=false) otherwise.
func (ctl *TemplateController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, helper.CodeValidation, "Invalid template id")
	}

	m, err := ctl.findTenantTemplate(c, id, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, helper.CodeNotFound, "Template not found")
		}
		return err
	}

	inUse, err := templateInUse(ctl.DB, m.TemplateID)
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to check template usage")
	}

	if inUse {
		if err := ctl.DB.Model(m).Update("template_is_active", false).Error; err != nil {
			return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to retire template")
		}
		return helper.Success(c, fiber.Map{"template_id": m.TemplateID, "soft_deleted": true})
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var qIDs []uuid.UUID
		if err := tx.Model(&model.QuestionModel{}).
			Where("question_template_id = ?", m.TemplateID).
			Pluck("question_id", &qIDs).Error; err != nil {
			return err
		}
		if len(qIDs) > 0 {
			if err := tx.Where("option_question_id IN ?", qIDs).Delete(&model.QuestionOptionModel{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("weight_template_id = ?", m.TemplateID).Delete(&model.QuestionWeightModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_template_id = ?", m.TemplateID).Delete(&model.QuestionModel{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(m).Error
	}); err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to delete template")
	}

	return helper.Success(c, fiber.Map{"template_id": m.TemplateID, "soft_deleted": false})
}

/* ========================================================
   internal
======================================================== */

type questionValidationError struct {
	issues []model.QuestionIssue
}

func (e *questionValidationError) Error() string { return "invalid questions" }
