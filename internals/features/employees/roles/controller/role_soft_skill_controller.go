// file: internals/features/employees/roles/controller/role_soft_skill_controller.go
package controller

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "moobee_backend/internals/features/employees/roles/dto"
	model "moobee_backend/internals/features/employees/roles/model"
	helper "moobee_backend/internals/helpers"
)

type RoleSoftSkillController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewRoleSoftSkillController(db *gorm.DB) *RoleSoftSkillController {
	return &RoleSoftSkillController{DB: db, Validator: validator.New()}
}

// GET /roles/:roleId/soft-skills
func (ctl *RoleSoftSkillController) List(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	roleID, err := uuid.Parse(c.Params("roleId"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, helper.CodeValidation, "Invalid role id")
	}

	var rows []model.RoleSoftSkillModel
	if err := ctl.DB.Preload("RoleSoftSkillSkill").
		Where("role_soft_skill_tenant_id = ? AND role_soft_skill_role_id = ?", tenantID, roleID).
		Order("role_soft_skill_priority ASC").
		Find(&rows).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to load role profile")
	}

	resp := make([]dto.RoleSoftSkillResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.ToRoleSoftSkillResponse(&rows[i]))
	}
	return helper.Success(c, fiber.Map{"role_id": roleID, "skills": resp})
}

// PUT /roles/:roleId/soft-skills
// Replaces the role's soft-skill profile wholesale.
func (ctl *RoleSoftSkillController) Put(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	roleID, err := uuid.Parse(c.Params("roleId"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, helper.CodeValidation, "Invalid role id")
	}

	var req dto.PutRoleSoftSkillsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, helper.CodeValidation, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	// (role, skill) must be unique within the payload too
	seen := map[uuid.UUID]bool{}
	for _, s := range req.Skills {
		if seen[s.SkillID] {
			return helper.ErrorWithDetails(c, http.StatusBadRequest, helper.CodeValidation,
				"Duplicate soft skill in payload", fiber.Map{"skill_id": s.SkillID})
		}
		seen[s.SkillID] = true
	}

	var rows []model.RoleSoftSkillModel
	for _, s := range req.Skills {
		row := model.RoleSoftSkillModel{
			RoleSoftSkillTenantID: tenantID,
			RoleSoftSkillRoleID:   roleID,
			RoleSoftSkillSkillID:  s.SkillID,
			RoleSoftSkillPriority: s.Priority,
			RoleSoftSkillRequired: s.Required,
		}
		if s.Weight != nil {
			row.RoleSoftSkillWeight = *s.Weight
		}
		if s.MinScore != nil {
			row.RoleSoftSkillMinScore = *s.MinScore
		}
		if s.TargetScore != nil {
			row.RoleSoftSkillTargetScore = *s.TargetScore
		} else {
			row.RoleSoftSkillTargetScore = 70
		}
		rows = append(rows, row)
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_soft_skill_tenant_id = ? AND role_soft_skill_role_id = ?", tenantID, roleID).
			Delete(&model.RoleSoftSkillModel{}).Error; err != nil {
			return err
		}
		return tx.Create(&rows).Error
	}); err != nil {
		return helper.Error(c, http.StatusInternalServerError, helper.CodeInternal, "Failed to save role profile")
	}

	resp := make([]dto.RoleSoftSkillResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.ToRoleSoftSkillResponse(&rows[i]))
	}
	return helper.Success(c, fiber.Map{"role_id": roleID, "skills": resp})
}
