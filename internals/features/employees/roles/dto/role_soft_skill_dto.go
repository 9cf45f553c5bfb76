// file: internals/features/employees/roles/dto/role_soft_skill_dto.go
package dto

import (
	"github.com/google/uuid"

	model "moobee_backend/internals/features/employees/roles/model"
)

/* =========================================================
   1) REQUEST DTO
   ========================================================= */

type RoleSoftSkillRequest struct {
	SkillID     uuid.UUID `json:"role_soft_skill_skill_id" validate:"required"`
	Priority    int       `json:"role_soft_skill_priority" validate:"required,min=1,max=7"`
	Weight      *float64  `json:"role_soft_skill_weight" validate:"omitempty,min=0"`
	Required    bool      `json:"role_soft_skill_required"`
	MinScore    *float64  `json:"role_soft_skill_min_score" validate:"omitempty,min=0,max=100"`
	TargetScore *float64  `json:"role_soft_skill_target_score" validate:"omitempty,min=0,max=100"`
}

// PUT body: replaces the role's profile wholesale.
type PutRoleSoftSkillsRequest struct {
	Skills []RoleSoftSkillRequest `json:"skills" validate:"required,min=1,dive"`
}

/* =========================================================
   2) RESPONSE DTO
   ========================================================= */

type RoleSoftSkillResponse struct {
	RoleSoftSkillID uuid.UUID `json:"role_soft_skill_id"`
	RoleID          uuid.UUID `json:"role_soft_skill_role_id"`
	SkillID         uuid.UUID `json:"role_soft_skill_skill_id"`
	SkillCode       string    `json:"role_soft_skill_skill_code,omitempty"`
	SkillName       string    `json:"role_soft_skill_skill_name,omitempty"`
	Priority        int       `json:"role_soft_skill_priority"`
	Weight          float64   `json:"role_soft_skill_weight"`
	Required        bool      `json:"role_soft_skill_required"`
	MinScore        float64   `json:"role_soft_skill_min_score"`
	TargetScore     float64   `json:"role_soft_skill_target_score"`
}

func ToRoleSoftSkillResponse(m *model.RoleSoftSkillModel) RoleSoftSkillResponse {
	resp := RoleSoftSkillResponse{
		RoleSoftSkillID: m.RoleSoftSkillID,
		RoleID:          m.RoleSoftSkillRoleID,
		SkillID:         m.RoleSoftSkillSkillID,
		Priority:        m.RoleSoftSkillPriority,
		Weight:          m.RoleSoftSkillWeight,
		Required:        m.RoleSoftSkillRequired,
		MinScore:        m.RoleSoftSkillMinScore,
		TargetScore:     m.RoleSoftSkillTargetScore,
	}
	if m.RoleSoftSkillSkill != nil {
		resp.SkillCode = m.RoleSoftSkillSkill.SoftSkillCode
		resp.SkillName = m.RoleSoftSkillSkill.SoftSkillName
	}
	return resp
}
