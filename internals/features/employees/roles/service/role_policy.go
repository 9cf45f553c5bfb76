// file: internals/features/employees/roles/service/role_policy.go
package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	roleModel "moobee_backend/internals/features/employees/roles/model"
	scoring "moobee_backend/internals/features/questionnaire/scoring/service"
)

// PrimaryRoleID resolves the employee's primary role (falling back to any
// role when no primary flag is set). gorm.ErrRecordNotFound when the
// employee has no role at all.
func PrimaryRoleID(db *gorm.DB, tenantID, employeeID uuid.UUID) (uuid.UUID, error) {
	var row roleModel.EmployeeRoleModel
	err := db.
		Where("employee_role_tenant_id = ? AND employee_role_employee_id = ?", tenantID, employeeID).
		Order("employee_role_is_primary DESC, employee_role_created_at ASC").
		First(&row).Error
	if err != nil {
		return uuid.Nil, err
	}
	return row.EmployeeRoleRoleID, nil
}

// BuildRolePolicy loads the role's soft-skill policy in the shape the
// scoring engine consumes. A nil slice (no error) means no role context.
func BuildRolePolicy(db *gorm.DB, tenantID, employeeID uuid.UUID) ([]scoring.RoleSkillPolicy, error) {
	roleID, err := PrimaryRoleID(db, tenantID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return RolePolicy(db, tenantID, roleID)
}

// RolePolicy loads the policy rows for one role.
func RolePolicy(db *gorm.DB, tenantID, roleID uuid.UUID) ([]scoring.RoleSkillPolicy, error) {
	var rows []roleModel.RoleSoftSkillModel
	if err := db.Preload("RoleSoftSkillSkill").
		Where("role_soft_skill_tenant_id = ? AND role_soft_skill_role_id = ?", tenantID, roleID).
		Order("role_soft_skill_priority ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	policy := make([]scoring.RoleSkillPolicy, 0, len(rows))
	for _, r := range rows {
		code := r.RoleSoftSkillSkillID.String()
		if r.RoleSoftSkillSkill != nil && r.RoleSoftSkillSkill.SoftSkillCode != "" {
			code = r.RoleSoftSkillSkill.SoftSkillCode
		}
		policy = append(policy, scoring.RoleSkillPolicy{
			SkillCode:   code,
			Priority:    r.RoleSoftSkillPriority,
			Weight:      r.RoleSoftSkillWeight,
			Required:    r.RoleSoftSkillRequired,
			MinScore:    r.RoleSoftSkillMinScore,
			TargetScore: r.RoleSoftSkillTargetScore,
		})
	}
	return policy, nil
}
