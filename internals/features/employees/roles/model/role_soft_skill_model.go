// file: internals/features/employees/roles/model/role_soft_skill_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// SoftSkillModel maps the `soft_skills` table.
type SoftSkillModel struct {
	SoftSkillID       uuid.UUID `json:"soft_skill_id" gorm:"column:soft_skill_id;type:uuid;default:gen_random_uuid();primaryKey"`
	SoftSkillTenantID uuid.UUID `json:"soft_skill_tenant_id" gorm:"column:soft_skill_tenant_id;type:uuid;not null;uniqueIndex:uq_soft_skills_tenant_code,priority:1"`

	SoftSkillCode        string  `json:"soft_skill_code" gorm:"column:soft_skill_code;type:varchar(64);not null;uniqueIndex:uq_soft_skills_tenant_code,priority:2"`
	SoftSkillName        string  `json:"soft_skill_name" gorm:"column:soft_skill_name;type:varchar(120);not null"`
	SoftSkillDescription *string `json:"soft_skill_description" gorm:"column:soft_skill_description;type:text"`

	SoftSkillCreatedAt time.Time `json:"soft_skill_created_at" gorm:"column:soft_skill_created_at;not null;autoCreateTime"`
	SoftSkillUpdatedAt time.Time `json:"soft_skill_updated_at" gorm:"column:soft_skill_updated_at;not null;autoUpdateTime"`
}

func (SoftSkillModel) TableName() string {
	return "soft_skills"
}

// RoleSoftSkillModel maps the `role_soft_skills` table: the per-role
// skill policy consumed by scoring. (role, soft_skill) is unique;
// priorities need not be.
type RoleSoftSkillModel struct {
	RoleSoftSkillID       uuid.UUID `json:"role_soft_skill_id" gorm:"column:role_soft_skill_id;type:uuid;default:gen_random_uuid();primaryKey"`
	RoleSoftSkillTenantID uuid.UUID `json:"role_soft_skill_tenant_id" gorm:"column:role_soft_skill_tenant_id;type:uuid;not null;index"`

	RoleSoftSkillRoleID  uuid.UUID `json:"role_soft_skill_role_id" gorm:"column:role_soft_skill_role_id;type:uuid;not null;uniqueIndex:uq_role_soft_skills_role_skill,priority:1"`
	RoleSoftSkillSkillID uuid.UUID `json:"role_soft_skill_skill_id" gorm:"column:role_soft_skill_skill_id;type:uuid;not null;uniqueIndex:uq_role_soft_skills_role_skill,priority:2"`

	RoleSoftSkillPriority    int     `json:"role_soft_skill_priority" gorm:"column:role_soft_skill_priority;not null;default:4"` // 1..7, 1 = most important
	RoleSoftSkillWeight      float64 `json:"role_soft_skill_weight" gorm:"column:role_soft_skill_weight;type:numeric(6,3);not null;default:0"` // 0 → derived from priority
	RoleSoftSkillRequired    bool    `json:"role_soft_skill_required" gorm:"column:role_soft_skill_required;not null;default:false"`
	RoleSoftSkillMinScore    float64 `json:"role_soft_skill_min_score" gorm:"column:role_soft_skill_min_score;type:numeric(5,2);not null;default:0"`
	RoleSoftSkillTargetScore float64 `json:"role_soft_skill_target_score" gorm:"column:role_soft_skill_target_score;type:numeric(5,2);not null;default:70"`

	RoleSoftSkillCreatedAt time.Time `json:"role_soft_skill_created_at" gorm:"column:role_soft_skill_created_at;not null;autoCreateTime"`
	RoleSoftSkillUpdatedAt time.Time `json:"role_soft_skill_updated_at" gorm:"column:role_soft_skill_updated_at;not null;autoUpdateTime"`

	RoleSoftSkillSkill *SoftSkillModel `json:"role_soft_skill_skill,omitempty" gorm:"foreignKey:RoleSoftSkillSkillID;references:SoftSkillID"`
}

func (RoleSoftSkillModel) TableName() string {
	return "role_soft_skills"
}

// EmployeeRoleModel maps the `employee_roles` table: a normalized
// many-to-many with a primary-role flag.
type EmployeeRoleModel struct {
	EmployeeRoleID       uuid.UUID `json:"employee_role_id" gorm:"column:employee_role_id;type:uuid;default:gen_random_uuid();primaryKey"`
	EmployeeRoleTenantID uuid.UUID `json:"employee_role_tenant_id" gorm:"column:employee_role_tenant_id;type:uuid;not null;index"`

	EmployeeRoleEmployeeID uuid.UUID `json:"employee_role_employee_id" gorm:"column:employee_role_employee_id;type:uuid;not null;uniqueIndex:uq_employee_roles_pair,priority:1"`
	EmployeeRoleRoleID     uuid.UUID `json:"employee_role_role_id" gorm:"column:employee_role_role_id;type:uuid;not null;uniqueIndex:uq_employee_roles_pair,priority:2"`

	EmployeeRoleIsPrimary bool `json:"employee_role_is_primary" gorm:"column:employee_role_is_primary;not null;default:false"`

	EmployeeRoleCreatedAt time.Time `json:"employee_role_created_at" gorm:"column:employee_role_created_at;not null;autoCreateTime"`
}

func (EmployeeRoleModel) TableName() string {
	return "employee_roles"
}
