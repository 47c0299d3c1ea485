package enrollment

import "time"

// PathTrainingPlanType is the training plan type name whose enrollments are
// sequenced through module groups.
const PathTrainingPlanType = "Path"

type TrainingPlan struct {
	ID                 int64  `gorm:"column:id;primaryKey" json:"id"`
	Title              string `gorm:"column:title;not null" json:"title"`
	Description        string `gorm:"column:description" json:"description"`
	Approved           bool   `gorm:"column:approved;not null;default:false" json:"approved"`
	TrainingPlanTypeID int64  `gorm:"column:training_plan_type_id;not null;index" json:"training_plan_type_id"`
}

func (TrainingPlan) TableName() string { return "training_plans" }

type TrainingPlanType struct {
	ID     int64  `gorm:"column:id;primaryKey" json:"id"`
	Name   string `gorm:"column:name;not null" json:"name"`
	Active bool   `gorm:"column:active;not null" json:"active"`
}

func (TrainingPlanType) TableName() string { return "training_plan_types" }

type TrainingPlanEnrollment struct {
	ID             int64      `gorm:"column:id;primaryKey" json:"id"`
	UserID         int64      `gorm:"column:user_id;not null;index" json:"user_id"`
	TrainingPlanID int64      `gorm:"column:training_plan_id;not null;index" json:"training_plan_id"`
	Deleted        bool       `gorm:"column:deleted;not null;default:false" json:"deleted"`
	Completed      *time.Time `gorm:"column:completed" json:"completed,omitempty"`
}

func (TrainingPlanEnrollment) TableName() string { return "training_plan_enrollments" }

// ModuleGroup is an ordered section of a training plan's course sequence.
type ModuleGroup struct {
	ID                 int64           `gorm:"column:id;primaryKey" json:"id"`
	TrainingPlanID     int64           `gorm:"column:training_plan_id;index" json:"training_plan_id"`
	Order              int             `gorm:"column:group_order;not null;default:0" json:"order"`
	EnforceModuleOrder bool            `gorm:"column:enforce_module_order;not null;default:false" json:"enforce_module_order"`
	ModuleGroupTypeID  ModuleGroupType `gorm:"column:module_group_type_id;not null" json:"module_group_type_id"`
}

func (ModuleGroup) TableName() string { return "module_groups" }

type ModuleGroupCourse struct {
	ID            int64 `gorm:"column:id;primaryKey" json:"id"`
	ModuleGroupID int64 `gorm:"column:module_group_id;not null;index" json:"module_group_id"`
	CourseID      int64 `gorm:"column:course_id;not null;index" json:"course_id"`
	Order         int   `gorm:"column:course_order;not null;default:0" json:"order"`
}

func (ModuleGroupCourse) TableName() string { return "module_group_courses" }
