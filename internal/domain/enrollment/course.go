package enrollment

import "time"

type Course struct {
	ID            int64   `gorm:"column:id;primaryKey" json:"id"`
	Title         string  `gorm:"column:title;not null" json:"title"`
	CourseType    string  `gorm:"column:course_type;index" json:"course_type"`
	CreditHours   float64 `gorm:"column:credit_hours;not null;default:0" json:"credit_hours"`
	Video         bool    `gorm:"column:video;not null;default:false" json:"video"`
	AudioIncluded bool    `gorm:"column:audio_included;not null;default:false" json:"audio_included"`
}

func (Course) TableName() string { return "courses" }

// CourseEnrollment is a learner's individual assignment to a course. A nil
// TrainingPlanEnrollmentID means the assignment is standalone or
// curriculum-linked.
type CourseEnrollment struct {
	ID                       int64      `gorm:"column:id;primaryKey" json:"id"`
	UserID                   int64      `gorm:"column:user_id;not null;index" json:"user_id"`
	CourseID                 int64      `gorm:"column:course_id;not null;index" json:"course_id"`
	RequiredByDate           *time.Time `gorm:"column:required_by_date" json:"required_by_date,omitempty"`
	Completed                *time.Time `gorm:"column:completed" json:"completed,omitempty"`
	Deleted                  bool       `gorm:"column:deleted;not null;default:false" json:"deleted"`
	AvailableOn              *time.Time `gorm:"column:available_on" json:"available_on,omitempty"`
	AvailableUntil           *time.Time `gorm:"column:available_until" json:"available_until,omitempty"`
	Waitlisted               bool       `gorm:"column:waitlisted;not null;default:false" json:"waitlisted"`
	WaitingOnPrerequisite    bool       `gorm:"column:waiting_on_prerequisite;not null;default:false" json:"waiting_on_prerequisite"`
	TrainingPlanEnrollmentID *int64     `gorm:"column:training_plan_enrollment_id;index" json:"training_plan_enrollment_id,omitempty"`
	ModuleGroupID            *int64     `gorm:"column:module_group_id;index" json:"module_group_id,omitempty"`
}

func (CourseEnrollment) TableName() string { return "course_enrollments" }

// Pending reports whether the enrollment is not deleted, required and incomplete.
func (ce *CourseEnrollment) Pending() bool {
	return ce != nil && !ce.Deleted && ce.RequiredByDate != nil && ce.Completed == nil
}
