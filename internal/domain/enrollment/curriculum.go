package enrollment

type Curriculum struct {
	ID             int64          `gorm:"column:id;primaryKey" json:"id"`
	Name           string         `gorm:"column:name;not null" json:"name"`
	CurriculumType CurriculumType `gorm:"column:curriculum_type;not null;index" json:"curriculum_type"`
}

func (Curriculum) TableName() string { return "curricula" }

type CurriculumEnrollment struct {
	ID           int64 `gorm:"column:id;primaryKey" json:"id"`
	UserID       int64 `gorm:"column:user_id;not null;index" json:"user_id"`
	CurriculumID int64 `gorm:"column:curriculum_id;not null;index" json:"curriculum_id"`
	Deleted      bool  `gorm:"column:deleted;not null;default:false" json:"deleted"`
}

func (CurriculumEnrollment) TableName() string { return "curriculum_enrollments" }

// CurriculumEnrollmentCourseEnrollment links a curriculum enrollment to one
// of the learner's course enrollments.
type CurriculumEnrollmentCourseEnrollment struct {
	ID                     int64 `gorm:"column:id;primaryKey" json:"id"`
	CurriculumEnrollmentID int64 `gorm:"column:curriculum_enrollment_id;not null;index" json:"curriculum_enrollment_id"`
	CourseEnrollmentID     int64 `gorm:"column:course_enrollment_id;not null;index" json:"course_enrollment_id"`
}

func (CurriculumEnrollmentCourseEnrollment) TableName() string {
	return "curriculum_enrollment_course_enrollments"
}

type CurriculumCourse struct {
	ID           int64 `gorm:"column:id;primaryKey" json:"id"`
	CurriculumID int64 `gorm:"column:curriculum_id;not null;index" json:"curriculum_id"`
	CourseID     int64 `gorm:"column:course_id;not null;index" json:"course_id"`
	SortOrder    int   `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
}

func (CurriculumCourse) TableName() string { return "curriculum_courses" }
