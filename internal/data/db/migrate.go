package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/enrollment-eligibility/internal/domain/enrollment"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&enrollment.Course{},
		&enrollment.CourseEnrollment{},

		&enrollment.TrainingPlanType{},
		&enrollment.TrainingPlan{},
		&enrollment.TrainingPlanEnrollment{},
		&enrollment.ModuleGroup{},
		&enrollment.ModuleGroupCourse{},

		&enrollment.Curriculum{},
		&enrollment.CurriculumEnrollment{},
		&enrollment.CurriculumEnrollmentCourseEnrollment{},
		&enrollment.CurriculumCourse{},
	)
}

// EnsureEnrollmentIndexes adds the composite indexes the pending-item queries
// filter and join on. Both postgres and sqlite accept this syntax.
func EnsureEnrollmentIndexes(db *gorm.DB) error {
	stmts := []struct {
		name string
		sql  string
	}{
		{
			name: "idx_course_enrollment_user_pending",
			sql: `CREATE INDEX IF NOT EXISTS idx_course_enrollment_user_pending
				ON course_enrollments (user_id, deleted, completed, required_by_date);`,
		},
		{
			name: "idx_module_group_course_group_course",
			sql: `CREATE INDEX IF NOT EXISTS idx_module_group_course_group_course
				ON module_group_courses (module_group_id, course_id);`,
		},
		{
			name: "idx_curriculum_course_curriculum_course",
			sql: `CREATE INDEX IF NOT EXISTS idx_curriculum_course_curriculum_course
				ON curriculum_courses (curriculum_id, course_id);`,
		},
	}
	for _, s := range stmts {
		if err := db.Exec(s.sql).Error; err != nil {
			return fmt.Errorf("create %s: %w", s.name, err)
		}
	}
	return nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating enrollment tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsureEnrollmentIndexes(s.db); err != nil {
		s.log.Error("Enrollment index migration failed", "error", err)
		return err
	}
	return nil
}
