package enrollment

import (
	"fmt"
	"strings"
)

// ModuleGroupType categorises a module group. The set is closed; any other
// stored value is a data integrity problem.
type ModuleGroupType int

const (
	ModuleGroupTypeModules        ModuleGroupType = 1
	ModuleGroupTypePreAssessment  ModuleGroupType = 2
	ModuleGroupTypePostAssessment ModuleGroupType = 3
)

func (t ModuleGroupType) String() string {
	switch t {
	case ModuleGroupTypeModules:
		return "Modules"
	case ModuleGroupTypePreAssessment:
		return "PreAssessment"
	case ModuleGroupTypePostAssessment:
		return "PostAssessment"
	default:
		return fmt.Sprintf("ModuleGroupType(%d)", int(t))
	}
}

type CurriculumType string

const CurriculumTypeCurriculum CurriculumType = "Curriculum"

type SuiteType string

const (
	SuiteTypeCurriculum   SuiteType = "Curriculum"
	SuiteTypeTrainingPlan SuiteType = "TrainingPlan"
)

// CourseEnrollmentFilter narrows the open (standalone) item query.
type CourseEnrollmentFilter int

const (
	FilterAll CourseEnrollmentFilter = iota
	FilterExcludeCurricula
)

func (f CourseEnrollmentFilter) String() string {
	switch f {
	case FilterAll:
		return "all"
	case FilterExcludeCurricula:
		return "exclude_curricula"
	default:
		return fmt.Sprintf("CourseEnrollmentFilter(%d)", int(f))
	}
}

// ParseCourseEnrollmentFilter accepts "all" and "exclude_curricula" in any
// case, with "-" or "_" separators. Empty input means FilterAll.
func ParseCourseEnrollmentFilter(s string) (CourseEnrollmentFilter, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "-", "_")
	switch norm {
	case "", "all":
		return FilterAll, nil
	case "exclude_curricula", "excludecurricula":
		return FilterExcludeCurricula, nil
	default:
		return FilterAll, InvalidArgumentError(fmt.Sprintf("unknown course enrollment filter %q", s))
	}
}

type CourseFormat string

const (
	CourseFormatText       CourseFormat = "Text"
	CourseFormatVideo      CourseFormat = "Video"
	CourseFormatAudio      CourseFormat = "Audio"
	CourseFormatMultimedia CourseFormat = "Multimedia"
)
