package enrollment

import "time"

// ItemRow is the flat record produced by the retrieval queries. It carries the
// module-group metadata the sequencing evaluator needs; ProjectItem drops it.
type ItemRow struct {
	SuiteID int64 `gorm:"column:suite_id" json:"suite_id,omitempty"`

	CourseEnrollmentID int64      `gorm:"column:course_enrollment_id" json:"course_enrollment_id"`
	CourseID           int64      `gorm:"column:course_id" json:"course_id"`
	CourseType         string     `gorm:"column:course_type" json:"course_type"`
	UserID             int64      `gorm:"column:user_id" json:"user_id"`
	DueDate            *time.Time `gorm:"column:due_date" json:"due_date,omitempty"`
	CourseTitle        string     `gorm:"column:course_title" json:"course_title"`
	SortOrder          *int       `gorm:"column:sort_order" json:"sort_order,omitempty"`
	SortOrderSecondary *int       `gorm:"column:sort_order_secondary" json:"sort_order_secondary,omitempty"`
	CreditHours        float64    `gorm:"column:credit_hours" json:"credit_hours"`

	Video                 bool       `gorm:"column:video" json:"video"`
	Audio                 bool       `gorm:"column:audio" json:"audio"`
	Waitlisted            bool       `gorm:"column:waitlisted" json:"waitlisted"`
	WaitingOnPrerequisite bool       `gorm:"column:waiting_on_prerequisite" json:"waiting_on_prerequisite"`
	AvailableOn           *time.Time `gorm:"column:available_on" json:"available_on,omitempty"`
	AvailableUntil        *time.Time `gorm:"column:available_until" json:"available_until,omitempty"`

	EnforceModuleOrder bool            `gorm:"column:enforce_module_order" json:"enforce_module_order,omitempty"`
	ModuleGroupTypeID  ModuleGroupType `gorm:"column:module_group_type_id" json:"module_group_type_id,omitempty"`

	// Set by evaluation and annotation, never read from the store.
	Available    bool         `gorm:"-" json:"available"`
	CourseFormat CourseFormat `gorm:"-" json:"course_format,omitempty"`
}

// WindowOpen reports whether now falls inside the optional availability bounds.
// Both bounds are inclusive.
func (r *ItemRow) WindowOpen(now time.Time) bool {
	if r.AvailableOn != nil && r.AvailableOn.After(now) {
		return false
	}
	if r.AvailableUntil != nil && r.AvailableUntil.Before(now) {
		return false
	}
	return true
}

// ItemResult is the per-assignment record returned to callers.
type ItemResult struct {
	CourseEnrollmentID    int64        `json:"course_enrollment_id"`
	CourseID              int64        `json:"course_id"`
	CourseType            string       `json:"course_type"`
	UserID                int64        `json:"user_id"`
	DueDate               *time.Time   `json:"due_date,omitempty"`
	CourseTitle           string       `json:"course_title"`
	SortOrder             *int         `json:"sort_order,omitempty"`
	SortOrderSecondary    *int         `json:"sort_order_secondary,omitempty"`
	CreditHours           float64      `json:"credit_hours"`
	Available             bool         `json:"available"`
	CourseFormat          CourseFormat `json:"course_format"`
	Video                 bool         `json:"video"`
	Audio                 bool         `json:"audio"`
	Waitlisted            bool         `json:"waitlisted"`
	WaitingOnPrerequisite bool         `json:"waiting_on_prerequisite"`
	AvailableOn           *time.Time   `json:"available_on,omitempty"`
	AvailableUntil        *time.Time   `json:"available_until,omitempty"`
}

func ProjectItem(r *ItemRow) *ItemResult {
	if r == nil {
		return nil
	}
	return &ItemResult{
		CourseEnrollmentID:    r.CourseEnrollmentID,
		CourseID:              r.CourseID,
		CourseType:            r.CourseType,
		UserID:                r.UserID,
		DueDate:               r.DueDate,
		CourseTitle:           r.CourseTitle,
		SortOrder:             r.SortOrder,
		SortOrderSecondary:    r.SortOrderSecondary,
		CreditHours:           r.CreditHours,
		Available:             r.Available,
		CourseFormat:          r.CourseFormat,
		Video:                 r.Video,
		Audio:                 r.Audio,
		Waitlisted:            r.Waitlisted,
		WaitingOnPrerequisite: r.WaitingOnPrerequisite,
		AvailableOn:           r.AvailableOn,
		AvailableUntil:        r.AvailableUntil,
	}
}

// ProjectItems preserves input order and never returns nil.
func ProjectItems(rows []*ItemRow) []*ItemResult {
	out := make([]*ItemResult, 0, len(rows))
	for _, r := range rows {
		if r == nil {
			continue
		}
		out = append(out, ProjectItem(r))
	}
	return out
}

// SuiteHeader identifies one curriculum or training-plan enrollment.
type SuiteHeader struct {
	ID   int64  `gorm:"column:suite_id" json:"id"`
	Name string `gorm:"column:suite_name" json:"name"`
}

type Suite struct {
	ID    int64         `json:"id"`
	Name  string        `json:"name"`
	Type  SuiteType     `json:"type"`
	Items []*ItemResult `json:"items"`
}
