package models

// Candidate is the closed set of values a Specification can be evaluated
// against: *Certification and *RequirementArea.
type Candidate interface {
	specCandidate()
}

// Specification is a named validation rule over a candidate.
//
// Rules scoped to requirement areas are vacuously satisfied by any other
// candidate, while certification-scoped rules reject anything that is not a
// certification. Callers depend on that asymmetry.
type Specification interface {
	IsSatisfiedBy(candidate Candidate) bool
}

// AlwaysSatisfied is used where the caller has already enforced the rule.
type AlwaysSatisfied struct{}

func (AlwaysSatisfied) IsSatisfiedBy(Candidate) bool { return true }

// CourseCountSpecification holds when a course-count area has at least its
// required number of courses.
type CourseCountSpecification struct{}

func (CourseCountSpecification) IsSatisfiedBy(candidate Candidate) bool {
	switch c := candidate.(type) {
	case *RequirementArea:
		return courseCountSatisfiedByArea(c)
	default:
		return true
	}
}

func courseCountSatisfiedByArea(a *RequirementArea) bool {
	if a.reqType != RequirementTypeCourseCount {
		return true
	}
	return a.CourseCount() >= a.value
}

// TotalDurationSpecification holds when a total-duration area has at least its
// required number of hours.
type TotalDurationSpecification struct{}

func (TotalDurationSpecification) IsSatisfiedBy(candidate Candidate) bool {
	switch c := candidate.(type) {
	case *RequirementArea:
		return totalDurationSatisfiedByArea(c)
	default:
		return true
	}
}

func totalDurationSatisfiedByArea(a *RequirementArea) bool {
	if a.reqType != RequirementTypeTotalDuration {
		return true
	}
	return a.TotalDuration() >= a.value
}

// MaxCoursesPerCertificationSpecification holds when a certification links at
// most MaxCoursesPerCertification courses.
type MaxCoursesPerCertificationSpecification struct{}

func (MaxCoursesPerCertificationSpecification) IsSatisfiedBy(candidate Candidate) bool {
	switch c := candidate.(type) {
	case *Certification:
		return maxCoursesSatisfiedByCertification(c)
	default:
		return false
	}
}

func maxCoursesSatisfiedByCertification(c *Certification) bool {
	return c.TotalCourseCount() <= MaxCoursesPerCertification
}
