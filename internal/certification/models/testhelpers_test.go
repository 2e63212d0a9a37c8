package models

import "testing"

func savedCourse(t *testing.T, id CourseID, hours int) Course {
	t.Helper()
	c, err := NewCourse("Course", hours, "general")
	if err != nil {
		t.Fatalf("new course: %v", err)
	}
	if err := c.AssignID(id); err != nil {
		t.Fatalf("assign course id: %v", err)
	}
	return *c
}

func draftWithArea(t *testing.T, name string, reqType RequirementType, value int) *Certification {
	t.Helper()
	cert, err := NewDraft("Cloud Architect", "d")
	if err != nil {
		t.Fatalf("new draft: %v", err)
	}
	area, err := NewRequirementArea(name, reqType, value)
	if err != nil {
		t.Fatalf("new area: %v", err)
	}
	if err := cert.AddRequirementArea(area); err != nil {
		t.Fatalf("add area: %v", err)
	}
	return cert
}
