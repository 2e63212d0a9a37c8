// Package mocks holds gomock doubles for the service package interfaces.
// They follow mockgen's source-mode layout; running go generate in the
// service package replaces this file with mockgen output.
package mocks

import (
	context "context"
	reflect "reflect"

	models "certhub/internal/certification/models"
	notification "certhub/internal/notification"
	gomock "go.uber.org/mock/gomock"
)

// MockCertificationStore is a mock of CertificationStore interface.
type MockCertificationStore struct {
	ctrl     *gomock.Controller
	recorder *MockCertificationStoreMockRecorder
	isgomock struct{}
}

// MockCertificationStoreMockRecorder is the mock recorder for MockCertificationStore.
type MockCertificationStoreMockRecorder struct {
	mock *MockCertificationStore
}

// NewMockCertificationStore creates a new mock instance.
func NewMockCertificationStore(ctrl *gomock.Controller) *MockCertificationStore {
	mock := &MockCertificationStore{ctrl: ctrl}
	mock.recorder = &MockCertificationStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockCertificationStore) EXPECT() *MockCertificationStoreMockRecorder {
	return m.recorder
}

// FindByID mocks base method.
func (m *MockCertificationStore) FindByID(ctx context.Context, id models.CertificationID) (*models.Certification, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindByID", ctx, id)
	ret0, _ := ret[0].(*models.Certification)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FindByID indicates an expected call of FindByID.
func (mr *MockCertificationStoreMockRecorder) FindByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindByID", reflect.TypeOf((*MockCertificationStore)(nil).FindByID), ctx, id)
}

// Save mocks base method.
func (m *MockCertificationStore) Save(ctx context.Context, cert *models.Certification) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Save", ctx, cert)
	ret0, _ := ret[0].(error)
	return ret0
}

// Save indicates an expected call of Save.
func (mr *MockCertificationStoreMockRecorder) Save(ctx, cert any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Save", reflect.TypeOf((*MockCertificationStore)(nil).Save), ctx, cert)
}

// MockCourseStore is a mock of CourseStore interface.
type MockCourseStore struct {
	ctrl     *gomock.Controller
	recorder *MockCourseStoreMockRecorder
	isgomock struct{}
}

// MockCourseStoreMockRecorder is the mock recorder for MockCourseStore.
type MockCourseStoreMockRecorder struct {
	mock *MockCourseStore
}

// NewMockCourseStore creates a new mock instance.
func NewMockCourseStore(ctrl *gomock.Controller) *MockCourseStore {
	mock := &MockCourseStore{ctrl: ctrl}
	mock.recorder = &MockCourseStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockCourseStore) EXPECT() *MockCourseStoreMockRecorder {
	return m.recorder
}

// FindAll mocks base method.
func (m *MockCourseStore) FindAll(ctx context.Context) ([]*models.Course, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindAll", ctx)
	ret0, _ := ret[0].([]*models.Course)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FindAll indicates an expected call of FindAll.
func (mr *MockCourseStoreMockRecorder) FindAll(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindAll", reflect.TypeOf((*MockCourseStore)(nil).FindAll), ctx)
}

// FindByID mocks base method.
func (m *MockCourseStore) FindByID(ctx context.Context, id models.CourseID) (*models.Course, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindByID", ctx, id)
	ret0, _ := ret[0].(*models.Course)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FindByID indicates an expected call of FindByID.
func (mr *MockCourseStoreMockRecorder) FindByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindByID", reflect.TypeOf((*MockCourseStore)(nil).FindByID), ctx, id)
}

// Save mocks base method.
func (m *MockCourseStore) Save(ctx context.Context, course *models.Course) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Save", ctx, course)
	ret0, _ := ret[0].(error)
	return ret0
}

// Save indicates an expected call of Save.
func (mr *MockCourseStoreMockRecorder) Save(ctx, course any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Save", reflect.TypeOf((*MockCourseStore)(nil).Save), ctx, course)
}

// MockNotifier is a mock of Notifier interface.
type MockNotifier struct {
	ctrl     *gomock.Controller
	recorder *MockNotifierMockRecorder
	isgomock struct{}
}

// MockNotifierMockRecorder is the mock recorder for MockNotifier.
type MockNotifierMockRecorder struct {
	mock *MockNotifier
}

// NewMockNotifier creates a new mock instance.
func NewMockNotifier(ctrl *gomock.Controller) *MockNotifier {
	mock := &MockNotifier{ctrl: ctrl}
	mock.recorder = &MockNotifierMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockNotifier) EXPECT() *MockNotifierMockRecorder {
	return m.recorder
}

// Notify mocks base method.
func (m *MockNotifier) Notify(ctx context.Context, event notification.Event) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Notify", ctx, event)
	ret0, _ := ret[0].(error)
	return ret0
}

// Notify indicates an expected call of Notify.
func (mr *MockNotifierMockRecorder) Notify(ctx, event any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Notify", reflect.TypeOf((*MockNotifier)(nil).Notify), ctx, event)
}
