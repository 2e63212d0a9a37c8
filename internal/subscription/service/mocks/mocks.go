// Package mocks holds gomock doubles for the service package interfaces.
// They follow mockgen's source-mode layout; running go generate in the
// service package replaces this file with mockgen output.
package mocks

import (
	context "context"
	reflect "reflect"
	time "time"

	notification "certhub/internal/notification"
	models "certhub/internal/subscription/models"
	gomock "go.uber.org/mock/gomock"
)

// MockSubscriptionStore is a mock of SubscriptionStore interface.
type MockSubscriptionStore struct {
	ctrl     *gomock.Controller
	recorder *MockSubscriptionStoreMockRecorder
	isgomock struct{}
}

// MockSubscriptionStoreMockRecorder is the mock recorder for MockSubscriptionStore.
type MockSubscriptionStoreMockRecorder struct {
	mock *MockSubscriptionStore
}

// NewMockSubscriptionStore creates a new mock instance.
func NewMockSubscriptionStore(ctrl *gomock.Controller) *MockSubscriptionStore {
	mock := &MockSubscriptionStore{ctrl: ctrl}
	mock.recorder = &MockSubscriptionStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSubscriptionStore) EXPECT() *MockSubscriptionStoreMockRecorder {
	return m.recorder
}

// FindByID mocks base method.
func (m *MockSubscriptionStore) FindByID(ctx context.Context, id models.SubscriptionID) (*models.Subscription, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindByID", ctx, id)
	ret0, _ := ret[0].(*models.Subscription)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FindByID indicates an expected call of FindByID.
func (mr *MockSubscriptionStoreMockRecorder) FindByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindByID", reflect.TypeOf((*MockSubscriptionStore)(nil).FindByID), ctx, id)
}

// FindCancelable mocks base method.
func (m *MockSubscriptionStore) FindCancelable(ctx context.Context, at time.Time) ([]*models.Subscription, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindCancelable", ctx, at)
	ret0, _ := ret[0].([]*models.Subscription)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FindCancelable indicates an expected call of FindCancelable.
func (mr *MockSubscriptionStoreMockRecorder) FindCancelable(ctx, at any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindCancelable", reflect.TypeOf((*MockSubscriptionStore)(nil).FindCancelable), ctx, at)
}

// FindExpiringActiveWithAutoRenew mocks base method.
func (m *MockSubscriptionStore) FindExpiringActiveWithAutoRenew(ctx context.Context, at time.Time) ([]*models.Subscription, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindExpiringActiveWithAutoRenew", ctx, at)
	ret0, _ := ret[0].([]*models.Subscription)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FindExpiringActiveWithAutoRenew indicates an expected call of FindExpiringActiveWithAutoRenew.
func (mr *MockSubscriptionStoreMockRecorder) FindExpiringActiveWithAutoRenew(ctx, at any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindExpiringActiveWithAutoRenew", reflect.TypeOf((*MockSubscriptionStore)(nil).FindExpiringActiveWithAutoRenew), ctx, at)
}

// Save mocks base method.
func (m *MockSubscriptionStore) Save(ctx context.Context, sub *models.Subscription) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Save", ctx, sub)
	ret0, _ := ret[0].(error)
	return ret0
}

// Save indicates an expected call of Save.
func (mr *MockSubscriptionStoreMockRecorder) Save(ctx, sub any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Save", reflect.TypeOf((*MockSubscriptionStore)(nil).Save), ctx, sub)
}

// MockCertificationChecker is a mock of CertificationChecker interface.
type MockCertificationChecker struct {
	ctrl     *gomock.Controller
	recorder *MockCertificationCheckerMockRecorder
	isgomock struct{}
}

// MockCertificationCheckerMockRecorder is the mock recorder for MockCertificationChecker.
type MockCertificationCheckerMockRecorder struct {
	mock *MockCertificationChecker
}

// NewMockCertificationChecker creates a new mock instance.
func NewMockCertificationChecker(ctrl *gomock.Controller) *MockCertificationChecker {
	mock := &MockCertificationChecker{ctrl: ctrl}
	mock.recorder = &MockCertificationCheckerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockCertificationChecker) EXPECT() *MockCertificationCheckerMockRecorder {
	return m.recorder
}

// CertificationExists mocks base method.
func (m *MockCertificationChecker) CertificationExists(ctx context.Context, id int64) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CertificationExists", ctx, id)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CertificationExists indicates an expected call of CertificationExists.
func (mr *MockCertificationCheckerMockRecorder) CertificationExists(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CertificationExists", reflect.TypeOf((*MockCertificationChecker)(nil).CertificationExists), ctx, id)
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
