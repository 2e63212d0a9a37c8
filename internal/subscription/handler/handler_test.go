package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	certService "certhub/internal/certification/service"
	certStore "certhub/internal/certification/store/certification"
	courseStore "certhub/internal/certification/store/course"
	"certhub/internal/platform/logger"
	"certhub/internal/subscription/adapters"
	"certhub/internal/subscription/service"
	"certhub/internal/subscription/store"
	"certhub/pkg/testutil"
)

const adminToken = "s3cret"

var created = time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

type HandlerSuite struct {
	suite.Suite
	router http.Handler
	certID int64
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	certs := certService.New(certStore.NewInMemory(), courseStore.NewInMemory())
	cert, err := certs.CreateDraft(context.Background(), "Go Developer", "")
	s.Require().NoError(err)
	s.certID = int64(cert.ID())

	svc := service.New(store.NewInMemory(),
		service.WithCertificationChecker(adapters.NewCertificationChecker(certs)))
	r := chi.NewRouter()
	r.Route("/api", New(svc, logger.Discard(), adminToken).Register)
	s.router = r
}

func (s *HandlerSuite) do(req *http.Request) *httptest.ResponseRecorder {
	return testutil.Do(s.router, req)
}

func (s *HandlerSuite) post(path string, body any) *httptest.ResponseRecorder {
	return s.do(testutil.WithRequestTime(testutil.NewJSONRequest(s.T(), http.MethodPost, path, body), created))
}

func (s *HandlerSuite) create(subType string, autoRenew bool) string {
	rr := s.post("/api/subscriptions", map[string]any{
		"user_id": 7, "certification_id": s.certID, "type": subType, "auto_renew": autoRenew,
	})
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	return strconv.FormatInt(testutil.DecodeJSON[SubscriptionResponse](s.T(), rr).ID, 10)
}

func (s *HandlerSuite) get(id string) SubscriptionResponse {
	rr := s.do(testutil.NewJSONRequest(s.T(), http.MethodGet, "/api/subscriptions/"+id, nil))
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	return testutil.DecodeJSON[SubscriptionResponse](s.T(), rr)
}

func (s *HandlerSuite) TestCreate() {
	s.Run("monthly subscription starts at the request time", func() {
		id := s.create("monthly", true)
		sub := s.get(id)
		s.Equal("active", sub.State)
		s.True(created.Equal(sub.StartDate))
		s.True(created.AddDate(0, 1, 0).Equal(sub.EndDate))
		s.True(sub.AutoRenew)
	})

	s.Run("auto_renew defaults to true", func() {
		rr := s.post("/api/subscriptions", map[string]any{"user_id": 7, "certification_id": s.certID, "type": "yearly"})
		s.Require().Equal(http.StatusCreated, rr.Code)
		s.True(testutil.DecodeJSON[SubscriptionResponse](s.T(), rr).AutoRenew)
	})

	s.Run("unknown type", func() {
		rr := s.post("/api/subscriptions", map[string]any{"user_id": 7, "certification_id": s.certID, "type": "weekly"})
		testutil.AssertError(s.T(), rr, http.StatusBadRequest, "validation")
	})

	s.Run("unknown certification", func() {
		rr := s.post("/api/subscriptions", map[string]any{"user_id": 7, "certification_id": 999, "type": "monthly"})
		testutil.AssertError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("missing user", func() {
		rr := s.post("/api/subscriptions", map[string]any{"certification_id": s.certID, "type": "monthly"})
		testutil.AssertError(s.T(), rr, http.StatusBadRequest, "validation")
	})
}

func (s *HandlerSuite) TestTransitions() {
	t := s.T()
	id := s.create("monthly", true)
	base := "/api/subscriptions/" + id

	testutil.When(t, "an active subscription is paused and resumed", func(t *testing.T) {
		rr := s.post(base+"/pause", nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, "paused", testutil.DecodeJSON[SubscriptionResponse](t, rr).State)

		rr = s.post(base+"/pause", nil)
		testutil.AssertError(t, rr, http.StatusInternalServerError, "internal_error")
		testutil.AssertErrorDescription(t, rr, "")

		rr = s.post(base+"/activate", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "active", testutil.DecodeJSON[SubscriptionResponse](t, rr).State)
	})

	testutil.When(t, "it is cancelled", func(t *testing.T) {
		rr := s.post(base+"/cancel", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "cancelled", testutil.DecodeJSON[SubscriptionResponse](t, rr).State)

		testutil.Then(t, "it cannot be reactivated", func(t *testing.T) {
			rr := s.post(base+"/activate", nil)
			testutil.AssertError(t, rr, http.StatusInternalServerError, "internal_error")
			testutil.AssertErrorDescription(t, rr, "")
		})
	})

	testutil.Then(t, "unknown subscriptions are not found", func(t *testing.T) {
		rr := s.post("/api/subscriptions/4040/pause", nil)
		testutil.AssertError(t, rr, http.StatusNotFound, "not_found")
	})
}

func (s *HandlerSuite) TestRenew() {
	renewing := s.create("monthly", true)
	lapsing := s.create("monthly", false)
	cancelled := s.create("monthly", true)
	s.Require().Equal(http.StatusOK, s.post("/api/subscriptions/"+cancelled+"/cancel", nil).Code)

	s.Run("requires the admin token", func() {
		rr := s.post("/api/subscriptions/renew", nil)
		testutil.AssertError(s.T(), rr, http.StatusUnauthorized, "unauthorized")

		req := testutil.WithAdminToken(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/subscriptions/renew", nil), "wrong")
		testutil.AssertError(s.T(), s.do(req), http.StatusUnauthorized, "unauthorized")
	})

	s.Run("rejects a malformed reference time", func() {
		req := testutil.WithAdminToken(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/subscriptions/renew",
			map[string]any{"reference_time": "yesterday"}), adminToken)
		testutil.AssertError(s.T(), s.do(req), http.StatusBadRequest, "validation")
	})

	s.Run("sweeps at the given reference time", func() {
		at := created.AddDate(0, 1, 1)
		req := testutil.WithAdminToken(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/subscriptions/renew",
			map[string]any{"reference_time": at.Format(time.RFC3339)}), adminToken)
		rr := s.do(req)
		s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
		s.True(at.Equal(testutil.DecodeJSON[RenewResponse](s.T(), rr).ReferenceTime))

		renewed := s.get(renewing)
		s.Equal("active", renewed.State)
		s.True(renewed.EndDate.After(at))
		s.Equal("expired", s.get(lapsing).State)
		s.Equal("expired", s.get(cancelled).State)
	})
}
