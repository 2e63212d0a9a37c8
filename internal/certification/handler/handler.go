package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"certhub/internal/certification/models"
	dErrors "certhub/pkg/domain-errors"
	"certhub/pkg/platform/httputil"
	"certhub/pkg/requestcontext"
)

// Service defines the certification operations exposed over HTTP.
type Service interface {
	CreateDraft(ctx context.Context, name, description string) (*models.Certification, error)
	GetCertification(ctx context.Context, id models.CertificationID) (*models.Certification, error)
	AddRequirementArea(ctx context.Context, id models.CertificationID, name string, reqType models.RequirementType, value int) (*models.Certification, error)
	AddCourseToArea(ctx context.Context, id models.CertificationID, areaName string, courseID models.CourseID) (*models.Certification, error)
	Publish(ctx context.Context, id models.CertificationID) (*models.Certification, error)
	Archive(ctx context.Context, id models.CertificationID) (*models.Certification, error)
	CreateCourse(ctx context.Context, title string, durationHours int, category string) (*models.Course, error)
	GetCourse(ctx context.Context, id models.CourseID) (*models.Course, error)
	ListCourses(ctx context.Context) ([]*models.Course, error)
}

// Handler wires certification and course endpoints to the service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts certification and course endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/certifications", func(r chi.Router) {
		r.Post("/", h.HandleCreateCertification)
		r.Get("/{id}", h.HandleGetCertification)
		r.Post("/{id}/areas", h.HandleAddArea)
		r.Post("/{id}/areas/{area}/courses", h.HandleAddCourseToArea)
		r.Post("/{id}/publish", h.HandlePublish)
		r.Post("/{id}/archive", h.HandleArchive)
	})
	r.Route("/courses", func(r chi.Router) {
		r.Post("/", h.HandleCreateCourse)
		r.Get("/", h.HandleListCourses)
		r.Get("/{id}", h.HandleGetCourse)
	})
}

// HandleCreateCertification handles POST /certifications.
func (h *Handler) HandleCreateCertification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateCertificationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	cert, err := h.service.CreateDraft(ctx, req.Name, req.Description)
	if err != nil {
		h.fail(ctx, w, "failed to create certification", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromCertification(cert))
}

// HandleGetCertification handles GET /certifications/{id}.
func (h *Handler) HandleGetCertification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.certificationID(w, r)
	if !ok {
		return
	}

	cert, err := h.service.GetCertification(ctx, id)
	if err != nil {
		h.fail(ctx, w, "failed to get certification", err, "certification_id", int64(id))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCertification(cert))
}

// HandleAddArea handles POST /certifications/{id}/areas.
func (h *Handler) HandleAddArea(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id, ok := h.certificationID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddAreaRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	cert, err := h.service.AddRequirementArea(ctx, id, req.Name, req.ParsedType(), req.RequirementValue)
	if err != nil {
		h.fail(ctx, w, "failed to add requirement area", err, "certification_id", int64(id))
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromCertification(cert))
}

// HandleAddCourseToArea handles POST /certifications/{id}/areas/{area}/courses.
func (h *Handler) HandleAddCourseToArea(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id, ok := h.certificationID(w, r)
	if !ok {
		return
	}
	// chi matches on RawPath when set, so only then is the parameter still escaped.
	areaName := chi.URLParam(r, "area")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(areaName)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid area name"))
			return
		}
		areaName = unescaped
	}
	if areaName == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid area name"))
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddCourseRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	cert, err := h.service.AddCourseToArea(ctx, id, areaName, models.CourseID(req.CourseID))
	if err != nil {
		h.fail(ctx, w, "failed to add course to area", err,
			"certification_id", int64(id),
			"area", areaName,
			"course_id", req.CourseID,
		)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCertification(cert))
}

// HandlePublish handles POST /certifications/{id}/publish.
func (h *Handler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "failed to publish certification", h.service.Publish)
}

// HandleArchive handles POST /certifications/{id}/archive.
func (h *Handler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "failed to archive certification", h.service.Archive)
}

func (h *Handler) lifecycle(
	w http.ResponseWriter,
	r *http.Request,
	failure string,
	apply func(context.Context, models.CertificationID) (*models.Certification, error),
) {
	ctx := r.Context()
	id, ok := h.certificationID(w, r)
	if !ok {
		return
	}
	cert, err := apply(ctx, id)
	if err != nil {
		h.fail(ctx, w, failure, err, "certification_id", int64(id))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCertification(cert))
}

// HandleCreateCourse handles POST /courses.
func (h *Handler) HandleCreateCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateCourseRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	course, err := h.service.CreateCourse(ctx, req.Title, req.Duration, req.Category)
	if err != nil {
		h.fail(ctx, w, "failed to create course", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromCourse(*course))
}

// HandleGetCourse handles GET /courses/{id}.
func (h *Handler) HandleGetCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	raw, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	course, err := h.service.GetCourse(ctx, models.CourseID(raw))
	if err != nil {
		h.fail(ctx, w, "failed to get course", err, "course_id", raw)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCourse(*course))
}

// HandleListCourses handles GET /courses.
func (h *Handler) HandleListCourses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	courses, err := h.service.ListCourses(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to list courses", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"courses": FromCourses(courses)})
}

func (h *Handler) certificationID(w http.ResponseWriter, r *http.Request) (models.CertificationID, bool) {
	raw, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return 0, false
	}
	return models.CertificationID(raw), true
}

// fail logs err at a level matching its code and writes the error response.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, attrs ...any) {
	attrs = append(attrs, "request_id", requestcontext.RequestID(ctx), "error", err)
	if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}
