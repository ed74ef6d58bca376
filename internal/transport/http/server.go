// package http implements the HTTP transport layer for the service.
// It handles incoming requests, decodes them, calls the appropriate service methods,
// and encodes the responses.
package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/YusovID/capacity-planner-service/internal/apperrors"
	"github.com/YusovID/capacity-planner-service/internal/service"
	"github.com/YusovID/capacity-planner-service/internal/validation"
	"github.com/YusovID/capacity-planner-service/pkg/api"
	"github.com/YusovID/capacity-planner-service/pkg/logger/sl"
	"github.com/YusovID/capacity-planner-service/swagger"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Error codes sent in the "code" field of error responses.
const (
	codeInvalidRequest = "INVALID_REQUEST"
	codeValidation     = "VALIDATION_FAILED"
	codeNotFound       = "NOT_FOUND"
	codeAlreadyExists  = "ALREADY_EXISTS"
	codeNotActive      = "ALLOCATION_NOT_ACTIVE"
	codeInternal       = "INTERNAL"
)

var _ api.ServerInterface = (*Server)(nil)

// Server holds the dependencies for the HTTP server, including the logger and service interfaces.
type Server struct {
	log               *slog.Logger
	allocationService service.AllocationService
	capacityService   service.CapacityService
	activityService   service.ActivityService
	projectService    service.ProjectService
	alertService      service.AlertService
}

// NewServer creates a new instance of the HTTP server.
func NewServer(
	log *slog.Logger,
	as service.AllocationService,
	cs service.CapacityService,
	acs service.ActivityService,
	ps service.ProjectService,
	als service.AlertService,
) *Server {
	return &Server{
		log:               log,
		allocationService: as,
		capacityService:   cs,
		activityService:   acs,
		projectService:    ps,
		alertService:      als,
	}
}

// Routes sets up the router with all middleware and API endpoints.
func (s *Server) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(s.requestID)
	mux.Use(s.logRequest)
	mux.Use(s.metricsMiddleware)

	swaggerHandler, err := swagger.GetHandler()
	if err != nil {
		s.log.Error("failed to get swagger handler", sl.Err(err))
	} else {
		mux.Mount("/swagger", http.StripPrefix("/swagger", swaggerHandler))
	}

	mux.Handle("/metrics", promhttp.Handler())

	api.HandlerWithOptions(s, api.ChiServerOptions{
		BaseRouter:       mux,
		ErrorHandlerFunc: s.handleParamError,
	})

	return mux
}

// respond is a helper function to encode data to JSON and write it to the response.
// It centralizes setting the Content-Type header and writing the status code.
func (s *Server) respond(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.log.Error("failed to encode response", sl.Err(err))
		}
	}
}

// respondError sends a structured {"error": {"code", "message"}} body.
func (s *Server) respondError(w http.ResponseWriter, code int, errCode, message string) {
	var body api.ErrorResponse
	body.Error.Code = errCode
	body.Error.Message = message

	s.respond(w, code, body)
}

// handleParamError reports path and query binding failures of the generated
// router. Broken dates and years are period errors, the rest are malformed
// requests.
func (s *Server) handleParamError(w http.ResponseWriter, r *http.Request, err error) {
	const op = "internal.transport.http.handleParamError"

	var (
		required *api.RequiredParamError
		format   *api.InvalidParamFormatError
		name     string
	)

	switch {
	case errors.As(err, &required):
		name = required.ParamName
	case errors.As(err, &format):
		name = format.ParamName
	}

	switch name {
	case "start", "end", "year":
		err = fmt.Errorf("%w: %w", apperrors.ErrInvalidPeriod, err)
	default:
		err = fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	s.handleServiceError(w, r, op, err)
}

// decodeAndValidate is a helper that deserializes a JSON request body into a struct
// and then runs validation checks on it.
func (s *Server) decodeAndValidate(r *http.Request, v interface{}) error {
	if err := s.decode(r.Body, v); err != nil {
		return err
	}

	if err := validation.ValidateStruct(v); err != nil {
		return err
	}

	return nil
}

// decode is a helper function to decode a JSON request body.
func (s *Server) decode(body io.ReadCloser, v interface{}) error {
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	return nil
}

// handleServiceError provides centralized error handling for all HTTP handlers.
// It logs the internal error and maps it to a user-friendly HTTP response.
func (s *Server) handleServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := s.log.With(
		slog.String("op", op),
		slog.String("request_id", getRequestID(r.Context())),
	)

	var (
		validationErr *validation.ValidationError
		weekKeyErr    *apperrors.WeekKeyError
	)

	switch {
	case errors.As(err, &validationErr):
		log.Warn("request rejected", sl.Err(err))
		s.respondError(w, http.StatusBadRequest, codeValidation, validationErr.Error())
	case errors.As(err, &weekKeyErr):
		log.Warn("request rejected", sl.Err(err))
		s.respondError(w, http.StatusBadRequest, codeValidation, weekKeyErr.Error())
	case errors.Is(err, apperrors.ErrInvalidRequest):
		log.Warn("request rejected", sl.Err(err))
		s.respondError(w, http.StatusBadRequest, codeInvalidRequest, apperrors.ErrInvalidRequest.Error())
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidWeekKey),
		errors.Is(err, apperrors.ErrInvalidPeriod):
		log.Warn("request rejected", sl.Err(err))
		s.respondError(w, http.StatusBadRequest, codeValidation, publicMessage(err))
	case errors.Is(err, apperrors.ErrNotFound):
		log.Info("resource not found", sl.Err(err))
		s.respondError(w, http.StatusNotFound, codeNotFound, apperrors.ErrNotFound.Error())
	case errors.Is(err, apperrors.ErrAllocationNotActive):
		log.Warn("write refused", sl.Err(err))
		s.respondError(w, http.StatusConflict, codeNotActive, apperrors.ErrAllocationNotActive.Error())
	case errors.Is(err, apperrors.ErrAlreadyExists):
		log.Warn("write refused", sl.Err(err))
		s.respondError(w, http.StatusConflict, codeAlreadyExists, apperrors.ErrAlreadyExists.Error())
	default:
		log.Error("service error occurred", sl.Err(err))
		s.respondError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

// publicMessage returns the sentinel text of a client error without the op
// prefixes added on the way up.
func publicMessage(err error) string {
	for _, sentinel := range []error{
		apperrors.ErrInvalidPeriod,
		apperrors.ErrInvalidWeekKey,
		apperrors.ErrValidation,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}

	return err.Error()
}
