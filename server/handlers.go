package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alan-mat/deepresearch/internal/api"
	"github.com/alan-mat/deepresearch/internal/metrics"
	"github.com/alan-mat/deepresearch/internal/transport"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var internalError = api.ErrorResponse{Detail: "Internal Server Error"}

type researchBody struct {
	Query *string `json:"query"`
}

func (s *Server) research(c *gin.Context) {
	var body researchBody
	if err := c.ShouldBindJSON(&body); err != nil {
		metrics.RecordRequest(metrics.OutcomeInvalid)
		c.JSON(http.StatusUnprocessableEntity, bindingError(err))
		return
	}
	if body.Query == nil {
		metrics.RecordRequest(metrics.OutcomeInvalid)
		c.JSON(http.StatusUnprocessableEntity, api.ValidationErrorResponse{
			Detail: []api.ValidationError{{
				Loc:  []string{"body", "query"},
				Msg:  "field required",
				Type: "value_error.missing",
			}},
		})
		return
	}
	query := *body.Query

	traceId := uuid.NewString()
	c.Header(TraceHeader, traceId)

	ctx := c.Request.Context()
	trace := transport.NewTrace(traceId, query)
	s.saveTrace(ctx, trace)

	state, err := s.pipeline.Run(ctx, query)
	if err != nil {
		s.fail(c, trace, err)
		return
	}

	path, err := s.store.Write(query, state.Response)
	if err != nil {
		s.fail(c, trace, err)
		return
	}

	trace.Complete()
	s.saveTrace(ctx, trace)
	metrics.RecordRequest(metrics.OutcomeOK)

	slog.Info("research completed", "trace", traceId, "query", query, "file", path)
	c.JSON(http.StatusOK, api.ResearchResponse{Response: state.Response})
}

func (s *Server) fail(c *gin.Context, trace *transport.Trace, err error) {
	slog.Error("research failed", "trace", trace.ID, "query", trace.Query, "err", err)

	trace.Fail(err)
	s.saveTrace(c.Request.Context(), trace)
	metrics.RecordRequest(metrics.OutcomeFailed)

	c.JSON(http.StatusInternalServerError, internalError)
}

// saveTrace stores the trace even when the client is gone.
// Failures are logged and do not affect the request.
func (s *Server) saveTrace(ctx context.Context, trace *transport.Trace) {
	if err := s.transport.SetTrace(context.WithoutCancel(ctx), trace); err != nil {
		slog.Warn("failed to store trace", "trace", trace.ID, "err", err)
	}
}

func (s *Server) trace(c *gin.Context) {
	trace, err := s.transport.GetTrace(c.Request.Context(), c.Param("id"))
	if errors.Is(err, transport.ErrTraceNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Detail: "Not Found"})
		return
	}
	if err != nil {
		slog.Error("failed to get trace", "trace", c.Param("id"), "err", err)
		c.JSON(http.StatusInternalServerError, internalError)
		return
	}

	c.JSON(http.StatusOK, trace)
}

func bindingError(err error) api.ValidationErrorResponse {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return api.ValidationErrorResponse{
			Detail: []api.ValidationError{{
				Loc:  []string{"body", typeErr.Field},
				Msg:  "str type expected",
				Type: "type_error.str",
			}},
		}
	}

	return api.ValidationErrorResponse{
		Detail: []api.ValidationError{{
			Loc:  []string{"body"},
			Msg:  err.Error(),
			Type: "value_error.jsondecode",
		}},
	}
}
