package main

import (
	"encoding/json"
	"time"

	"github.com/baditaflorin/l"
	"github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	ish "github.com/baditaflorin/go_ish"
)

// CompareRequest asks whether candidate is equal to (or ordered against) reference.
type CompareRequest struct {
	Reference interface{} `json:"reference"`
	Candidate interface{} `json:"candidate"`
	// Op is one of eq (default), lt, le, gt, ge and reads "reference op candidate".
	Op        string   `json:"op,omitempty"`
	Tolerance *float64 `json:"tolerance,omitempty"`
}

// CompareResponse carries the comparison result.
type CompareResponse struct {
	Result     bool   `json:"result"`
	Comparator string `json:"comparator"`
	Kind       string `json:"kind"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// Error kinds reported to clients.
const (
	kindBadRequest       = "bad_request"
	kindNotComparable    = "not_comparable"
	kindAmbiguous        = "ambiguous"
	kindClassifierFailed = "classifier_failed"
	kindNotFound         = "not_found"
	kindInternal         = "internal"
)

type server struct {
	factory *ish.Factory
	logger  l.Logger
}

func newServer(lg l.Logger, opts ...ish.Option) (*server, error) {
	f, err := ish.NewFactory(opts...)
	if err != nil {
		return nil, err
	}
	return &server{factory: f, logger: lg}, nil
}

// requestHandler is the main fasthttp request handler
func (s *server) requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	ctx.Response.Header.Set("Content-Type", "application/json")

	switch string(ctx.Path()) {
	case "/health":
		s.handleHealthCheck(ctx)
	case "/compare":
		s.handleCompare(ctx)
	default:
		s.writeJSONError(ctx, fasthttp.StatusNotFound, kindNotFound, "Not found")
	}

	s.logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"duration", time.Since(startTime),
	)
}

// handleHealthCheck responds to health check requests
func (s *server) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleCompare builds a comparator from the request reference and applies it.
func (s *server) handleCompare(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		s.writeJSONError(ctx, fasthttp.StatusMethodNotAllowed, kindBadRequest, "Method not allowed")
		return
	}

	var req CompareRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.writeJSONError(ctx, fasthttp.StatusBadRequest, kindBadRequest, "Invalid request: "+err.Error())
		return
	}

	factory, err := s.factoryFor(req)
	if err != nil {
		s.writeJSONError(ctx, fasthttp.StatusBadRequest, kindBadRequest, err.Error())
		return
	}
	comparator, err := factory.Build(req.Reference)
	if err != nil {
		s.writeComparisonError(ctx, err)
		return
	}

	candidate := req.Candidate
	if comparator.Kind() == ish.EmotionKind {
		// images arrive as nested JSON arrays
		if arr, err := ish.ArrayFromNested(candidate); err == nil {
			candidate = arr
		}
	}

	result, err := apply(comparator, req.Op, candidate)
	if err != nil {
		s.writeComparisonError(ctx, err)
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, CompareResponse{
		Result:     result,
		Comparator: comparator.String(),
		Kind:       comparator.Kind().String(),
	})
}

// factoryFor returns the shared factory, or a numeric one when the request
// overrides the tolerance of a number reference.
func (s *server) factoryFor(req CompareRequest) (*ish.Factory, error) {
	if req.Tolerance == nil {
		return s.factory, nil
	}
	if _, isNumber := req.Reference.(float64); !isNumber {
		return s.factory, nil
	}
	return ish.NewFactory(ish.WithLogger(s.logger), ish.WithTolerance(*req.Tolerance))
}

var errUnknownOp = errors.New("unknown op")

// errNotOrdered is returned for ordering ops on comparators without ordering.
var errNotOrdered = errors.New("comparator does not support ordering")

func apply(c ish.Comparator, op string, candidate interface{}) (bool, error) {
	if op == "" || op == "eq" {
		return c.Equal(candidate)
	}
	o, ok := c.(ish.OrderedComparator)
	switch op {
	case "lt", "le", "gt", "ge":
		if !ok {
			return false, errors.Wrapf(errNotOrdered, "%s with op %s", c, op)
		}
	default:
		return false, errors.Wrapf(errUnknownOp, "%q", op)
	}
	switch op {
	case "lt":
		return o.Less(candidate)
	case "le":
		return o.LessOrEqual(candidate)
	case "gt":
		return o.Greater(candidate)
	default:
		return o.GreaterOrEqual(candidate)
	}
}

func (s *server) writeComparisonError(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case ish.IsNotComparable(err):
		s.writeJSONError(ctx, fasthttp.StatusUnprocessableEntity, kindNotComparable, err.Error())
	case ish.IsAmbiguous(err):
		s.writeJSONError(ctx, fasthttp.StatusUnprocessableEntity, kindAmbiguous, err.Error())
	case errors.Is(err, errUnknownOp), errors.Is(err, errNotOrdered):
		s.writeJSONError(ctx, fasthttp.StatusBadRequest, kindBadRequest, err.Error())
	default:
		s.logger.Error("Classifier failed", "error", err)
		s.writeJSONError(ctx, fasthttp.StatusBadGateway, kindClassifierFailed, err.Error())
	}
}

// writeJSONResponse writes a JSON response to the context
func (s *server) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("Error marshaling JSON response", "error", err)
		s.writeJSONError(ctx, fasthttp.StatusInternalServerError, kindInternal, "Internal server error")
		return
	}
	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func (s *server) writeJSONError(ctx *fasthttp.RequestCtx, status int, kind, message string) {
	ctx.SetStatusCode(status)
	response, err := json.Marshal(ErrorResponse{Error: message, Kind: kind})
	if err != nil {
		s.logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error","kind":"internal"}`)
		return
	}
	ctx.SetBody(response)
}
