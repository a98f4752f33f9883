package respond

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	applog "github.com/janisto/deploy-status/internal/platform/logging"
)

const (
	contentTypeProblemJSON = "application/problem+json"
	contentTypeProblemCBOR = "application/problem+cbor"
	errorSchemaPath        = "/schemas/ErrorModel.json"

	msgNotFound          = "resource not found"
	msgInternalServerErr = "internal server error"
)

// problem is the RFC 9457 body. Field names match huma.ErrorModel so clients
// decode router-level and operation-level errors the same way.
type problem struct {
	Schema string `json:"$schema,omitempty"`
	Type   string `json:"type,omitempty"`
	Title  string `json:"title,omitempty"`
	Status int    `json:"status,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// WriteProblem renders a problem details response for status, choosing CBOR or
// JSON from the request's Accept header. 4xx responses log at warning
// severity, 5xx at error severity.
func WriteProblem(w http.ResponseWriter, r *http.Request, status int, detail string, errs ...error) {
	ctx := r.Context()
	fields := []zap.Field{zap.Int("status", status), zap.String("path", r.URL.Path)}
	if status >= http.StatusInternalServerError {
		var cause error
		if len(errs) > 0 {
			cause = errs[0]
		}
		applog.LogError(ctx, detail, cause, fields...)
	} else {
		applog.LogWarn(ctx, detail, fields...)
	}

	schemaURL := schemaLink(r)
	body := problem{
		Schema: schemaURL,
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}

	var (
		payload     []byte
		contentType = contentTypeProblemJSON
		err         error
	)
	if prefersCBOR(r.Header.Get("Accept")) {
		contentType = contentTypeProblemCBOR
		payload, err = cbor.Marshal(body)
	} else {
		payload, err = json.Marshal(body)
	}
	if err != nil {
		applog.LogError(ctx, "failed to encode problem details", err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	h := w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Link", "<"+schemaURL+`>; rel="describedBy"`)
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		applog.LogError(ctx, "failed to write problem details", err)
	}
}

// NotFoundHandler answers unmatched paths with a 404 problem.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteProblem(w, r, http.StatusNotFound, msgNotFound)
	}
}

// MethodNotAllowedHandler answers a known path with an unsupported method. The
// Allow header lists the methods chi can route for the path.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if allow := allowedMethods(r); len(allow) > 0 {
			w.Header().Set("Allow", strings.Join(allow, ", "))
		}
		WriteProblem(w, r, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed", r.Method))
	}
}

// Recoverer turns panics into 500 problems. If the handler already started the
// response, the partial response is left alone. http.ErrAbortHandler is re-raised
// so net/http can abort the connection.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &responseWriter{ResponseWriter: w}
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				err = fmt.Errorf("panic: %w\n%s", err, debug.Stack())
				if rw.wroteHeader {
					applog.LogError(r.Context(), "panic after response started", err)
					return
				}
				WriteProblem(rw, r, http.StatusInternalServerError, msgInternalServerErr, err)
			}()
			next.ServeHTTP(rw, r)
		})
	}
}

// responseWriter records whether the response has been started.
type responseWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(status int) {
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func schemaLink(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host + errorSchemaPath
}

// allowedMethods probes chi's route tree for every method that matches the path.
func allowedMethods(r *http.Request) []string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return nil
	}

	routePath := rctx.RoutePath
	if routePath == "" {
		routePath = r.URL.RawPath
		if routePath == "" {
			routePath = r.URL.Path
		}
		if routePath == "" {
			routePath = "/"
		}
	}

	var allowed []string
	for _, method := range []string{
		http.MethodGet,
		http.MethodHead,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
		http.MethodOptions,
	} {
		if rctx.Routes.Match(chi.NewRouteContext(), method, routePath) {
			allowed = append(allowed, method)
		}
	}
	return allowed
}
