package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/target/serverboard/internal/errors"
)

// ErrorRenderer writes data with status. It owns the status line so headers it
// sets, such as HX-Trigger, are not lost.
type ErrorRenderer func(w http.ResponseWriter, r *http.Request, data map[string]any, status int)

// ErrorOpts contains all options needed to render an error response.
type ErrorOpts struct {
	W   http.ResponseWriter
	R   *http.Request
	Err error
	// FieldErrors contains field-level validation errors (field name → error message)
	FieldErrors map[string]string
	// Renderer is typically h.renderPage
	Renderer ErrorRenderer
	PageMeta PageMeta
	// Data preserves form values and lists shown next to the form.
	Data map[string]any
	// StatusCode is optional; 0 keeps 200 so htmx swaps the re-rendered form.
	StatusCode int
	// ShowToast also sends the message as an error toast.
	ShowToast bool
}

const (
	msgFixBelow    = "아래 항목을 확인해 주세요."
	msgNotFound    = "요청한 항목을 찾을 수 없습니다."
	msgForbidden   = "이 작업을 수행할 권한이 없습니다."
	msgInUse       = "다른 항목에서 사용 중이라 처리할 수 없습니다."
	msgTimeout     = "요청 시간이 초과되었습니다. 다시 시도해 주세요."
	msgCanceled    = "요청이 취소되었습니다."
	msgUnavailable = "오류가 발생했습니다. 잠시 후 다시 시도해 주세요."
	msgDuplicate   = "이미 존재하는 값입니다. 다른 값을 입력해 주세요."
)

//nolint:gochecknoglobals // static read-only lookup
var codeStatus = map[apperrors.ErrorCode]int{
	apperrors.ErrCodeNotFound:   http.StatusNotFound,
	apperrors.ErrCodeForbidden:  http.StatusForbidden,
	apperrors.ErrCodeConflict:   http.StatusConflict,
	apperrors.ErrCodeForeignKey: http.StatusConflict,
	apperrors.ErrCodeValidation: http.StatusBadRequest,
	apperrors.ErrCodeTimeout:    http.StatusGatewayTimeout,
	apperrors.ErrCodeCanceled:   http.StatusRequestTimeout,
}

// classify returns the AppError behind err. Context and database errors that
// were never mapped are classified here; anything else yields nil.
func classify(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || !errors.As(err, &appErr) {
		appErr = nil
		if !errors.As(apperrors.MapDBError(err), &appErr) {
			return nil
		}
	}
	return appErr
}

// DetermineErrorStatus maps an error to the HTTP status used by the JSON API.
func DetermineErrorStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if appErr := classify(err); appErr != nil {
		if status, ok := codeStatus[appErr.Code]; ok {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError writes err as a JSON error, hiding internal details behind a 500.
func writeServiceError(w http.ResponseWriter, err error) {
	status := DetermineErrorStatus(err)
	if status == http.StatusInternalServerError {
		WriteError(w, status, "internal_error", "internal server error")
		return
	}
	appErr := classify(err)
	WriteError(w, status, string(appErr.Code), appErr.Message)
}

// userMessage returns the text shown to the viewer for err. Validation and
// conflict messages raised by the service layer are shown as written.
func userMessage(err error) string {
	if err == nil {
		return ""
	}
	appErr := classify(err)
	if appErr == nil {
		return msgUnavailable
	}
	var pgErr *pgconn.PgError
	fromDB := errors.As(appErr, &pgErr)

	switch appErr.Code {
	case apperrors.ErrCodeTimeout:
		return msgTimeout
	case apperrors.ErrCodeCanceled:
		return msgCanceled
	case apperrors.ErrCodeNotFound:
		return msgNotFound
	case apperrors.ErrCodeForbidden:
		return msgForbidden
	case apperrors.ErrCodeForeignKey:
		return msgInUse
	case apperrors.ErrCodeConflict:
		if fromDB {
			return msgDuplicate
		}
		return appErr.Message
	case apperrors.ErrCodeValidation:
		if fromDB {
			return msgFixBelow
		}
		return appErr.Message
	}
	return msgUnavailable
}

// RenderError re-renders a page with a general error message and, for validation
// errors that name a field, a field-level error.
//
//	RenderError(ErrorOpts{
//	    W: w, R: r, Err: err,
//	    Renderer: h.renderPage,
//	    PageMeta: dashboardMeta,
//	    Data: map[string]any{"Form": form},
//	})
func RenderError(opts ErrorOpts) {
	if opts.Renderer == nil {
		http.Error(opts.W, "misconfigured error renderer", http.StatusInternalServerError)
		return
	}

	builder := NewTemplateData(opts.R, opts.PageMeta)

	generalError := processError(opts.Err, &opts.FieldErrors)
	if len(opts.FieldErrors) > 0 {
		builder.WithFieldErrors(opts.FieldErrors)
	}
	if generalError != "" {
		builder.WithError(generalError)
	} else if len(opts.FieldErrors) > 0 {
		builder.WithError(msgFixBelow)
	}

	for k, v := range opts.Data {
		builder.With(k, v)
	}

	if opts.ShowToast && generalError != "" {
		triggerToast(opts.W, toast{Message: generalError, Type: toastError})
	}

	opts.Renderer(opts.W, opts.R, builder.Build(), opts.StatusCode)
}

// processError returns the general message for err and records a field error when
// the error names one.
func processError(err error, fieldErrors *map[string]string) string {
	if err == nil {
		return ""
	}
	msg := userMessage(err)
	field := apperrors.GetField(err)
	if field == "" || fieldErrors == nil {
		return msg
	}
	if *fieldErrors == nil {
		*fieldErrors = make(map[string]string)
	}
	(*fieldErrors)[field] = msg
	return msgFixBelow
}
