package response

import (
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/MiguelRodac/api-books/internal/shared/apperror"
)

// Envelope là wire contract duy nhất cho mọi operation outcome
// success → {success:true, statusCode, message, data}
// failure → {success:false, statusCode, message, error}
type Envelope struct {
	Success    bool        `json:"success"`
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	Error      interface{} `json:"error,omitempty"`
}

// Default messages khi handler không override
const (
	MsgDataFound   = "Data found"
	MsgNoDataFound = "No data found"
)

var devMode bool

// Init set execution mode một lần lúc startup (giống logger.Init)
// Ngoài development mode, internal error detail không bao giờ ra wire
func Init(env string) {
	devMode = env == "development"
}

// Success render success outcome qua envelope
// statusCode phải thuộc [200,300); message rỗng sẽ lấy default theo payload
func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	hasData := hasPayload(data)

	if message == "" {
		if hasData {
			message = MsgDataFound
		} else {
			message = MsgNoDataFound
		}
	}

	if !hasData {
		data = nil
	}

	c.JSON(statusCode, Envelope{
		Success:    true,
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	})
}

// Error classify error về taxonomy rồi render failure envelope
// Đây là đường duy nhất từ error ra transport - handler không tự emit error
func Error(c *gin.Context, err error) {
	appErr := apperror.From(err)

	detail := appErr.Detail
	if appErr.Kind == apperror.KindInternal {
		// Log full cause, suppress detail trên wire ở non-development
		log.Error().
			Err(appErr.Err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg(appErr.Message)

		if devMode && appErr.Err != nil {
			detail = appErr.Err.Error()
		} else {
			detail = nil
		}
	}

	c.JSON(appErr.StatusCode, Envelope{
		Success:    false,
		StatusCode: appErr.StatusCode,
		Message:    appErr.Message,
		Error:      detail,
	})
}

// AbortError giống Error nhưng dừng middleware chain (dùng trong guards)
func AbortError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// hasPayload: nil, empty slice/map đều coi là "no data"
func hasPayload(data interface{}) bool {
	if data == nil {
		return false
	}

	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return false
		}
		return hasPayload(v.Elem().Interface())
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() > 0
	}

	return true
}
