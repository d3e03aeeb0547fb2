package response

import (
	"net/http"

	"residence/errors"
	"residence/services/occupancy"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Code       int         `json:"code"`
	Mess       string      `json:"mess"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
	})
}

func SuccessWithPagination(c *gin.Context, data interface{}, page, limit, total int) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
		Pagination: &Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// PartialSuccess is used when a bulk operation finished with some failures.
func PartialSuccess(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusMultiStatus, Response{
		Code: 0,
		Mess: message,
		Data: data,
	})
}

func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Response{
		Code: 0,
		Mess: "Server error",
	})
}

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{
		Code: 0,
		Mess: "Not found",
	})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code: 0,
		Mess: message,
	})
}

func Conflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, Response{
		Code: 0,
		Mess: message,
	})
}

// FromError writes the status matching err's AppError code. A reconciler
// store failure with no more specific code answers 503.
func FromError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if occupancy.IsStoreError(err) && (appErr == nil || appErr.Code == errors.ErrCodeDBError) {
		appErr = errors.NewAppError(errors.ErrCodeStoreError, "storage unavailable", err)
	}
	if appErr == nil {
		ServerError(c)
		return
	}
	switch appErr.Code {
	case errors.ErrCodeDBNotFound:
		c.JSON(http.StatusNotFound, Response{Code: 0, Mess: appErr.Message})
	case errors.ErrCodeBookingOverlap, errors.ErrCodeRoomUnderMaintenance, errors.ErrCodeDBDuplicate:
		Conflict(c, appErr.Message)
	case errors.ErrCodeInvalidTransition, errors.ErrCodeInvalidOperation:
		c.JSON(http.StatusUnprocessableEntity, Response{Code: 0, Mess: appErr.Message})
	case errors.ErrCodeRequiredField, errors.ErrCodeInvalidInterval:
		BadRequest(c, appErr.Message)
	case errors.ErrCodeStoreError:
		c.JSON(http.StatusServiceUnavailable, Response{Code: 0, Mess: appErr.Message})
	default:
		ServerError(c)
	}
}
