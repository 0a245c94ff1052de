package web

import (
	"errors"
	"net/http"

	"gitee.com/flycash/message-dispatch/internal/errs"
	"github.com/gin-gonic/gin"
)

const (
	CodeOK           = 0
	CodeInternal     = 1
	CodeUnauthorized = 2
	CodeNotFound     = 3
	CodeInvalidInput = 4
	CodeRateLimited  = 5
)

type Result struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

func ok(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, Result{Code: CodeOK, Msg: "OK", Data: data})
}

// fail 内部错误不把细节暴露给调用方
func fail(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidParameter):
		ctx.JSON(http.StatusBadRequest, Result{Code: CodeInvalidInput, Msg: err.Error()})
	case errors.Is(err, errs.ErrRateLimited):
		ctx.JSON(http.StatusTooManyRequests, Result{Code: CodeRateLimited, Msg: err.Error()})
	case errors.Is(err, errs.ErrSendRecordNotFound):
		ctx.JSON(http.StatusNotFound, Result{Code: CodeNotFound, Msg: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, Result{Code: CodeInternal, Msg: "系统错误"})
	}
}
