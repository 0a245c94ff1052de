package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

const ctxKeyServiceName = "serviceName"

// AuthMiddleware 解析 token，把调用方的服务名放进 gin.Context
func AuthMiddleware(auth *JwtAuth) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, Result{Code: CodeUnauthorized, Msg: "缺少 Authorization"})
			return
		}
		claims, err := auth.Decode(header)
		if err != nil {
			elog.DefaultLogger.Warn("token 校验失败", elog.FieldErr(err))
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, Result{Code: CodeUnauthorized, Msg: "token 无效"})
			return
		}
		name, _ := claims[ClaimServiceName].(string)
		if name == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, Result{Code: CodeUnauthorized, Msg: "token 缺少 serviceName"})
			return
		}
		ctx.Set(ctxKeyServiceName, name)
		ctx.Next()
	}
}

func serviceName(ctx *gin.Context) string {
	return ctx.GetString(ctxKeyServiceName)
}
