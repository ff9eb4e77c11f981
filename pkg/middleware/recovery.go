package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/scholarassist/scholarassist/backend/go-services/pkg/apierrors"
)

// Recovery turns handler panics into a JSON 500.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		apierrors.HandleError(c, apierrors.New500(fmt.Errorf("panic: %v", recovered)))
	})
}
