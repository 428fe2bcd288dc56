package routes

import (
	"github.com/Zozodoank/idcashier-sub002/handlers/auth"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine) {
	r.POST("/login", auth.Login)
}
