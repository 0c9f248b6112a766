package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/catalog/pkg/response"
)

// reply writes env with status, or the failure envelope derived from err.
func reply(c *gin.Context, status int, env response.Envelope, err error) {
	if err != nil {
		_ = c.Error(err)
		response.Error(c, err)
		return
	}
	response.JSON(c, status, env)
}

func replyOK(c *gin.Context, env response.Envelope, err error) {
	reply(c, http.StatusOK, env, err)
}

func replyCreated(c *gin.Context, env response.Envelope, err error) {
	reply(c, http.StatusCreated, env, err)
}
