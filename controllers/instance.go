// controllers/instance.go
package controllers

import (
	"net/http"

	"fintrack-backend/gateway"
	"fintrack-backend/utils"

	"github.com/gin-gonic/gin"
)

// InstanceController surfaces the gateway instance connection for operators:
// check the state, and trigger a reconnect to fetch a QR/pairing code when
// the instance dropped.
type InstanceController struct {
	Client *gateway.WhatsAppClient
}

func (ctl *InstanceController) GetConnectionState(c *gin.Context) {
	state, err := ctl.Client.ConnectionState(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Gateway unreachable: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, state)
}

func (ctl *InstanceController) Connect(c *gin.Context) {
	state, err := ctl.Client.Connect(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Gateway unreachable: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, state)
}
