package http

import (
	"github.com/gin-gonic/gin"

	"encode-service/ddd/application/app"
	"encode-service/ddd/application/cqe"
	"encode-service/pkg/errno"
	"encode-service/pkg/restapi"
)

// EncodeJobController exposes job submission and status lookup.
type EncodeJobController struct {
	app *app.EncodeApp
}

func NewEncodeJobController(encodeApp *app.EncodeApp) *EncodeJobController {
	return &EncodeJobController{app: encodeApp}
}

// CreateEncodeJob handles POST /api/v1/jobs.
func (ctl *EncodeJobController) CreateEncodeJob(c *gin.Context) {
	req := &cqe.CreateEncodeJobReq{}
	if err := c.ShouldBindJSON(req); err != nil {
		restapi.Failed(c, errno.NewBizError(errno.ErrInvalidParam, err))
		return
	}
	if req.UserUUID == "" {
		req.UserUUID = c.GetString("user_uuid")
	}

	result, err := ctl.app.CreateEncodeJob(c.Request.Context(), req)
	if err != nil {
		restapi.Failed(c, err)
		return
	}
	restapi.Success(c, result)
}

// GetEncodeJob handles GET /api/v1/jobs/:job_id.
func (ctl *EncodeJobController) GetEncodeJob(c *gin.Context) {
	req := &cqe.GetEncodeJobReq{JobUUID: c.Param("job_id")}

	result, err := ctl.app.GetEncodeJob(c.Request.Context(), req)
	if err != nil {
		restapi.Failed(c, err)
		return
	}
	restapi.Success(c, result)
}
