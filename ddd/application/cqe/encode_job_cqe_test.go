package cqe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"encode-service/ddd/domain/vo"
	"encode-service/pkg/errno"
)

func validReq() *CreateEncodeJobReq {
	return &CreateEncodeJobReq{
		UserUUID:  "user-1",
		VideoUUID: "video-1",
		SourceKey: "uploads/video-1.avi",
		Format:    "webm",
	}
}

func TestCreateEncodeJobReqValidate(t *testing.T) {
	assert.NoError(t, validReq().Validate())
}

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateEncodeJobReq)
		want   *errno.Errno
	}{
		{"missing user", func(r *CreateEncodeJobReq) { r.UserUUID = "" }, errno.ErrUserUUIDRequired},
		{"missing video", func(r *CreateEncodeJobReq) { r.VideoUUID = "" }, errno.ErrVideoUUIDRequired},
		{"missing source", func(r *CreateEncodeJobReq) { r.SourceKey = "" }, errno.ErrSourceKeyRequired},
		{"missing format", func(r *CreateEncodeJobReq) { r.Format = "" }, errno.ErrFormatRequired},
		{"unknown format", func(r *CreateEncodeJobReq) { r.Format = "avi" }, errno.ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validReq()
			tt.mutate(req)
			assert.ErrorIs(t, req.Validate(), tt.want)
		})
	}
}

func TestValidateNormalizesFormat(t *testing.T) {
	req := validReq()
	req.Format = "WebM"
	require.NoError(t, req.Validate())
	assert.Equal(t, "webm", req.Format)
}

func TestValidateAcceptsAlternateContainer(t *testing.T) {
	req := validReq()
	req.Format = "ogv"
	assert.NoError(t, req.Validate())
}

func TestValidateWatermarkNeedsPath(t *testing.T) {
	req := validReq()
	req.Watermark = &WatermarkReq{Position: "bottom-right"}
	assert.ErrorIs(t, req.Validate(), errno.ErrWatermarkPathNeeded)
}

func TestToWatermark(t *testing.T) {
	req := validReq()
	assert.Nil(t, req.ToWatermark())

	req.Watermark = &WatermarkReq{Path: "logo.png", Position: "top-right", PixelsFromEdge: 10}
	w := req.ToWatermark()
	require.NotNil(t, w)
	assert.Equal(t, "logo.png", w.Path)
	assert.Equal(t, vo.PositionTopRight, w.Position)
	assert.Equal(t, 10, w.PixelsFromEdge)
}

func TestGetEncodeJobReqValidate(t *testing.T) {
	assert.ErrorIs(t, (&GetEncodeJobReq{}).Validate(), errno.ErrJobUUIDRequired)
	assert.NoError(t, (&GetEncodeJobReq{JobUUID: "j-1"}).Validate())
}
