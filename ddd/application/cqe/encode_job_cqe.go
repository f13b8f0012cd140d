package cqe

import (
	"strings"

	"encode-service/ddd/domain/service"
	"encode-service/ddd/domain/vo"
	"encode-service/pkg/errno"
)

// CreateEncodeJobReq is the command to enqueue one encode of a stored
// source object.
type CreateEncodeJobReq struct {
	UserUUID    string        `json:"user_uuid"`
	VideoUUID   string        `json:"video_uuid" binding:"required"`
	SourceKey   string        `json:"source_key" binding:"required"`
	Format      string        `json:"format" binding:"required"`
	Resolution  string        `json:"resolution"`
	CustomFlags string        `json:"custom_flags"`
	Watermark   *WatermarkReq `json:"watermark"`
}

// WatermarkReq describes an optional logo overlay for the job.
type WatermarkReq struct {
	Path           string `json:"path"`
	Position       string `json:"position"`
	PixelsFromEdge int    `json:"pixels_from_edge"`
}

// Validate checks the command and normalizes the format.
func (r *CreateEncodeJobReq) Validate() error {
	if r.UserUUID == "" {
		return errno.ErrUserUUIDRequired
	}
	if r.VideoUUID == "" {
		return errno.ErrVideoUUIDRequired
	}
	if r.SourceKey == "" {
		return errno.ErrSourceKeyRequired
	}
	if r.Format == "" {
		return errno.ErrFormatRequired
	}
	r.Format = strings.ToLower(r.Format)
	if !vo.SupportedFormat(r.Format) && r.Format != service.AlternateContainerExt {
		return errno.ErrUnsupportedFormat
	}
	if r.Watermark != nil && r.Watermark.Path == "" {
		return errno.ErrWatermarkPathNeeded
	}
	return nil
}

// ToWatermark converts the request watermark into its domain value.
func (r *CreateEncodeJobReq) ToWatermark() *vo.Watermark {
	if r.Watermark == nil {
		return nil
	}
	return &vo.Watermark{
		Path:           r.Watermark.Path,
		Position:       vo.WatermarkPosition(r.Watermark.Position),
		PixelsFromEdge: r.Watermark.PixelsFromEdge,
	}
}

// GetEncodeJobReq is the query for one job's status.
type GetEncodeJobReq struct {
	JobUUID string `json:"job_uuid"`
}

func (r *GetEncodeJobReq) Validate() error {
	if r.JobUUID == "" {
		return errno.ErrJobUUIDRequired
	}
	return nil
}
