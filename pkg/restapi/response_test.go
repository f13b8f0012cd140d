package restapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"encode-service/pkg/errno"
)

func doFailed(t *testing.T, err error) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Failed(c, err)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestFailedJobNotFoundAnswers404(t *testing.T) {
	rec, body := doFailed(t, errno.ErrEncodeJobNotFound)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, errno.ErrEncodeJobNotFound.Code, body.Code)
}

func TestFailedBusinessCodesAnswer400(t *testing.T) {
	rec, body := doFailed(t, errno.ErrUnsupportedFormat)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errno.ErrUnsupportedFormat.Code, body.Code)
}

func TestFailedBizErrorKeepsCodeAndCause(t *testing.T) {
	err := errno.NewBizError(errno.ErrQueueFull, errors.New("queue is full"))
	rec, body := doFailed(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errno.ErrQueueFull.Code, body.Code)
	assert.Contains(t, body.Message, "queue is full")
}

func TestFailedHTTPShapedCodesPassThrough(t *testing.T) {
	rec, body := doFailed(t, errno.ErrUnauthorized)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, errno.ErrUnauthorized.Code, body.Code)
}

func TestFailedUnknownErrorAnswers500(t *testing.T) {
	rec, body := doFailed(t, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, errno.ErrInternalServer.Code, body.Code)
}
