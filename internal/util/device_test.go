package util

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newContext(headers map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return c
}

func TestDeviceFromHeaders(t *testing.T) {
	c := newContext(map[string]string{
		"Sec-CH-UA-Platform": `"macOS"`,
		"User-Agent":         "Mozilla/5.0 Safari",
	})
	d := Device(c)
	assert.Equal(t, "macOS", d.Name)
	assert.Equal(t, "Mozilla/5.0 Safari", d.Browser)
	assert.True(t, IsCurrentDevice(c, "Mozilla/5.0 Safari"))
	assert.False(t, IsCurrentDevice(c, "curl/8.0"))
}

func TestDeviceDefaultsToWeb(t *testing.T) {
	c := newContext(map[string]string{"User-Agent": "curl/8.0"})
	assert.Equal(t, DefaultDeviceName, Device(c).Name)

	empty := newContext(nil)
	empty.Request.Header.Del("User-Agent")
	assert.False(t, IsCurrentDevice(empty, ""))
}
