package util

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// DeviceInfo 登录时上报给后端的设备标识
type DeviceInfo struct {
	Name    string
	Browser string
}

// Device 从请求头推断设备：平台取 Sec-CH-UA-Platform，缺省为 web；浏览器为完整 User-Agent
func Device(c *gin.Context) DeviceInfo {
	name := strings.Trim(strings.TrimSpace(c.GetHeader("Sec-CH-UA-Platform")), `"`)
	if name == "" {
		name = DefaultDeviceName
	}
	return DeviceInfo{Name: name, Browser: c.Request.UserAgent()}
}

// IsCurrentDevice 仅用于界面提示，不作为鉴权依据
func IsCurrentDevice(c *gin.Context, browser string) bool {
	ua := c.Request.UserAgent()
	return ua != "" && ua == browser
}
