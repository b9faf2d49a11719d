package util

const DateFormat = "2006-01-02"

// gin.Context 中的键
const (
	ContextSessionID = "sid"
	ContextUser      = "user"
)

const DefaultDeviceName = "web"
