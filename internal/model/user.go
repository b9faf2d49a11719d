package model

// MaxDevicesPerUser 由后端强制，前端仅用于提示
const MaxDevicesPerUser = 3

// swagger:model User
type User struct {
	Username string          `json:"username"`
	IsAdmin  bool            `json:"is_admin"`
	Devices  []Device        `json:"devices"`
	Progress []ProgressEntry `json:"progress"`
}

// Device 以 (Name, Browser) 作为标识
type Device struct {
	Name      string    `json:"name"`
	Browser   string    `json:"browser"`
	LastLogin Timestamp `json:"last_login"`
}

func (d Device) Key() string {
	return d.Name + "-" + d.Browser
}

type ProgressEntry struct {
	QuestionSlug string    `json:"question_slug"`
	Score        float64   `json:"score"`
	CompletedAt  Timestamp `json:"completed_at"`
}

// RoleLabel 用户菜单中显示的角色
func (u *User) RoleLabel() string {
	if u.IsAdmin {
		return "管理员"
	}
	return "学习者"
}

// Completed 是否已有该题的完成记录
func (u *User) Completed(questionSlug string) bool {
	if u == nil {
		return false
	}
	for _, p := range u.Progress {
		if p.QuestionSlug == questionSlug {
			return true
		}
	}
	return false
}

// AuthResponse 注册/登录/移除设备/记录进度均返回完整用户快照
type AuthResponse struct {
	User User `json:"user"`
}
