package service

// Viewer 请求方身份，零值为游客
type Viewer struct {
	ID string
}

// Guest 游客
func Guest() Viewer { return Viewer{} }

// Member 已登录用户
func Member(id string) Viewer { return Viewer{ID: id} }

// IsGuest 是否游客
func (v Viewer) IsGuest() bool { return v.ID == "" }
