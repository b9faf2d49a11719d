package util

import "errors"

var (
	ErrQuestionNotFound = errors.New("未找到该题目")
	ErrAdminRequired    = errors.New("抱歉，只有管理员可以访问该页面。")
)
