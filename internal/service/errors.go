package service

import "errors"

var (
	// ErrInvalidRequest 表示缺少必填字段，在任何生成或写入之前返回。
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNotFound 表示指定 id 的记录不存在。
	ErrNotFound = errors.New("not found")
	// ErrEmptyReply 表示兜底路径也没有得到可用的聊天回复。
	ErrEmptyReply = errors.New("chat reply is empty")
	// ErrExportUnavailable 表示没有配置对象存储。
	ErrExportUnavailable = errors.New("export storage is not configured")
)
