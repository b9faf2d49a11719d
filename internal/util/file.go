package util

import (
	"errors"
	"io"
	"net/http"
	"strings"
)

// SpreadsheetTypes xlsx 本质是 zip 包，按内容嗅探只能识别到 zip
var SpreadsheetTypes = []string{"application/zip", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"}

var ErrInvalidFileType = errors.New("文件格式不正确，请上传 xlsx 文件")

// SniffUpload 按文件头校验上传文件类型，读完后回到文件开头
func SniffUpload(file io.ReadSeeker, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])
	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) {
			return mimeType, nil
		}
	}
	return mimeType, ErrInvalidFileType
}
