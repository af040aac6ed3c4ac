package util

import (
	"bufio"
	"fmt"
	"net/http"
	"strings"
)

// ValidateMimeType 通过文件头部嗅探 MIME 类型，不消耗 reader 中的数据
// allowedTypes: 允许的 MIME 前缀或完整类型，如 "text/"
func ValidateMimeType(reader *bufio.Reader, allowedTypes []string) (string, error) {
	head, err := reader.Peek(512)
	if err != nil && len(head) == 0 {
		// 空文件交给解析器报错
		return "", nil
	}

	mimeType := http.DetectContentType(head)

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, fmt.Errorf("%w: %s", ErrBinaryDataset, mimeType)
}
