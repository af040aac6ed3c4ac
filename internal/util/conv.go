package util

import (
	"strconv"
)

// ParseSide 解析图片边长，非法或越界时返回 def
func ParseSide(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > MaxPNGSide {
		return def
	}
	return n
}
