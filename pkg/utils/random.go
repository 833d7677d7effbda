package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// GenerateRandomString 生成指定长度的均匀随机字符串 (用于 OTP 会话引用标识)
func GenerateRandomString(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-._~"
	var result strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result.WriteByte(charset[n.Int64()])
	}
	return result.String(), nil
}

// GenerateRandomDigits 生成指定长度的均匀随机数字串 (允许前导 0，用于 OTP 验证码)
func GenerateRandomDigits(length int) (string, error) {
	const digits = "0123456789"
	var result strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		result.WriteByte(digits[n.Int64()])
	}
	return result.String(), nil
}
