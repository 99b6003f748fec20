package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// AccessToken 计算匿名访问令牌：sha256(survey_id + email) 的十六进制表示。
// 同一 (survey, email) 永远得到同一令牌，重复发送不会产生新的访问入口。
func AccessToken(surveyID, email string) string {
	sum := sha256.Sum256([]byte(surveyID + ":" + strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}
