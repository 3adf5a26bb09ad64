package utils

import "github.com/gin-gonic/gin"

func GetUserRole(c *gin.Context) string {
	role, _ := c.Get("role")
	if role == nil {
		return ""
	}
	return role.(string)
}

func GetUserID(c *gin.Context) *uint {
	if value, exists := c.Get("user_id"); exists {
		if id, ok := value.(uint); ok {
			return &id
		}
	}
	return nil
}

func GetStringValue(ptr *string) string {
	if ptr != nil {
		return *ptr
	}
	return ""
}

func PtrString(s string) *string {
	return &s
}

func PtrInt64(v int64) *int64 {
	return &v
}
