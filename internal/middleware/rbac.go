package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/course-agenda-api/internal/utils"
)

// Roles understood by the agenda API. Teachers, editing teachers, managers
// and admins may read the agenda of any student.
const (
	RoleStudent        = "student"
	RoleTeacher        = "teacher"
	RoleEditingTeacher = "editingteacher"
	RoleManager        = "manager"
	RoleAdmin          = "admin"
)

// StaffRoles lists the roles that may view every student's agenda.
var StaffRoles = []string{RoleTeacher, RoleEditingTeacher, RoleManager, RoleAdmin}

// IsStaffRole reports whether role belongs to StaffRoles.
func IsStaffRole(role string) bool {
	role = normalizeRoleValue(role)
	for _, staff := range StaffRoles {
		if role == staff {
			return true
		}
	}
	return false
}

// RequireRole ensures that the authenticated user possesses one of the allowed roles.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		if normalized := normalizeRoleValue(role); normalized != "" {
			allowed[normalized] = struct{}{}
		}
	}

	return func(c *fiber.Ctx) error {
		role := normalizeRoleValue(c.Locals(LocalUserRole))
		if _, ok := allowed[role]; !ok {
			return utils.Fail(c, fiber.StatusForbidden, "insufficient permissions", nil)
		}
		return c.Next()
	}
}

func rolePriority(role string) int {
	switch role {
	case RoleAdmin:
		return 4
	case RoleManager:
		return 3
	case RoleEditingTeacher:
		return 2
	case RoleTeacher:
		return 1
	default:
		return 0
	}
}

func normalizeRoleValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.ToLower(strings.TrimSpace(v))
	case fmt.Stringer:
		return strings.ToLower(strings.TrimSpace(v.String()))
	default:
		return strings.ToLower(strings.TrimSpace(fmt.Sprintf("%v", value)))
	}
}
