package authz

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleAgent   = "agent"
)

func Valid(role string) bool {
	return role == RoleAdmin || role == RoleManager || role == RoleAgent
}

// CanManageUsers — создание/деактивация учёток и смена ролей.
func CanManageUsers(role string) bool {
	return role == RoleAdmin
}

// CanManagePipelines — правка воронок и стадий, видимых всему тенанту.
func CanManagePipelines(role string) bool {
	return role == RoleAdmin || role == RoleManager
}
