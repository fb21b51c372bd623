package models

type UserRole string

const (
	UserRoleAdmin    UserRole = "ADMIN_ROLE"
	UserRoleManager  UserRole = "MANAGER_ROLE"
	UserRoleEmployee UserRole = "EMPLOYEE_ROLE"
)

var roleHumanName = map[UserRole]string{
	UserRoleAdmin:    "Администратор",
	UserRoleManager:  "Руководитель",
	UserRoleEmployee: "Сотрудник",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

// руководитель или администратор, может согласовывать заявки на отпуск
func (r UserRole) CanReviewLeave() bool {
	return r == UserRoleAdmin || r == UserRoleManager
}
