package entities

// Role representa o papel de um usuário no sistema
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Permission representa uma permissão específica
type Permission string

const (
	// User permissions
	PermissionUserRegister Permission = "users.register"
	PermissionUserList     Permission = "users.list"
	PermissionUserDelete   Permission = "users.delete"

	// Service order permissions
	PermissionOrderRead  Permission = "orders.read"
	PermissionOrderWrite Permission = "orders.write"

	// OCR permissions
	PermissionOCRExtract Permission = "ocr.extract"
)

// RolePermissions mapeia roles para suas permissões
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionUserRegister,
		PermissionUserList,
		PermissionUserDelete,
		PermissionOrderRead,
		PermissionOrderWrite,
		PermissionOCRExtract,
	},
	RoleUser: {
		PermissionOrderRead,
		PermissionOrderWrite,
		PermissionOCRExtract,
	},
}

// GetPermissions retorna permissões de um role
func (r Role) GetPermissions() []Permission {
	return RolePermissions[r]
}

// HasPermission verifica se role tem permissão
func (r Role) HasPermission(permission Permission) bool {
	permissions := RolePermissions[r]
	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}
