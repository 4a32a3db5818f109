package entity

// Roles válidos. La autorización se resuelve en la capa HTTP con el rol del token;
// el flujo de documentos solo recibe el ID del actor.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)
