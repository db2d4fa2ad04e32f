package domain

// Account representa una identidad registrada con nombre único.
type Account struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
}

// PublicAccount es la proyección de cuenta que se expone en respuestas.
type PublicAccount struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Public devuelve la proyección sin hash de contraseña.
func (a Account) Public() PublicAccount {
	return PublicAccount{ID: a.ID, Name: a.Name}
}
