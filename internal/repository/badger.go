package repository

import (
	"github.com/dgraph-io/badger/v4"
)

// OpenBadger abre (o crea) la base embebida en el directorio indicado.
// Un directorio ausente arranca como colecciones vacías; datos corruptos
// fallan aquí en vez de degradarse silenciosamente a vacío.
func OpenBadger(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR)
	return badger.Open(opts)
}
