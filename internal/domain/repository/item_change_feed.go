package repository

import "context"

// ItemChangeFeed notifica cambios (insert/update/delete) sobre la colección de
// ítems de inventario. Cualquier backend capaz de señalar "la colección cambió"
// satisface el contrato; un polling periódico es un sustituto aceptable.
type ItemChangeFeed interface {
	// Subscribe registra un handler y devuelve la función que libera la
	// suscripción. El handler puede invocarse desde otra goroutine y no debe
	// bloquear.
	Subscribe(ctx context.Context, handler func()) (func(), error)
}
