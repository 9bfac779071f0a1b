package repository

import "context"

// RecordStore define el puerto de almacenamiento durable clave/valor de la terminal
// (carrito en curso, sesión). Un slot por clave; la última escritura gana.
// Get devuelve (nil, nil) si la clave no existe.
type RecordStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
