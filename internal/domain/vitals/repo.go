package vitals

import "context"

type Repository interface {
	Create(ctx context.Context, l *Log) error
	List(ctx context.Context, limit, offset int) ([]*Log, int, error)
}
